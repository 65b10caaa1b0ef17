package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/middleware"
)

const testSecret = "portfolio-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAdminApp() *fiber.App {
	app := fiber.New()
	handlers := append(middleware.AdminOnly(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("subject").(string))
	})
	app.Get("/api/contacts", handlers...)
	return app
}

func performWithAuth(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAdminOnlyAcceptsAdminToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "owner",
		"role": "Admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	resp := performWithAuth(t, newAdminApp(), "Bearer "+token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminOnlyRejectsOtherRoles(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "guest", "roles": []string{"visitor"}})

	resp := performWithAuth(t, newAdminApp(), "bearer "+token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminOnlyRejectsBadTokens(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{"sub": "owner", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()})
	forged := signToken(t, "other-secret", jwt.MapClaims{"sub": "owner", "role": "admin"})

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"empty token":    "Bearer   ",
		"expired":        "Bearer " + expired,
		"forged":         "Bearer " + forged,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp := performWithAuth(t, newAdminApp(), header)
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
