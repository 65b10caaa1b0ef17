package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/config"
	"github.com/noah-isme/portfolio-api/internal/database"
	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/handler"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	"github.com/noah-isme/portfolio-api/internal/repository"
	"github.com/noah-isme/portfolio-api/internal/router"
	"github.com/noah-isme/portfolio-api/internal/service"
)

type harness struct {
	app   *fiber.App
	store *service.StoreAvailability
}

func newHarness(t *testing.T, cfg config.Config, available bool) harness {
	t.Helper()
	logger := zerolog.Nop()

	store := service.NewStoreAvailability()
	if available {
		ctx := context.Background()
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
		dial := func(ctx context.Context) (repository.ContactRepository, func(context.Context) error, error) {
			conn, err := database.OpenStore(ctx, dsn)
			if err != nil {
				return nil, nil, err
			}
			repo, err := repository.NewContactRepositoryForStore(conn)
			if err != nil {
				_ = conn.Close(ctx)
				return nil, nil, err
			}
			return repo, conn.Close, nil
		}
		require.True(t, service.NewStoreConnector(dial, store, time.Second, 0, logger).Connect(ctx))
		t.Cleanup(func() { _ = store.Close(ctx) })
	}

	svc := service.NewContactService(store, nil, validator.New(validator.WithRequiredStructEnabled()), nil, service.ContactServiceOptions{}, logger)

	siteDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "index.html"), []byte("<form id=\"contact-form\"></form>"), 0o644))

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: "*"})
	router.Register(app, cfg, router.Dependencies{
		ContactHandler:      handler.NewContactHandler(svc, logger),
		AdminContactHandler: handler.NewAdminContactHandler(svc, logger),
		SiteHandler:         handler.NewSiteHandler(siteDir),
		Store:               store,
	})

	return harness{app: app, store: store}
}

func (h harness) do(t *testing.T, method, path, body, token string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

const adaBody = `{"name":"Ada","email":"ada@x.com","subject":"Hi","message":"Hello"}`

func TestSubmitAndListWithStore(t *testing.T) {
	h := newHarness(t, config.Config{AppName: "Portfolio API"}, true)

	resp, body := h.do(t, http.MethodPost, "/api/contact", adaBody, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"success":true,"message":"Message sent successfully!"}`, string(body))

	resp, body = h.do(t, http.MethodGet, "/api/contacts", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var records []dto.ContactRecord
	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records, 1)
	require.Equal(t, "Ada", records[0].Name)
	require.Equal(t, "Hello", records[0].Message)
	require.NotEmpty(t, records[0].ID)
}

func TestSubmitWithoutStore(t *testing.T) {
	h := newHarness(t, config.Config{AppName: "Portfolio API"}, false)

	resp, body := h.do(t, http.MethodPost, "/api/contact", adaBody, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"success":true,"message":"Message received! (Note: Database not available for persistence)"}`, string(body))

	resp, body = h.do(t, http.MethodGet, "/api/contacts", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.JSONEq(t, `[]`, string(body))

	resp, body = h.do(t, http.MethodGet, "/api/v1/health", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"database":"degraded"`)
	require.False(t, h.store.Available())
}

func TestMissingFieldsRejectedWithStore(t *testing.T) {
	h := newHarness(t, config.Config{}, true)

	resp, body := h.do(t, http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@x.com","message":"Hello"}`, "")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"success":false,"message":"Error sending message"}`, string(body))

	resp, body = h.do(t, http.MethodGet, "/api/contacts", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.JSONEq(t, `[]`, string(body))
}

func TestMalformedBody(t *testing.T) {
	h := newHarness(t, config.Config{}, false)

	resp, body := h.do(t, http.MethodPost, "/api/contact", `{"name":`, "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `{"success":false,"message":"invalid payload"}`, string(body))
}

func TestContactsGuardedWhenSecretConfigured(t *testing.T) {
	secret := "owner-secret"
	h := newHarness(t, config.Config{AdminJWTSecret: secret}, true)

	resp, _ := h.do(t, http.MethodGet, "/api/contacts", "", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "owner", "role": "admin"}).SignedString([]byte(secret))
	require.NoError(t, err)

	resp, body := h.do(t, http.MethodGet, "/api/contacts", "", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.JSONEq(t, `[]`, string(body))

	resp, _ = h.do(t, http.MethodPost, "/api/contact", adaBody, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestContactRateLimit(t *testing.T) {
	h := newHarness(t, config.Config{ContactRateLimit: 1, ContactRateWindow: time.Minute}, false)

	resp, _ := h.do(t, http.MethodPost, "/api/contact", adaBody, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := h.do(t, http.MethodPost, "/api/contact", adaBody, "")
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	require.Contains(t, string(body), "too many requests")

	resp, _ = h.do(t, http.MethodGet, "/api/contacts", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSiteAndMetricsServed(t *testing.T) {
	h := newHarness(t, config.Config{}, false)

	resp, body := h.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "contact-form")

	h.do(t, http.MethodPost, "/api/contact", adaBody, "")

	resp, body = h.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "contact_submissions_total")
	require.NotEmpty(t, resp.Header.Get(middleware.HeaderCorrelationID))
}
