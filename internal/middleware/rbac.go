package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/portfolio-api/internal/utils"
)

// RoleAdmin is the role allowed to read stored contact messages.
const RoleAdmin = "admin"

// RequireRole ensures that the authenticated caller possesses one of the allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// AdminOnly chains token validation and the admin role check. An empty
// secret leaves the route open.
func AdminOnly(secret string) []fiber.Handler {
	if strings.TrimSpace(secret) == "" {
		return nil
	}
	return []fiber.Handler{JWTProtected(secret), RequireRole(RoleAdmin)}
}
