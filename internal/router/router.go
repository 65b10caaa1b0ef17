package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/portfolio-api/internal/config"
	"github.com/noah-isme/portfolio-api/internal/handler"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	"github.com/noah-isme/portfolio-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ContactHandler      *handler.ContactHandler
	AdminContactHandler *handler.AdminContactHandler
	SiteHandler         *handler.SiteHandler
	Store               handler.StoreStatus
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.Store))

	app.Get("/metrics", observability.MetricsHandler())

	if deps.ContactHandler != nil {
		deps.ContactHandler.Register(app.Group("/api/contact"), middleware.RateLimit("contact", cfg.ContactRateLimit, cfg.ContactRateWindow))
	}

	if deps.AdminContactHandler != nil {
		deps.AdminContactHandler.Register(app.Group("/api/contacts"), middleware.AdminOnly(cfg.AdminJWTSecret)...)
	}

	// Static site last so it never shadows the API.
	if deps.SiteHandler != nil {
		deps.SiteHandler.Register(app)
	}
}
