package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/portfolio-api/internal/config"
	"github.com/noah-isme/portfolio-api/internal/utils"
)

// Database states reported by the health endpoint.
const (
	DatabaseAvailable = "available"
	DatabaseDegraded  = "degraded"
)

// StoreStatus reports whether contact messages are being persisted.
type StoreStatus interface {
	Available() bool
}

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Database    string    `json:"database"`
}

// HealthCheck returns a handler that reports application health information.
// A missing store is reported but does not fail the check.
func HealthCheck(cfg config.Config, store StoreStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		database := DatabaseDegraded
		if store != nil && store.Available() {
			database = DatabaseAvailable
		}

		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Database:    database,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
