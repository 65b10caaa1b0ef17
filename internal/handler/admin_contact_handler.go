package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/internal/utils"
)

// AdminContactHandler exposes the stored contact messages.
type AdminContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewAdminContactHandler constructs the handler.
func NewAdminContactHandler(service service.ContactService, logger zerolog.Logger) *AdminContactHandler {
	return &AdminContactHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_contact_handler").Logger(),
	}
}

// Register attaches routes behind the given guards.
func (h *AdminContactHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("", append(guards, h.list)...)
}

// list responds with a bare array, newest first.
func (h *AdminContactHandler) list(c *fiber.Ctx) error {
	records, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list contact messages")
		return utils.SendError(c, fiber.StatusInternalServerError, MessageFetchFailed)
	}

	return c.JSON(records)
}
