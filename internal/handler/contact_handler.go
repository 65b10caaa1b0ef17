package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/internal/utils"
)

// Messages returned when a request cannot be served.
const (
	MessageInvalidPayload = "invalid payload"
	MessageSendFailed     = "Error sending message"
	MessageFetchFailed    = "Error fetching contacts"
)

// ContactHandler handles contact submissions.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires contact routes behind the given guards.
func (h *ContactHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Post("", append(guards, h.submit)...)
}

// submit accepts JSON or urlencoded bodies. Anything else, including a
// request without a Content-Type, is an invalid payload.
func (h *ContactHandler) submit(c *fiber.Ctx) error {
	var payload dto.ContactRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, MessageInvalidPayload)
	}

	result, err := h.service.Submit(c.UserContext(), payload)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to process contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, MessageSendFailed)
	}

	return utils.SendSuccess(c, result.Message, nil)
}
