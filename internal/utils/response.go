package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope shared by the contact endpoints. Data is left
// out of the JSON when nil, so contact results serialise as {success, message}.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SendSuccess writes a 200 envelope.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Message: orDefault(message, "success"),
		Data:    data,
	})
}

// SendError writes a failure envelope with the given status.
func SendError(c *fiber.Ctx, status int, message string) error {
	if status < fiber.StatusBadRequest {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: orDefault(message, "error"),
	})
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
