package respond

import (
	"github.com/gofiber/fiber/v2"
)

// successEnvelope is the body shape of every 2xx response.
type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success writes a success envelope with the given status.
func Success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(successEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}
