package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// errorEnvelope is the body shape of every error response.
type errorEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler converts any error escaping a handler into the error envelope.
// Unknown errors are logged and surfaced as INTERNAL_ERROR without leaking
// their message.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(errorEnvelope{
				Success: false,
				Message: fiberErr.Message,
				Code:    codeForStatus(fiberErr.Code),
			})
		}

		domainErr := apperrors.ToDomainError(err)
		if domainErr.HTTPStatus >= 500 {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		return c.Status(domainErr.HTTPStatus).JSON(errorEnvelope{
			Success: false,
			Message: domainErr.Message,
			Code:    domainErr.Code,
			Details: domainErr.Details,
		})
	}
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return "NOT_FOUND"
	case status == fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case status == fiber.StatusForbidden:
		return "FORBIDDEN"
	case status >= 400 && status < 500:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
