package handlers

import (
	"github.com/gofiber/fiber/v2"

	httpapi "github.com/spec-kit/maintenance-service/internal/api/http/respond"
	"github.com/spec-kit/maintenance-service/internal/persistence"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
	version  string
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(postgres *persistence.Postgres, redis *persistence.Redis, version string) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis, version: version}
}

// Live reports the process is up.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return httpapi.Success(c, fiber.StatusOK, "alive", fiber.Map{"version": h.version})
}

// Ready reports dependency connectivity. Redis is optional so a cache outage
// degrades statistics without failing readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}
	status := fiber.StatusOK

	if err := h.postgres.Ping(c.Context()); err != nil {
		checks["postgres"] = err.Error()
		status = fiber.StatusServiceUnavailable
	}
	if err := h.redis.Ping(c.Context()); err != nil {
		checks["redis"] = err.Error()
	}

	if status != fiber.StatusOK {
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "not ready",
			"code":    "INTERNAL_ERROR",
			"details": checks,
		})
	}
	return httpapi.Success(c, fiber.StatusOK, "ready", checks)
}
