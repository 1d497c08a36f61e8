package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/observability"
)

// RouteConfig bundles everything the router needs.
type RouteConfig struct {
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	CompanyData    *handlers.CompanyDataHandler
	Files          *handlers.FilesHandler
}

// RegisterRoutes wires middleware and all route groups onto the app.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(recover.New())
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	tickets := protected.Group("/tickets", auth.RequireCompanyUser())
	tickets.Get("/statistics", cfg.Tickets.Statistics)
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)

	companyData := protected.Group("/company-data", auth.RequireCompanyUser())
	companyData.Get("/contracts", cfg.CompanyData.Contracts)
	companyData.Get("/branches", cfg.CompanyData.Branches)
	companyData.Get("/branches/:branchId/zones", cfg.CompanyData.Zones)
	companyData.Get("/main-services", cfg.CompanyData.MainServices)
	companyData.Get("/main-services/:mainServiceId/sub-services", cfg.CompanyData.SubServices)

	files := protected.Group("/files", auth.RequireCompanyUser())
	files.Post("", cfg.Files.Upload)
}
