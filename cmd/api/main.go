package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/maintenance-service/internal/api/http"
	"github.com/spec-kit/maintenance-service/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/observability"
	"github.com/spec-kit/maintenance-service/internal/persistence"
	"github.com/spec-kit/maintenance-service/internal/repository"
	"github.com/spec-kit/maintenance-service/internal/service"
	"github.com/spec-kit/maintenance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redisStore := persistence.NewRedis(cfg.Redis, logger)
	defer redisStore.Close()

	pool := postgres.PoolHandle()
	companyRepo := repository.NewCompanyRepository(pool)
	contractRepo := repository.NewContractRepository(pool)
	branchRepo := repository.NewBranchRepository(pool)
	zoneRepo := repository.NewZoneRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	lookupRepo := repository.NewLookupRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	fileRepo := repository.NewFileRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	fileService := service.NewFileService(fileRepo, cfg.Storage, logger)
	ticketService := service.NewTicketService(service.TicketDependencies{
		CompanyRepo:  companyRepo,
		ContractRepo: contractRepo,
		BranchRepo:   branchRepo,
		ZoneRepo:     zoneRepo,
		UserRepo:     userRepo,
		LookupRepo:   lookupRepo,
		TicketRepo:   ticketRepo,
		FileRepo:     fileRepo,
		Reconciler:   fileService,
		Dispatcher:   dispatcher,
		Cache:        redisStore.Handle(),
		CacheTTL:     cfg.Storage.StatsCacheTTL,
		Logger:       logger,
	})
	companyDataService := service.NewCompanyDataService(contractRepo, branchRepo, zoneRepo, lookupRepo)
	authService := service.NewAuthService(*cfg, userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Storage.MaxUploadBytes) + 1024*1024,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
		ErrorHandler: httpapi.ErrorHandler(logger),
	})

	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Logger:         logger,
		Metrics:        metrics,
		AuthMiddleware: authMiddleware,
		Health:         handlers.NewHealthHandler(postgres, redisStore, cfg.App.Version),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, fileService),
		CompanyData:    handlers.NewCompanyDataHandler(companyDataService),
		Files:          handlers.NewFilesHandler(fileService),
	})
	app.Static(cfg.Storage.PublicBaseURL, cfg.Storage.Root)

	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
