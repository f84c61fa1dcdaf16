package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/inspection-service/internal/api/http"
	"github.com/spec-kit/inspection-service/internal/api/http/handlers"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/config"
	"github.com/spec-kit/inspection-service/internal/events"
	"github.com/spec-kit/inspection-service/internal/mirror"
	"github.com/spec-kit/inspection-service/internal/observability"
	"github.com/spec-kit/inspection-service/internal/persistence"
	"github.com/spec-kit/inspection-service/internal/repository"
	"github.com/spec-kit/inspection-service/internal/service"
	"github.com/spec-kit/inspection-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	departmentRepo := repository.NewDepartmentRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	inspectionRepo := repository.NewInspectionRepository(pool)
	appUserRepo := repository.NewAppUserRepository(pool)
	identityRepo := repository.NewIdentityRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewRedisDispatcher(redis.Client, cfg.Redis.Channel, logger)

	identityService := service.NewIdentityService(*cfg, service.IdentityDependencies{
		IdentityRepo:      identityRepo,
		AppUserRepo:       appUserRepo,
		PasswordResetRepo: resetRepo,
		Dispatcher:        dispatcher,
	}, logger)

	adminService := service.NewAdminService(identityRepo, appUserRepo, dispatcher, logger)

	dataService := service.NewDataService(service.DataDependencies{
		DepartmentRepo: departmentRepo,
		LocationRepo:   locationRepo,
		InspectionRepo: inspectionRepo,
		AppUserRepo:    appUserRepo,
		Gateway:        adminService,
		Dispatcher:     dispatcher,
	}, logger)

	liveMirror := mirror.New(mirror.Sources{
		Departments: departmentRepo,
		Locations:   locationRepo,
		Inspections: inspectionRepo,
		Users:       appUserRepo,
	}, dispatcher, logger)
	if err := worker.StartMirror(ctx, liveMirror, logger); err != nil {
		logger.Fatal("failed to start mirror", zap.Error(err))
	}
	defer liveMirror.Close()

	authMiddleware := auth.NewAuthMiddleware(identityService.TokenManager(), identityService)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Use(httptransport.RouteGate(identityService.TokenManager(), identityService, logger))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(identityService, cfg.Auth.CookieSecure),
		Departments:    handlers.NewDepartmentsHandler(dataService, liveMirror),
		Locations:      handlers.NewLocationsHandler(dataService, liveMirror),
		Inspections:    handlers.NewInspectionsHandler(dataService, liveMirror),
		Users:          handlers.NewUsersHandler(dataService, liveMirror),
		Admin:          handlers.NewAdminHandler(adminService, identityService.TokenManager(), identityService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
