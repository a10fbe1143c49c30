package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/freight-ops/internal/api/http"
	"github.com/spec-kit/freight-ops/internal/api/http/handlers"
	"github.com/spec-kit/freight-ops/internal/auth"
	"github.com/spec-kit/freight-ops/internal/config"
	"github.com/spec-kit/freight-ops/internal/events"
	"github.com/spec-kit/freight-ops/internal/locks"
	"github.com/spec-kit/freight-ops/internal/observability"
	"github.com/spec-kit/freight-ops/internal/persistence"
	"github.com/spec-kit/freight-ops/internal/repository"
	"github.com/spec-kit/freight-ops/internal/service"
	"github.com/spec-kit/freight-ops/internal/worker"
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
	operatorRepo := repository.NewOperatorRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	shipmentRepo := repository.NewShipmentRepository(pool)
	ruleRepo := repository.NewCommissionRuleRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	callLogRepo := repository.NewCallLogRepository(pool)

	leaseStore := locks.NewLeaseStore(redis.Client, cfg.Locks.LeaseTTL())
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		OperatorRepo:      operatorRepo,
		PasswordResetRepo: resetRepo,
	})
	shipmentService := service.NewShipmentService(service.ShipmentDependencies{
		ShipmentRepo: shipmentRepo,
		Leases:       leaseStore,
		Dispatcher:   dispatcher,
		RefPrefixes:  cfg.Ops.RefPrefixes,
	})
	commissionService := service.NewCommissionService(ruleRepo, shipmentRepo, cfg.Commission.DefaultPercentage)
	reportingService := service.NewReportingService(shipmentRepo, cfg.Ops.ExportHub, cfg.Commission.EstimateFlatRate)
	contactService := service.NewContactService(contactRepo, callLogRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), operatorRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Operators:      handlers.NewOperatorsHandler(authService),
		Shipments:      handlers.NewShipmentsHandler(shipmentService, commissionService),
		Commissions:    handlers.NewCommissionsHandler(commissionService),
		Reports:        handlers.NewReportsHandler(reportingService),
		Contacts:       handlers.NewContactsHandler(contactService),
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
