package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/behnamfe76/finance-service/internal/api/http"
	"github.com/behnamfe76/finance-service/internal/api/http/handlers"
	"github.com/behnamfe76/finance-service/internal/auth"
	"github.com/behnamfe76/finance-service/internal/config"
	"github.com/behnamfe76/finance-service/internal/events"
	"github.com/behnamfe76/finance-service/internal/observability"
	"github.com/behnamfe76/finance-service/internal/persistence"
	"github.com/behnamfe76/finance-service/internal/repository"
	"github.com/behnamfe76/finance-service/internal/repository/memstore"
	"github.com/behnamfe76/finance-service/internal/service"
	"github.com/behnamfe76/finance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, zap.String("service", cfg.App.Name), zap.String("version", cfg.App.Version))
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

	var repos repository.Set
	if pg.Configured() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		repos = repository.NewPostgresSet(pg.PoolHandle())
	} else {
		repos = memstore.New().Set()
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var revocations auth.RevocationStore = auth.NewMemoryRevocationStore()
	if redis.Configured() {
		revocations = auth.NewRedisRevocationStore(redis.Client)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger.Named("events"), metrics)

	services := service.New(cfg, service.Options{
		Repositories: repos,
		Revocations:  revocations,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	worker.StartNotificationWorker(services.Notifications)

	if !pg.Configured() {
		if err := services.Reference.Seed(ctx, service.DefaultSeedData()); err != nil {
			logger.Fatal("failed to seed in-memory store", zap.Error(err))
		}
	}

	limiter := httptransport.NewIPRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst)
	go limiter.Run(ctx)

	scheduler := worker.NewRecurringScheduler(services.Transactions, cfg.Worker.RecurringInterval(), cfg.Worker.RecurringBatchSize, logger.Named("recurring"))
	go scheduler.Run(ctx)

	app := httptransport.NewApp(httptransport.AppOptions{
		Config:   cfg,
		Services: services,
		Users:    repos.Users,
		Logger:   logger,
		Metrics:  metrics,
		Dependencies: map[string]handlers.Dependency{
			"postgres": pg,
			"redis":    redis,
		},
		LoginLimiter: limiter,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
