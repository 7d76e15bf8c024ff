package main

import (
	"context"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/config"
	"github.com/behnamfe76/finance-service/internal/observability"
	"github.com/behnamfe76/finance-service/internal/persistence"
	"github.com/behnamfe76/finance-service/internal/repository"
	"github.com/behnamfe76/finance-service/internal/service"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, zap.String("service", cfg.App.Name+"-seed"))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if !pg.Configured() {
		logger.Fatal("POSTGRES_DSN is required for seeding")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	repos := repository.NewPostgresSet(pg.PoolHandle())
	services := service.New(cfg, service.Options{Repositories: repos, Logger: logger})

	data := service.DefaultSeedData()
	if err := services.Reference.Seed(ctx, data); err != nil {
		logger.Fatal("failed to seed reference data", zap.Error(err))
	}
	logger.Info("reference data seeded",
		zap.Int("categories", len(data.Categories)),
		zap.Int("currencies", len(data.Currencies)),
		zap.Int("account_types", len(data.AccountTypes)))

	username := strings.TrimSpace(os.Getenv("SEED_ADMIN_USERNAME"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	_, err = services.Auth.CreateUser(ctx, service.RegisterInput{
		Username: username,
		Email:    os.Getenv("SEED_ADMIN_EMAIL"),
		Password: password,
		IsStaff:  true,
	})
	switch de := apperrors.ToDomainError(err); {
	case err == nil:
		logger.Info("admin user created", zap.String("username", username))
	case de.Code == "CONFLICT":
		logger.Info("admin user already exists", zap.String("username", username))
	default:
		logger.Fatal("failed to create admin user", zap.Error(err))
	}
}
