package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/api/http/handlers"
	"github.com/behnamfe76/finance-service/internal/auth"
	"github.com/behnamfe76/finance-service/internal/config"
	"github.com/behnamfe76/finance-service/internal/observability"
	"github.com/behnamfe76/finance-service/internal/service"
)

// AppOptions carries everything NewApp needs.
type AppOptions struct {
	Config       *config.Config
	Services     *service.Services
	Users        auth.UserLookup
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Dependencies map[string]handlers.Dependency
	LoginLimiter *IPRateLimiter
}

// NewApp builds the fiber application with middleware and routes registered.
func NewApp(opts AppOptions) *fiber.App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	svc := opts.Services

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger, opts.Metrics),
	})
	RegisterMiddlewares(app, logger, opts.Metrics, cfg.App.RequestTimeout())

	authenticator := auth.NewAuthenticator(svc.Auth.TokenManager(), opts.Users)
	cookies := auth.CookieSettings{Secure: cfg.Auth.CookieSecure, Domain: cfg.Auth.CookieDomain}

	limiter := opts.LoginLimiter
	if limiter == nil {
		limiter = NewIPRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst)
	}

	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, opts.Dependencies),
		Auth:           handlers.NewAuthHandler(svc.Auth, cookies),
		Users:          handlers.NewUsersHandler(svc.Auth),
		Accounts:       handlers.NewAccountsHandler(svc.Accounts),
		Reference:      handlers.NewReferenceHandler(svc.Reference),
		Transactions:   handlers.NewTransactionsHandler(svc.Transactions),
		Budgets:        handlers.NewBudgetsHandler(svc.Budgets),
		Goals:          handlers.NewGoalsHandler(svc.Goals),
		Reports:        handlers.NewReportsHandler(svc.Reports),
		AuthMiddleware: auth.NewAuthMiddleware(authenticator, opts.Metrics, logger.Named("auth")),
		LoginLimiter:   limiter,
		Metrics:        opts.Metrics,
	})
	return app
}
