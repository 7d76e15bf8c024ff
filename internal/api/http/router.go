package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/behnamfe76/finance-service/internal/api/http/handlers"
	"github.com/behnamfe76/finance-service/internal/auth"
	"github.com/behnamfe76/finance-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Accounts       *handlers.AccountsHandler
	Reference      *handlers.ReferenceHandler
	Transactions   *handlers.TransactionsHandler
	Budgets        *handlers.BudgetsHandler
	Goals          *handlers.GoalsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   *IPRateLimiter
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	authenticated := auth.RequireAuthenticated()

	login := []fiber.Handler{cfg.Auth.Login}
	if cfg.LoginLimiter != nil {
		login = append([]fiber.Handler{cfg.LoginLimiter.Handler()}, login...)
	}
	authGroup := api.Group("/auth")
	authGroup.Post("/login", login...)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", authenticated, cfg.Auth.Me)

	api.Post("/users/register", cfg.Auth.Register)

	accounts := api.Group("/accounts")
	accounts.Get("/types", cfg.Reference.AccountTypes)
	accounts.Get("/currencies", cfg.Reference.Currencies)
	accounts.Get("", authenticated, cfg.Accounts.List)
	accounts.Post("", authenticated, cfg.Accounts.Create)
	accounts.Get("/:id", authenticated, cfg.Accounts.Get)
	accounts.Put("/:id", authenticated, cfg.Accounts.Update)
	accounts.Patch("/:id", authenticated, cfg.Accounts.Update)
	accounts.Delete("/:id", authenticated, cfg.Accounts.Delete)

	categories := api.Group("/categories", authenticated)
	categories.Get("", cfg.Reference.Categories)
	categories.Get("/:id", cfg.Reference.Category)

	transactions := api.Group("/transactions", authenticated)
	transactions.Get("", cfg.Transactions.List)
	transactions.Post("", cfg.Transactions.Create)
	transactions.Get("/by_account", cfg.Transactions.ByAccount)
	transactions.Get("/recurring", cfg.Transactions.Recurring)
	transactions.Get("/:id", cfg.Transactions.Get)
	transactions.Put("/:id", cfg.Transactions.Update)
	transactions.Patch("/:id", cfg.Transactions.Update)
	transactions.Delete("/:id", cfg.Transactions.Delete)

	budgets := api.Group("/budgets", authenticated)
	budgets.Get("", cfg.Budgets.List)
	budgets.Post("", cfg.Budgets.Create)
	budgets.Get("/:id", cfg.Budgets.Get)
	budgets.Put("/:id", cfg.Budgets.Update)
	budgets.Patch("/:id", cfg.Budgets.Update)
	budgets.Delete("/:id", cfg.Budgets.Delete)

	goals := api.Group("/goals", authenticated)
	goals.Get("", cfg.Goals.List)
	goals.Post("", cfg.Goals.Create)
	goals.Get("/:id", cfg.Goals.Get)
	goals.Put("/:id", cfg.Goals.Update)
	goals.Patch("/:id", cfg.Goals.Update)
	goals.Delete("/:id", cfg.Goals.Delete)

	api.Get("/reports/summary", authenticated, cfg.Reports.Summary)

	admin := api.Group("/admin", auth.RequireStaff())
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/:id", cfg.Users.Get)
}
