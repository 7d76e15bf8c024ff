package service

import (
	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/auth"
	"github.com/behnamfe76/finance-service/internal/config"
	"github.com/behnamfe76/finance-service/internal/events"
	"github.com/behnamfe76/finance-service/internal/repository"
)

// Services groups every application service built over one repository set.
type Services struct {
	Auth          *AuthService
	Accounts      *AccountService
	Reference     *ReferenceService
	Transactions  *TransactionService
	Budgets       *BudgetService
	Goals         *GoalService
	Reports       *ReportService
	Notifications *NotificationService
}

// Options are the collaborators shared by the services.
type Options struct {
	Repositories repository.Set
	Revocations  auth.RevocationStore
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// New wires the services.
func New(cfg *config.Config, opts Options) *Services {
	repos := opts.Repositories
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Services{
		Auth: NewAuthService(cfg.Auth, AuthDependencies{
			UserRepo:    repos.Users,
			Revocations: opts.Revocations,
			Dispatcher:  opts.Dispatcher,
			Logger:      logger.Named("auth"),
		}),
		Accounts: NewAccountService(AccountDependencies{
			AccountRepo:     repos.Accounts,
			CurrencyRepo:    repos.Currencies,
			AccountTypeRepo: repos.AccountTypes,
			Dispatcher:      opts.Dispatcher,
			Logger:          logger.Named("accounts"),
		}),
		Reference: NewReferenceService(repos.Currencies, repos.AccountTypes, repos.Categories),
		Transactions: NewTransactionService(TransactionDependencies{
			TransactionRepo: repos.Transactions,
			AccountRepo:     repos.Accounts,
			CategoryRepo:    repos.Categories,
			BudgetRepo:      repos.Budgets,
			Dispatcher:      opts.Dispatcher,
			Logger:          logger.Named("transactions"),
		}),
		Budgets: NewBudgetService(BudgetDependencies{
			BudgetRepo:      repos.Budgets,
			AccountRepo:     repos.Accounts,
			CategoryRepo:    repos.Categories,
			TransactionRepo: repos.Transactions,
		}),
		Goals:         NewGoalService(repos.Goals, repos.Accounts),
		Reports:       NewReportService(repos.Transactions, repos.Accounts, repos.Categories),
		Notifications: NewNotificationService(opts.Dispatcher, logger.Named("notifications"), cfg.Notification),
	}
}
