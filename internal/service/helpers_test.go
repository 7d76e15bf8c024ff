package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/behnamfe76/finance-service/internal/auth"
	"github.com/behnamfe76/finance-service/internal/config"
	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/events"
	"github.com/behnamfe76/finance-service/internal/repository"
	"github.com/behnamfe76/finance-service/internal/repository/memstore"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) ofType(t events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	repos        repository.Set
	revocations  *auth.MemoryRevocationStore
	recorded     *recorder
	auth         *AuthService
	accounts     *AccountService
	transactions *TransactionService
	budgets      *BudgetService
	goals        *GoalService
	reports      *ReportService
	reference    *ReferenceService
}

var testAuthConfig = config.AuthConfig{
	JWTSecret:              "service-test-secret",
	Issuer:                 "finance-service",
	AccessTokenTTLMinutes:  15,
	RefreshTokenTTLMinutes: 60,
	BcryptCost:             bcrypt.MinCost,
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repos := memstore.New().Set()
	rec := &recorder{}
	dispatcher := events.NewInMemoryDispatcher(nil, nil)
	for _, et := range []events.EventType{
		events.EventUserRegistered, events.EventAccountCreated, events.EventAccountDeleted,
		events.EventTransactionCreated, events.EventBudgetExceeded, events.EventRecurringDue,
	} {
		dispatcher.Subscribe(et, rec.handle)
	}

	revocations := auth.NewMemoryRevocationStore()
	f := &fixture{
		repos:       repos,
		revocations: revocations,
		recorded:    rec,
		auth: NewAuthService(testAuthConfig, AuthDependencies{
			UserRepo:    repos.Users,
			Revocations: revocations,
			Dispatcher:  dispatcher,
		}),
		accounts: NewAccountService(AccountDependencies{
			AccountRepo:     repos.Accounts,
			CurrencyRepo:    repos.Currencies,
			AccountTypeRepo: repos.AccountTypes,
			Dispatcher:      dispatcher,
		}),
		transactions: NewTransactionService(TransactionDependencies{
			TransactionRepo: repos.Transactions,
			AccountRepo:     repos.Accounts,
			CategoryRepo:    repos.Categories,
			BudgetRepo:      repos.Budgets,
			Dispatcher:      dispatcher,
		}),
		budgets: NewBudgetService(BudgetDependencies{
			BudgetRepo:      repos.Budgets,
			AccountRepo:     repos.Accounts,
			CategoryRepo:    repos.Categories,
			TransactionRepo: repos.Transactions,
		}),
		goals:     NewGoalService(repos.Goals, repos.Accounts),
		reports:   NewReportService(repos.Transactions, repos.Accounts, repos.Categories),
		reference: NewReferenceService(repos.Currencies, repos.AccountTypes, repos.Categories),
	}
	require.NoError(t, f.reference.Seed(context.Background(), DefaultSeedData()))
	return f
}

func (f *fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) account(t *testing.T, userID int64, name string) *domain.Account {
	t.Helper()
	account, err := f.accounts.Create(context.Background(), userID, AccountInput{Name: &name})
	require.NoError(t, err)
	return account
}

func (f *fixture) category(t *testing.T, name string) domain.Category {
	t.Helper()
	categories, err := f.reference.Categories(context.Background())
	require.NoError(t, err)
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q not seeded", name)
	return domain.Category{}
}

func requireStatus(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, status, de.HTTPStatus, de.Message)
	return de
}

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
