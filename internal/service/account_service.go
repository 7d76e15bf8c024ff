package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/events"
	"github.com/behnamfe76/finance-service/internal/repository"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

// AccountInput carries the writable account fields. Nil pointers leave a field
// untouched on update.
type AccountInput struct {
	Name          *string
	Balance       *domain.Money
	CurrencyID    *int64
	AccountTypeID *int64
}

// AccountService manages the caller's accounts and enforces the per-user quota.
type AccountService struct {
	accounts     repository.AccountRepository
	currencies   repository.CurrencyRepository
	accountTypes repository.AccountTypeRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	limit        int
}

// AccountDependencies bundles repositories for the account service.
type AccountDependencies struct {
	AccountRepo     repository.AccountRepository
	CurrencyRepo    repository.CurrencyRepository
	AccountTypeRepo repository.AccountTypeRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accounts:     deps.AccountRepo,
		currencies:   deps.CurrencyRepo,
		accountTypes: deps.AccountTypeRepo,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
		limit:        domain.MaxAccountsPerUser,
	}
}

// QuotaMessage is returned when a user already holds the maximum number of accounts.
func QuotaMessage(limit int) string {
	return fmt.Sprintf("You have reached the maximum limit of %d accounts.", limit)
}

// List returns the caller's accounts.
func (s *AccountService) List(ctx context.Context, userID int64) ([]domain.Account, error) {
	return s.accounts.ListByUser(ctx, userID)
}

// Get returns one of the caller's accounts.
func (s *AccountService) Get(ctx context.Context, userID, id int64) (*domain.Account, error) {
	account, err := s.accounts.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, storeError(err, "account")
	}
	return account, nil
}

// Create adds an account unless the caller already holds the maximum.
func (s *AccountService) Create(ctx context.Context, userID int64, input AccountInput) (*domain.Account, error) {
	account := &domain.Account{UserID: userID}
	if err := s.apply(ctx, account, input); err != nil {
		return nil, err
	}

	if err := s.accounts.CreateWithinQuota(ctx, account, s.limit); err != nil {
		if errors.Is(err, repository.ErrQuotaExceeded) {
			return nil, apperrors.NewForbidden(QuotaMessage(s.limit))
		}
		return nil, storeError(err, "user")
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventAccountCreated, userID, events.AccountPayload{
		AccountID: account.ID,
		Name:      account.Name,
	}))
	return s.Get(ctx, userID, account.ID)
}

// Update applies the non-nil fields of input to an owned account.
func (s *AccountService) Update(ctx context.Context, userID, id int64, input AccountInput) (*domain.Account, error) {
	account, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, account, input); err != nil {
		return nil, err
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, storeError(err, "account")
	}
	return s.Get(ctx, userID, id)
}

// Delete removes an owned account together with its transactions, budgets and goals.
func (s *AccountService) Delete(ctx context.Context, userID, id int64) error {
	account, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id, userID); err != nil {
		return storeError(err, "account")
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventAccountDeleted, userID, events.AccountPayload{
		AccountID: account.ID,
		Name:      account.Name,
	}))
	return nil
}

func (s *AccountService) apply(ctx context.Context, account *domain.Account, input AccountInput) error {
	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Balance != nil {
		account.Balance = *input.Balance
	}
	if input.CurrencyID != nil {
		if _, err := s.currencies.GetByID(ctx, *input.CurrencyID); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewValidationError("unknown currency", map[string]any{"currency_id": "does not exist"})
			}
			return err
		}
		account.CurrencyID = input.CurrencyID
	}
	if input.AccountTypeID != nil {
		if _, err := s.accountTypes.GetByID(ctx, *input.AccountTypeID); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewValidationError("unknown account type", map[string]any{"account_type_id": "does not exist"})
			}
			return err
		}
		account.AccountTypeID = input.AccountTypeID
	}
	if account.Name == "" {
		return apperrors.NewValidationError("name is required", map[string]any{"name": "cannot be blank"})
	}
	return nil
}
