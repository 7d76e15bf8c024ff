package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/events"
	"github.com/behnamfe76/finance-service/internal/repository"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

// TransactionInput carries writable transaction fields. Nil pointers leave a field
// untouched on update; Create requires account, amount and date.
type TransactionInput struct {
	AccountID       *int64
	CategoryID      *int64
	Amount          *domain.Money
	TransactionDate *time.Time
	Description     *string
	Frequency       *domain.Frequency
	NextDueDate     *time.Time
}

// TransactionListFilter is the caller-facing listing filter.
type TransactionListFilter struct {
	AccountID     *int64
	RecurringOnly bool
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// TransactionService records transactions against owned accounts.
type TransactionService struct {
	transactions repository.TransactionRepository
	accounts     repository.AccountRepository
	categories   repository.CategoryRepository
	budgets      repository.BudgetRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// TransactionDependencies bundles repositories for the transaction service.
type TransactionDependencies struct {
	TransactionRepo repository.TransactionRepository
	AccountRepo     repository.AccountRepository
	CategoryRepo    repository.CategoryRepository
	BudgetRepo      repository.BudgetRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewTransactionService builds the service.
func NewTransactionService(deps TransactionDependencies) *TransactionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionService{
		transactions: deps.TransactionRepo,
		accounts:     deps.AccountRepo,
		categories:   deps.CategoryRepo,
		budgets:      deps.BudgetRepo,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
	}
}

// List returns the caller's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID int64, filter TransactionListFilter) ([]domain.Transaction, error) {
	return s.transactions.List(ctx, repository.TransactionFilter{
		UserID:        userID,
		AccountID:     filter.AccountID,
		RecurringOnly: filter.RecurringOnly,
		From:          filter.From,
		To:            filter.To,
		Limit:         filter.Limit,
		Offset:        filter.Offset,
	})
}

// Get returns one owned transaction.
func (s *TransactionService) Get(ctx context.Context, userID, id int64) (*domain.Transaction, error) {
	txn, err := s.transactions.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, storeError(err, "transaction")
	}
	return txn, nil
}

// Create records a transaction on an owned account.
func (s *TransactionService) Create(ctx context.Context, userID int64, input TransactionInput) (*domain.Transaction, error) {
	missing := map[string]any{}
	if input.AccountID == nil {
		missing["account"] = "this field is required"
	}
	if input.Amount == nil {
		missing["amount"] = "this field is required"
	}
	if input.TransactionDate == nil {
		missing["transaction_date"] = "this field is required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("invalid transaction", missing)
	}

	txn := &domain.Transaction{Frequency: domain.FrequencyNone}
	if err := s.apply(ctx, userID, txn, input); err != nil {
		return nil, err
	}
	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, storeError(err, "account")
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventTransactionCreated, userID, events.TransactionCreatedPayload{
		TransactionID: txn.ID,
		AccountID:     txn.AccountID,
		Amount:        txn.Amount,
		Frequency:     txn.Frequency,
	}))
	s.checkBudgets(ctx, userID, txn)

	return s.Get(ctx, userID, txn.ID)
}

// Update applies the non-nil fields of input to an owned transaction.
func (s *TransactionService) Update(ctx context.Context, userID, id int64, input TransactionInput) (*domain.Transaction, error) {
	txn, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.Frequency != nil && input.NextDueDate == nil && *input.Frequency != txn.Frequency {
		txn.NextDueDate = nil
	}
	if err := s.apply(ctx, userID, txn, input); err != nil {
		return nil, err
	}
	if err := s.transactions.Update(ctx, txn, userID); err != nil {
		return nil, storeError(err, "transaction")
	}
	return s.Get(ctx, userID, id)
}

// Delete removes an owned transaction.
func (s *TransactionService) Delete(ctx context.Context, userID, id int64) error {
	return storeError(s.transactions.Delete(ctx, id, userID), "transaction")
}

func (s *TransactionService) apply(ctx context.Context, userID int64, txn *domain.Transaction, input TransactionInput) error {
	if input.AccountID != nil && *input.AccountID != txn.AccountID {
		account, err := s.accounts.GetForUser(ctx, *input.AccountID, userID)
		if err != nil {
			return storeError(err, "account")
		}
		txn.AccountID = account.ID
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewValidationError("unknown category", map[string]any{"category": "does not exist"})
			}
			return err
		}
		txn.CategoryID = input.CategoryID
	}
	if input.Amount != nil {
		txn.Amount = *input.Amount
	}
	if input.TransactionDate != nil {
		txn.TransactionDate = input.TransactionDate.UTC()
	}
	if input.Description != nil {
		txn.Description = *input.Description
	}
	if input.Frequency != nil {
		if !input.Frequency.Valid() {
			return apperrors.NewValidationError("invalid frequency", map[string]any{
				"frequency": "must be one of none, daily, weekly, monthly, yearly",
			})
		}
		txn.Frequency = *input.Frequency
	}
	if input.NextDueDate != nil {
		due := dateOnly(*input.NextDueDate)
		txn.NextDueDate = &due
	}

	switch {
	case !txn.IsRecurring():
		txn.Frequency = domain.FrequencyNone
		txn.NextDueDate = nil
	case txn.NextDueDate == nil:
		due := dateOnly(txn.Frequency.Next(txn.TransactionDate))
		txn.NextDueDate = &due
	}
	return nil
}

// checkBudgets publishes budget_exceeded for every active budget this expense pushes
// past its limit.
func (s *TransactionService) checkBudgets(ctx context.Context, userID int64, txn *domain.Transaction) {
	if s.budgets == nil || txn.CategoryID == nil || txn.Amount >= 0 {
		return
	}
	budgets, err := s.budgets.ListActive(ctx, txn.AccountID, *txn.CategoryID, txn.TransactionDate)
	if err != nil {
		s.logger.Warn("budget lookup failed", zap.Int64("transaction_id", txn.ID), zap.Error(err))
		return
	}
	for _, budget := range budgets {
		spent, err := spentWithin(ctx, s.transactions, userID, budget)
		if err != nil {
			s.logger.Warn("budget spend lookup failed", zap.Int64("budget_id", budget.ID), zap.Error(err))
			continue
		}
		before := spent - txn.Amount.Abs()
		if spent > budget.Amount && before <= budget.Amount {
			publish(ctx, s.dispatcher, s.logger, events.New(events.EventBudgetExceeded, userID, events.BudgetExceededPayload{
				BudgetID:   budget.ID,
				AccountID:  budget.AccountID,
				CategoryID: budget.CategoryID,
				Limit:      budget.Amount,
				Spent:      spent,
			}))
		}
	}
}

// spentWithin sums the expenses recorded against the budget's account and category
// inside its window.
func spentWithin(ctx context.Context, transactions repository.TransactionRepository, userID int64, budget domain.Budget) (domain.Money, error) {
	from := dateOnly(budget.StartDate)
	to := dateOnly(budget.EndDate).Add(24*time.Hour - time.Nanosecond)
	txns, err := transactions.List(ctx, repository.TransactionFilter{
		UserID:     userID,
		AccountID:  &budget.AccountID,
		CategoryID: &budget.CategoryID,
		From:       &from,
		To:         &to,
		Limit:      100000,
	})
	if err != nil {
		return 0, err
	}
	var spent domain.Money
	for _, t := range txns {
		if t.Amount < 0 {
			spent += t.Amount.Abs()
		}
	}
	return spent, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ProcessDue announces every recurring transaction due by now and moves its next due
// date past now. It returns how many transactions were advanced.
func (s *TransactionService) ProcessDue(ctx context.Context, now time.Time, batch int) (int, error) {
	today := dateOnly(now)
	due, err := s.transactions.ListDue(ctx, today, batch)
	if err != nil {
		return 0, err
	}

	advanced := 0
	for _, item := range due {
		dueDate := dateOnly(*item.NextDueDate)
		next := dueDate
		for !next.After(today) {
			next = dateOnly(item.Frequency.Next(next))
		}
		if err := s.transactions.SetNextDueDate(ctx, item.ID, next); err != nil {
			if ctx.Err() != nil {
				return advanced, ctx.Err()
			}
			s.logger.Warn("advance recurring transaction failed", zap.Int64("transaction_id", item.ID), zap.Error(err))
			continue
		}
		advanced++
		publish(ctx, s.dispatcher, s.logger, events.New(events.EventRecurringDue, item.UserID, events.RecurringDuePayload{
			TransactionID: item.ID,
			AccountID:     item.AccountID,
			Amount:        item.Amount,
			Frequency:     item.Frequency,
			DueDate:       dueDate,
			NextDueDate:   next,
		}))
	}
	return advanced, nil
}
