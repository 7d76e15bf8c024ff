package service

import (
	"context"
	"time"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/repository"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

// BudgetInput carries writable budget fields; nil pointers are left untouched on update.
type BudgetInput struct {
	AccountID  *int64
	CategoryID *int64
	Amount     *domain.Money
	StartDate  *time.Time
	EndDate    *time.Time
}

// BudgetStatus pairs a budget with its spending so far.
type BudgetStatus struct {
	domain.Budget
	Spent domain.Money
}

// Remaining is the unspent portion, negative once the budget is exceeded.
func (b BudgetStatus) Remaining() domain.Money {
	return b.Amount - b.Spent
}

// BudgetService manages spending limits on owned accounts.
type BudgetService struct {
	budgets      repository.BudgetRepository
	accounts     repository.AccountRepository
	categories   repository.CategoryRepository
	transactions repository.TransactionRepository
}

// BudgetDependencies bundles repositories for the budget service.
type BudgetDependencies struct {
	BudgetRepo      repository.BudgetRepository
	AccountRepo     repository.AccountRepository
	CategoryRepo    repository.CategoryRepository
	TransactionRepo repository.TransactionRepository
}

// NewBudgetService builds the service.
func NewBudgetService(deps BudgetDependencies) *BudgetService {
	return &BudgetService{
		budgets:      deps.BudgetRepo,
		accounts:     deps.AccountRepo,
		categories:   deps.CategoryRepo,
		transactions: deps.TransactionRepo,
	}
}

func (s *BudgetService) List(ctx context.Context, userID int64) ([]BudgetStatus, error) {
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		status, err := s.status(ctx, userID, budget)
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}

func (s *BudgetService) Get(ctx context.Context, userID, id int64) (*BudgetStatus, error) {
	budget, err := s.budgets.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, storeError(err, "budget")
	}
	status, err := s.status(ctx, userID, *budget)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *BudgetService) Create(ctx context.Context, userID int64, input BudgetInput) (*BudgetStatus, error) {
	missing := map[string]any{}
	for field, present := range map[string]bool{
		"account":    input.AccountID != nil,
		"category":   input.CategoryID != nil,
		"amount":     input.Amount != nil,
		"start_date": input.StartDate != nil,
		"end_date":   input.EndDate != nil,
	} {
		if !present {
			missing[field] = "this field is required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("invalid budget", missing)
	}

	budget := &domain.Budget{}
	if err := s.apply(ctx, userID, budget, input); err != nil {
		return nil, err
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, storeError(err, "account")
	}
	return s.Get(ctx, userID, budget.ID)
}

func (s *BudgetService) Update(ctx context.Context, userID, id int64, input BudgetInput) (*BudgetStatus, error) {
	budget, err := s.budgets.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, storeError(err, "budget")
	}
	if err := s.apply(ctx, userID, budget, input); err != nil {
		return nil, err
	}
	if err := s.budgets.Update(ctx, budget, userID); err != nil {
		return nil, storeError(err, "budget")
	}
	return s.Get(ctx, userID, id)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id int64) error {
	return storeError(s.budgets.Delete(ctx, id, userID), "budget")
}

func (s *BudgetService) apply(ctx context.Context, userID int64, budget *domain.Budget, input BudgetInput) error {
	if input.AccountID != nil && *input.AccountID != budget.AccountID {
		account, err := s.accounts.GetForUser(ctx, *input.AccountID, userID)
		if err != nil {
			return storeError(err, "account")
		}
		budget.AccountID = account.ID
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewValidationError("unknown category", map[string]any{"category": "does not exist"})
			}
			return err
		}
		budget.CategoryID = *input.CategoryID
	}
	if input.Amount != nil {
		budget.Amount = *input.Amount
	}
	if input.StartDate != nil {
		budget.StartDate = dateOnly(*input.StartDate)
	}
	if input.EndDate != nil {
		budget.EndDate = dateOnly(*input.EndDate)
	}

	if budget.Amount <= 0 {
		return apperrors.NewValidationError("invalid budget", map[string]any{"amount": "must be greater than zero"})
	}
	if budget.EndDate.Before(budget.StartDate) {
		return apperrors.NewValidationError("invalid budget", map[string]any{"end_date": "must not be before start_date"})
	}
	return nil
}

func (s *BudgetService) status(ctx context.Context, userID int64, budget domain.Budget) (BudgetStatus, error) {
	spent, err := spentWithin(ctx, s.transactions, userID, budget)
	if err != nil {
		return BudgetStatus{}, err
	}
	return BudgetStatus{Budget: budget, Spent: spent}, nil
}
