package service

import (
	"context"
	"strings"
	"time"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/repository"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

// GoalInput carries writable goal fields; nil pointers are left untouched on update.
type GoalInput struct {
	AccountID     *int64
	Name          *string
	TargetAmount  *domain.Money
	CurrentAmount *domain.Money
	DueDate       *time.Time
}

// GoalService manages savings goals on owned accounts.
type GoalService struct {
	goals    repository.GoalRepository
	accounts repository.AccountRepository
}

// NewGoalService builds the service.
func NewGoalService(goals repository.GoalRepository, accounts repository.AccountRepository) *GoalService {
	return &GoalService{goals: goals, accounts: accounts}
}

func (s *GoalService) List(ctx context.Context, userID int64) ([]domain.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func (s *GoalService) Get(ctx context.Context, userID, id int64) (*domain.Goal, error) {
	goal, err := s.goals.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, storeError(err, "goal")
	}
	return goal, nil
}

func (s *GoalService) Create(ctx context.Context, userID int64, input GoalInput) (*domain.Goal, error) {
	missing := map[string]any{}
	if input.AccountID == nil {
		missing["account"] = "this field is required"
	}
	if input.Name == nil {
		missing["name"] = "this field is required"
	}
	if input.TargetAmount == nil {
		missing["target_amount"] = "this field is required"
	}
	if input.DueDate == nil {
		missing["due_date"] = "this field is required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("invalid goal", missing)
	}

	goal := &domain.Goal{}
	if err := s.apply(ctx, userID, goal, input); err != nil {
		return nil, err
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, storeError(err, "account")
	}
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id int64, input GoalInput) (*domain.Goal, error) {
	goal, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, userID, goal, input); err != nil {
		return nil, err
	}
	if err := s.goals.Update(ctx, goal, userID); err != nil {
		return nil, storeError(err, "goal")
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id int64) error {
	return storeError(s.goals.Delete(ctx, id, userID), "goal")
}

func (s *GoalService) apply(ctx context.Context, userID int64, goal *domain.Goal, input GoalInput) error {
	if input.AccountID != nil && *input.AccountID != goal.AccountID {
		account, err := s.accounts.GetForUser(ctx, *input.AccountID, userID)
		if err != nil {
			return storeError(err, "account")
		}
		goal.AccountID = account.ID
	}
	if input.Name != nil {
		goal.Name = strings.TrimSpace(*input.Name)
	}
	if input.TargetAmount != nil {
		goal.TargetAmount = *input.TargetAmount
	}
	if input.CurrentAmount != nil {
		goal.CurrentAmount = *input.CurrentAmount
	}
	if input.DueDate != nil {
		goal.DueDate = dateOnly(*input.DueDate)
	}

	details := map[string]any{}
	if goal.Name == "" {
		details["name"] = "cannot be blank"
	}
	if goal.TargetAmount <= 0 {
		details["target_amount"] = "must be greater than zero"
	}
	if goal.CurrentAmount < 0 {
		details["current_amount"] = "must not be negative"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid goal", details)
	}
	return nil
}
