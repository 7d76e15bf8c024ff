package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/service"
)

// BudgetRequest payload.
type BudgetRequest struct {
	Account   *int64        `json:"account"`
	Category  *int64        `json:"category"`
	Amount    *domain.Money `json:"amount"`
	StartDate *string       `json:"start_date"`
	EndDate   *string       `json:"end_date"`
}

// Validate will run validation rules
func (r BudgetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Account, validation.Min(1)),
		validation.Field(&r.Category, validation.Min(1)),
		validation.Field(&r.StartDate, validation.By(dateRule)),
		validation.Field(&r.EndDate, validation.By(dateRule)),
	)
}

// Input maps the payload to the service input.
func (r BudgetRequest) Input() service.BudgetInput {
	return service.BudgetInput{
		AccountID:  r.Account,
		CategoryID: r.Category,
		Amount:     r.Amount,
		StartDate:  optionalDate(r.StartDate),
		EndDate:    optionalDate(r.EndDate),
	}
}

// BudgetResponse includes the spending so far.
type BudgetResponse struct {
	ID        int64        `json:"id"`
	Account   int64        `json:"account"`
	Category  int64        `json:"category"`
	Amount    domain.Money `json:"amount"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Spent     domain.Money `json:"spent"`
	Remaining domain.Money `json:"remaining"`
}

func NewBudgetResponse(b service.BudgetStatus) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID,
		Account:   b.AccountID,
		Category:  b.CategoryID,
		Amount:    b.Amount,
		StartDate: formatDate(b.StartDate),
		EndDate:   formatDate(b.EndDate),
		Spent:     b.Spent,
		Remaining: b.Remaining(),
	}
}

// GoalRequest payload.
type GoalRequest struct {
	Account       *int64        `json:"account"`
	Name          *string       `json:"name"`
	TargetAmount  *domain.Money `json:"target_amount"`
	CurrentAmount *domain.Money `json:"current_amount"`
	DueDate       *string       `json:"due_date"`
}

// Validate will run validation rules
func (r GoalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Account, validation.Min(1)),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.DueDate, validation.By(dateRule)),
	)
}

// Input maps the payload to the service input.
func (r GoalRequest) Input() service.GoalInput {
	return service.GoalInput{
		AccountID:     r.Account,
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		DueDate:       optionalDate(r.DueDate),
	}
}

// GoalResponse is the wire form of a goal.
type GoalResponse struct {
	ID            int64        `json:"id"`
	Account       int64        `json:"account"`
	Name          string       `json:"name"`
	TargetAmount  domain.Money `json:"target_amount"`
	CurrentAmount domain.Money `json:"current_amount"`
	DueDate       string       `json:"due_date"`
}

func NewGoalResponse(g domain.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		Account:       g.AccountID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		DueDate:       formatDate(g.DueDate),
	}
}

// CategoryTotalResponse is one row of a summary.
type CategoryTotalResponse struct {
	Category     *int64       `json:"category"`
	CategoryName string       `json:"category_name"`
	IsIncome     bool         `json:"is_income"`
	Total        domain.Money `json:"total"`
	Count        int          `json:"count"`
}

// SummaryResponse is the report body.
type SummaryResponse struct {
	Income     domain.Money            `json:"income"`
	Expense    domain.Money            `json:"expense"`
	Net        domain.Money            `json:"net"`
	Categories []CategoryTotalResponse `json:"categories"`
}

// NewSummaryResponse maps a summary.
func NewSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		Income:  s.Income,
		Expense: s.Expense,
		Net:     s.Net,
		Categories: Map(s.Categories, func(c domain.CategoryTotal) CategoryTotalResponse {
			return CategoryTotalResponse{
				Category:     c.CategoryID,
				CategoryName: c.CategoryName,
				IsIncome:     c.IsIncome,
				Total:        c.Total,
				Count:        c.Count,
			}
		}),
	}
}
