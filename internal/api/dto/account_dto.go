package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/service"
)

// AccountRequest is shared by create, full and partial update.
type AccountRequest struct {
	Name          *string       `json:"name"`
	Balance       *domain.Money `json:"balance"`
	CurrencyID    *int64        `json:"currency_id"`
	AccountTypeID *int64        `json:"account_type_id"`
}

// Validate will run validation rules
func (r AccountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.CurrencyID, validation.Min(1)),
		validation.Field(&r.AccountTypeID, validation.Min(1)),
	)
}

// Input maps the payload to the service input.
func (r AccountRequest) Input() service.AccountInput {
	return service.AccountInput{
		Name:          r.Name,
		Balance:       r.Balance,
		CurrencyID:    r.CurrencyID,
		AccountTypeID: r.AccountTypeID,
	}
}

// CurrencyResponse is the wire form of a currency.
type CurrencyResponse struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// AccountTypeResponse is the wire form of an account type.
type AccountTypeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse is the wire form of a category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsIncome    bool   `json:"is_income"`
}

// AccountResponse nests the currency and type next to their ids.
type AccountResponse struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Balance       domain.Money         `json:"balance"`
	Currency      *CurrencyResponse    `json:"currency"`
	AccountType   *AccountTypeResponse `json:"account_type"`
	CurrencyID    *int64               `json:"currency_id"`
	AccountTypeID *int64               `json:"account_type_id"`
	CreatedAt     time.Time            `json:"created_at"`
}

func NewCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{ID: c.ID, Code: c.Code, Name: c.Name, Symbol: c.Symbol}
}

func NewAccountTypeResponse(t domain.AccountType) AccountTypeResponse {
	return AccountTypeResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

func NewCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, IsIncome: c.IsIncome}
}

// NewAccountResponse maps an account.
func NewAccountResponse(a domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		Balance:       a.Balance,
		CurrencyID:    a.CurrencyID,
		AccountTypeID: a.AccountTypeID,
		CreatedAt:     a.CreatedAt,
	}
	if a.Currency != nil {
		c := NewCurrencyResponse(*a.Currency)
		resp.Currency = &c
	}
	if a.AccountType != nil {
		t := NewAccountTypeResponse(*a.AccountType)
		resp.AccountType = &t
	}
	return resp
}

// Map converts a slice with fn, never returning nil.
func Map[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
