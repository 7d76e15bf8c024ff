package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/service"
)

var frequencies = []interface{}{
	string(domain.FrequencyNone),
	string(domain.FrequencyDaily),
	string(domain.FrequencyWeekly),
	string(domain.FrequencyMonthly),
	string(domain.FrequencyYearly),
}

// TransactionRequest payload. Account and category are ids.
type TransactionRequest struct {
	Account         *int64        `json:"account"`
	Category        *int64        `json:"category"`
	Amount          *domain.Money `json:"amount"`
	TransactionDate *string       `json:"transaction_date"`
	Description     *string       `json:"description"`
	Frequency       *string       `json:"frequency"`
	NextDueDate     *string       `json:"next_due_date"`
}

// Validate will run validation rules
func (r TransactionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Account, validation.Min(1)),
		validation.Field(&r.Category, validation.Min(1)),
		validation.Field(&r.TransactionDate, validation.By(dateTimeRule)),
		validation.Field(&r.Description, validation.Length(0, 255)),
		validation.Field(&r.Frequency, validation.In(frequencies...)),
		validation.Field(&r.NextDueDate, validation.By(dateRule)),
	)
}

// Input maps the payload to the service input. Call after Validate.
func (r TransactionRequest) Input() service.TransactionInput {
	input := service.TransactionInput{
		AccountID:       r.Account,
		CategoryID:      r.Category,
		Amount:          r.Amount,
		TransactionDate: optionalDateTime(r.TransactionDate),
		Description:     r.Description,
		NextDueDate:     optionalDate(r.NextDueDate),
	}
	if r.Frequency != nil {
		f := domain.Frequency(*r.Frequency)
		input.Frequency = &f
	}
	return input
}

// TransactionResponse is the wire form of a transaction.
type TransactionResponse struct {
	ID              int64            `json:"id"`
	Account         int64            `json:"account"`
	Amount          domain.Money     `json:"amount"`
	TransactionDate time.Time        `json:"transaction_date"`
	Description     string           `json:"description"`
	Category        *int64           `json:"category"`
	CategoryName    *string          `json:"category_name"`
	AccountName     string           `json:"account_name"`
	Frequency       domain.Frequency `json:"frequency"`
	NextDueDate     *string          `json:"next_due_date"`
}

// NewTransactionResponse maps a transaction.
func NewTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		Account:         t.AccountID,
		Amount:          t.Amount,
		TransactionDate: t.TransactionDate,
		Description:     t.Description,
		Category:        t.CategoryID,
		CategoryName:    t.CategoryName,
		AccountName:     t.AccountName,
		Frequency:       t.Frequency,
		NextDueDate:     formatOptionalDate(t.NextDueDate),
	}
}
