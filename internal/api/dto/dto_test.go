package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/service"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

func details(t *testing.T, err error) map[string]any {
	t.Helper()
	de := apperrors.ToDomainError(ValidationError(err))
	require.NotNil(t, de)
	require.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	return de.Details
}

func TestLoginRequest(t *testing.T) {
	assert.NoError(t, LoginRequest{Username: "alice", Password: "x"}.Validate())
	assert.NoError(t, LoginRequest{Email: "a@example.com", Password: "x"}.Validate())
	assert.Equal(t, "alice", LoginRequest{Username: " alice ", Email: "a@example.com"}.Identifier())

	d := details(t, LoginRequest{}.Validate())
	assert.Contains(t, d, "username")
	assert.Contains(t, d, "password")

	d = details(t, LoginRequest{Email: "nope", Password: "x"}.Validate())
	assert.Contains(t, d, "email")
}

func TestRequireIdentifierKeepsOtherErrors(t *testing.T) {
	internal := errors.New("rule misconfigured")
	assert.Same(t, internal, requireIdentifier(internal, ""))
	assert.Same(t, internal, requireIdentifier(internal, "alice"))
	assert.NoError(t, requireIdentifier(nil, "alice"))

	errs, ok := requireIdentifier(nil, "").(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "username")
}

func TestRegisterRequest(t *testing.T) {
	ok := RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}
	assert.NoError(t, ok.Validate())

	ok.Password2 = "password123"
	assert.NoError(t, ok.Validate())

	bad := RegisterRequest{Username: "has space", Email: "x", Password: "short", Password2: "other"}
	d := details(t, bad.Validate())
	for _, field := range []string{"username", "email", "password", "password2"} {
		assert.Contains(t, d, field)
	}

	staff := CreateUserRequest{RegisterRequest: ok, IsStaff: true}
	assert.True(t, staff.Input().IsStaff)
	assert.Equal(t, "alice", staff.Input().Username)
}

func TestTransactionRequestParsing(t *testing.T) {
	var req TransactionRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"account": 3, "category": 2, "amount": "-12.5",
		"transaction_date": "2024-01-15T10:00:00+02:00", "frequency": "weekly", "next_due_date": "2024-01-22"
	}`), &req))
	require.NoError(t, req.Validate())

	input := req.Input()
	assert.Equal(t, int64(3), *input.AccountID)
	assert.Equal(t, domain.Money(-1250), *input.Amount)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), *input.TransactionDate)
	assert.Equal(t, domain.FrequencyWeekly, *input.Frequency)
	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), *input.NextDueDate)

	plain, err := ParseDateTime("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), plain)

	freq := "hourly"
	date := "15/01/2024"
	d := details(t, TransactionRequest{Frequency: &freq, TransactionDate: &date, NextDueDate: &date}.Validate())
	assert.Contains(t, d, "frequency")
	assert.Contains(t, d, "transaction_date")
	assert.Contains(t, d, "next_due_date")
}

func TestTransactionResponseShape(t *testing.T) {
	category := int64(4)
	name := "Housing"
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	resp := NewTransactionResponse(domain.Transaction{
		ID:              9,
		AccountID:       1,
		CategoryID:      &category,
		CategoryName:    &name,
		AccountName:     "Main",
		Amount:          -120000,
		TransactionDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Frequency:       domain.FrequencyMonthly,
		NextDueDate:     &due,
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "-1200.00", body["amount"])
	assert.Equal(t, "2024-02-01", body["next_due_date"])
	assert.EqualValues(t, 1, body["account"])
	assert.EqualValues(t, 4, body["category"])
	for _, key := range []string{"id", "transaction_date", "description", "category_name", "account_name", "frequency"} {
		assert.Contains(t, body, key)
	}
}

func TestAccountResponseNestsReferences(t *testing.T) {
	currencyID := int64(1)
	resp := NewAccountResponse(domain.Account{
		ID:         2,
		Name:       "Main",
		Balance:    1050,
		CurrencyID: &currencyID,
		Currency:   &domain.Currency{ID: 1, Code: "USD", Name: "US Dollar", Symbol: "$"},
	})
	require.NotNil(t, resp.Currency)
	assert.Equal(t, "USD", resp.Currency.Code)
	assert.Nil(t, resp.AccountType)
	assert.Equal(t, "10.50", resp.Balance.String())
}

func TestPlanningRequests(t *testing.T) {
	bad := "2024-13-01"
	d := details(t, BudgetRequest{StartDate: &bad}.Validate())
	assert.Contains(t, d, "start_date")

	start, end := "2024-01-01", "2024-01-31"
	input := BudgetRequest{StartDate: &start, EndDate: &end}.Input()
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *input.EndDate)

	empty := ""
	d = details(t, GoalRequest{Name: &empty}.Validate())
	assert.Contains(t, d, "name")

	status := NewBudgetResponse(service.BudgetStatus{
		Budget: domain.Budget{Amount: 1000, StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Spent:  1500,
	})
	assert.Equal(t, domain.Money(-500), status.Remaining)
	assert.Equal(t, "2024-01-01", status.StartDate)
}

func TestMapNeverReturnsNil(t *testing.T) {
	out := Map([]domain.Goal(nil), NewGoalResponse)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
