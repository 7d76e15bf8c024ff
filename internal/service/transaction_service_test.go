package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/events"
)

func TestCreateTransactionComputesNextDueDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	account := f.account(t, alice.ID, "Main")

	monthly := domain.FrequencyMonthly
	txn, err := f.transactions.Create(ctx, alice.ID, TransactionInput{
		AccountID:       &account.ID,
		Amount:          ptr(domain.Money(-120000)),
		TransactionDate: ptr(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)),
		Description:     ptr("rent"),
		Frequency:       &monthly,
	})
	require.NoError(t, err)
	require.NotNil(t, txn.NextDueDate)
	assert.Equal(t, day("2024-02-15"), *txn.NextDueDate)
	assert.True(t, txn.IsRecurring())
	assert.Equal(t, "Main", txn.AccountName)

	explicit := day("2024-03-01")
	weekly := domain.FrequencyWeekly
	txn, err = f.transactions.Create(ctx, alice.ID, TransactionInput{
		AccountID:       &account.ID,
		Amount:          ptr(domain.Money(-500)),
		TransactionDate: ptr(day("2024-01-15")),
		Frequency:       &weekly,
		NextDueDate:     &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, explicit, *txn.NextDueDate)

	once, err := f.transactions.Create(ctx, alice.ID, TransactionInput{
		AccountID:       &account.ID,
		Amount:          ptr(domain.Money(-500)),
		TransactionDate: ptr(day("2024-01-15")),
		NextDueDate:     &explicit,
	})
	require.NoError(t, err)
	assert.Nil(t, once.NextDueDate)
	assert.Equal(t, domain.FrequencyNone, once.Frequency)

	recurring, err := f.transactions.List(ctx, alice.ID, TransactionListFilter{RecurringOnly: true})
	require.NoError(t, err)
	assert.Len(t, recurring, 2)
	assert.Len(t, f.recorded.ofType(events.EventTransactionCreated), 3)
}

func TestCreateTransactionValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	account := f.account(t, alice.ID, "Main")
	date := day("2024-01-01")

	_, err := f.transactions.Create(ctx, alice.ID, TransactionInput{})
	de := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, de.Details, "account")
	assert.Contains(t, de.Details, "amount")
	assert.Contains(t, de.Details, "transaction_date")

	_, err = f.transactions.Create(ctx, bob.ID, TransactionInput{AccountID: &account.ID, Amount: ptr(domain.Money(1)), TransactionDate: &date})
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.transactions.Create(ctx, alice.ID, TransactionInput{AccountID: &account.ID, Amount: ptr(domain.Money(1)), TransactionDate: &date, CategoryID: ptr(int64(999))})
	requireStatus(t, err, http.StatusBadRequest)

	bogus := domain.Frequency("hourly")
	_, err = f.transactions.Create(ctx, alice.ID, TransactionInput{AccountID: &account.ID, Amount: ptr(domain.Money(1)), TransactionDate: &date, Frequency: &bogus})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestUpdateTransactionResetsDueDateOnFrequencyChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	account := f.account(t, alice.ID, "Main")

	monthly := domain.FrequencyMonthly
	txn, err := f.transactions.Create(ctx, alice.ID, TransactionInput{
		AccountID:       &account.ID,
		Amount:          ptr(domain.Money(-100)),
		TransactionDate: ptr(day("2024-01-10")),
		Frequency:       &monthly,
	})
	require.NoError(t, err)

	weekly := domain.FrequencyWeekly
	updated, err := f.transactions.Update(ctx, alice.ID, txn.ID, TransactionInput{Frequency: &weekly})
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-17"), *updated.NextDueDate)

	none := domain.FrequencyNone
	updated, err = f.transactions.Update(ctx, alice.ID, txn.ID, TransactionInput{Frequency: &none})
	require.NoError(t, err)
	assert.Nil(t, updated.NextDueDate)
}

func TestTransactionOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	account := f.account(t, alice.ID, "Main")
	bobAccount := f.account(t, bob.ID, "Bob's")

	txn, err := f.transactions.Create(ctx, alice.ID, TransactionInput{
		AccountID:       &account.ID,
		Amount:          ptr(domain.Money(100)),
		TransactionDate: ptr(day("2024-01-01")),
	})
	require.NoError(t, err)

	_, err = f.transactions.Get(ctx, bob.ID, txn.ID)
	requireStatus(t, err, http.StatusNotFound)
	requireStatus(t, f.transactions.Delete(ctx, bob.ID, txn.ID), http.StatusNotFound)

	_, err = f.transactions.Update(ctx, alice.ID, txn.ID, TransactionInput{AccountID: &bobAccount.ID})
	requireStatus(t, err, http.StatusNotFound)

	foreign, err := f.transactions.List(ctx, alice.ID, TransactionListFilter{AccountID: &bobAccount.ID})
	require.NoError(t, err)
	assert.Empty(t, foreign)

	require.NoError(t, f.transactions.Delete(ctx, alice.ID, txn.ID))
	_, err = f.transactions.Get(ctx, alice.ID, txn.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestBudgetExceededFiresOnCrossing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	account := f.account(t, alice.ID, "Main")
	food := f.category(t, "Food & Groceries")

	_, err := f.budgets.Create(ctx, alice.ID, BudgetInput{
		AccountID:  &account.ID,
		CategoryID: &food.ID,
		Amount:     ptr(domain.Money(10000)),
		StartDate:  ptr(day("2024-01-01")),
		EndDate:    ptr(day("2024-01-31")),
	})
	require.NoError(t, err)

	spend := func(cents int64, on string) {
		_, err := f.transactions.Create(ctx, alice.ID, TransactionInput{
			AccountID:       &account.ID,
			CategoryID:      &food.ID,
			Amount:          ptr(domain.Money(-cents)),
			TransactionDate: ptr(day(on)),
		})
		require.NoError(t, err)
	}

	spend(6000, "2024-01-05")
	assert.Empty(t, f.recorded.ofType(events.EventBudgetExceeded))

	spend(5000, "2024-01-10")
	exceeded := f.recorded.ofType(events.EventBudgetExceeded)
	require.Len(t, exceeded, 1)
	payload := exceeded[0].Payload.(events.BudgetExceededPayload)
	assert.Equal(t, domain.Money(11000), payload.Spent)

	spend(1000, "2024-01-12")
	spend(9999, "2024-02-01")
	assert.Len(t, f.recorded.ofType(events.EventBudgetExceeded), 1)
}

func TestProcessDueAdvancesRecurringTransactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	account := f.account(t, alice.ID, "Main")

	daily := domain.FrequencyDaily
	monthly := domain.FrequencyMonthly
	due, err := f.transactions.Create(ctx, alice.ID, TransactionInput{
		AccountID:       &account.ID,
		Amount:          ptr(domain.Money(-100)),
		TransactionDate: ptr(day("2024-01-01")),
		Frequency:       &daily,
	})
	require.NoError(t, err)
	later, err := f.transactions.Create(ctx, alice.ID, TransactionInput{
		AccountID:       &account.ID,
		Amount:          ptr(domain.Money(-100)),
		TransactionDate: ptr(day("2024-01-01")),
		Frequency:       &monthly,
		NextDueDate:     ptr(day("2024-06-01")),
	})
	require.NoError(t, err)

	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	advanced, err := f.transactions.ProcessDue(ctx, now, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, advanced)

	got, err := f.transactions.Get(ctx, alice.ID, due.ID)
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-06"), *got.NextDueDate)

	got, err = f.transactions.Get(ctx, alice.ID, later.ID)
	require.NoError(t, err)
	assert.Equal(t, day("2024-06-01"), *got.NextDueDate)

	published := f.recorded.ofType(events.EventRecurringDue)
	require.Len(t, published, 1)
	assert.Equal(t, alice.ID, published[0].UserID)

	advanced, err = f.transactions.ProcessDue(ctx, now, 10)
	require.NoError(t, err)
	assert.Zero(t, advanced)
}
