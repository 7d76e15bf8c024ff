package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/repository"
)

func seedUser(t *testing.T, set repository.Set, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: username + "@example.com", IsActive: true}
	require.NoError(t, set.Users.Create(context.Background(), user))
	return user
}

func TestUserUniqueness(t *testing.T) {
	set := New().Set()
	ctx := context.Background()
	seedUser(t, set, "alice")

	err := set.Users.Create(ctx, &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = set.Users.Create(ctx, &domain.User{Username: "other", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := set.Users.GetByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = set.Users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestAccountQuotaIsAtomic(t *testing.T) {
	set := New().Set()
	user := seedUser(t, set, "alice")

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- set.Accounts.CreateWithinQuota(context.Background(), &domain.Account{UserID: user.ID, Name: "acct"}, domain.MaxAccountsPerUser)
		}()
	}
	wg.Wait()
	close(results)

	created, rejected := 0, 0
	for err := range results {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, repository.ErrQuotaExceeded)
			rejected++
		}
	}
	assert.Equal(t, domain.MaxAccountsPerUser, created)
	assert.Equal(t, 10-domain.MaxAccountsPerUser, rejected)

	count, err := set.Accounts.CountByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxAccountsPerUser, count)
}

func TestAccountOwnershipAndCascade(t *testing.T) {
	set := New().Set()
	ctx := context.Background()
	alice := seedUser(t, set, "alice")
	bob := seedUser(t, set, "bob")

	usd := &domain.Currency{Code: "USD", Name: "US Dollar", Symbol: "$"}
	require.NoError(t, set.Currencies.Upsert(ctx, usd))

	account := &domain.Account{UserID: alice.ID, Name: "Checking", CurrencyID: &usd.ID, Balance: 100000}
	require.NoError(t, set.Accounts.CreateWithinQuota(ctx, account, 4))

	got, err := set.Accounts.GetForUser(ctx, account.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Currency)
	assert.Equal(t, "USD", got.Currency.Code)

	_, err = set.Accounts.GetForUser(ctx, account.ID, bob.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, set.Accounts.Delete(ctx, account.ID, bob.ID), pgx.ErrNoRows)

	txn := &domain.Transaction{AccountID: account.ID, Amount: -500, TransactionDate: time.Now(), Frequency: domain.FrequencyNone}
	require.NoError(t, set.Transactions.Create(ctx, txn))

	require.NoError(t, set.Accounts.Delete(ctx, account.ID, alice.ID))
	_, err = set.Transactions.GetForUser(ctx, txn.ID, alice.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestTransactionListFilters(t *testing.T) {
	set := New().Set()
	ctx := context.Background()
	alice := seedUser(t, set, "alice")
	bob := seedUser(t, set, "bob")

	food := &domain.Category{Name: "Food & Groceries"}
	require.NoError(t, set.Categories.Upsert(ctx, food))

	a1 := &domain.Account{UserID: alice.ID, Name: "A1"}
	a2 := &domain.Account{UserID: alice.ID, Name: "A2"}
	b1 := &domain.Account{UserID: bob.ID, Name: "B1"}
	for _, acct := range []*domain.Account{a1, a2, b1} {
		require.NoError(t, set.Accounts.CreateWithinQuota(ctx, acct, 4))
	}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	txns := []*domain.Transaction{
		{AccountID: a1.ID, CategoryID: &food.ID, Amount: -1000, TransactionDate: base, Frequency: domain.FrequencyNone},
		{AccountID: a1.ID, Amount: 50000, TransactionDate: base.AddDate(0, 0, 1), Frequency: domain.FrequencyMonthly},
		{AccountID: a2.ID, Amount: -200, TransactionDate: base.AddDate(0, 0, 2), Frequency: domain.FrequencyNone},
		{AccountID: b1.ID, Amount: -300, TransactionDate: base, Frequency: domain.FrequencyWeekly},
	}
	for _, txn := range txns {
		require.NoError(t, set.Transactions.Create(ctx, txn))
	}

	all, err := set.Transactions.List(ctx, repository.TransactionFilter{UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, txns[2].ID, all[0].ID, "newest first")
	assert.Equal(t, "A2", all[0].AccountName)

	byAccount, err := set.Transactions.List(ctx, repository.TransactionFilter{UserID: alice.ID, AccountID: &a1.ID})
	require.NoError(t, err)
	assert.Len(t, byAccount, 2)

	foreign, err := set.Transactions.List(ctx, repository.TransactionFilter{UserID: alice.ID, AccountID: &b1.ID})
	require.NoError(t, err)
	assert.Empty(t, foreign)

	recurring, err := set.Transactions.List(ctx, repository.TransactionFilter{UserID: alice.ID, RecurringOnly: true})
	require.NoError(t, err)
	require.Len(t, recurring, 1)
	assert.Equal(t, domain.FrequencyMonthly, recurring[0].Frequency)

	byCategory, err := set.Transactions.List(ctx, repository.TransactionFilter{UserID: alice.ID, CategoryID: &food.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.NotNil(t, byCategory[0].CategoryName)
	assert.Equal(t, "Food & Groceries", *byCategory[0].CategoryName)
}

func TestBudgetListActive(t *testing.T) {
	set := New().Set()
	ctx := context.Background()
	alice := seedUser(t, set, "alice")
	acct := &domain.Account{UserID: alice.ID, Name: "A"}
	require.NoError(t, set.Accounts.CreateWithinQuota(ctx, acct, 4))

	budget := &domain.Budget{
		AccountID:  acct.ID,
		CategoryID: 7,
		Amount:     10000,
		StartDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, set.Budgets.Create(ctx, budget))

	active, err := set.Budgets.ListActive(ctx, acct.ID, 7, time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, active, 1)

	active, err = set.Budgets.ListActive(ctx, acct.ID, 7, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, active)
}
