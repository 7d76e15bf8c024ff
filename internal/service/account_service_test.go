package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/events"
)

func TestAccountQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	for i := 0; i < 3; i++ {
		f.account(t, alice.ID, fmt.Sprintf("acct-%d", i))
	}
	fourth, err := f.accounts.Create(ctx, alice.ID, AccountInput{Name: ptr("acct-3")})
	require.NoError(t, err)
	assert.Equal(t, "acct-3", fourth.Name)

	_, err = f.accounts.Create(ctx, alice.ID, AccountInput{Name: ptr("acct-4")})
	de := requireStatus(t, err, http.StatusForbidden)
	assert.Equal(t, "You have reached the maximum limit of 4 accounts.", de.Message)

	accounts, err := f.accounts.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, accounts, domain.MaxAccountsPerUser)
	assert.Len(t, f.recorded.ofType(events.EventAccountCreated), 4)

	require.NoError(t, f.accounts.Delete(ctx, alice.ID, fourth.ID))
	_, err = f.accounts.Create(ctx, alice.ID, AccountInput{Name: ptr("replacement")})
	assert.NoError(t, err)
}

func TestAccountReferenceValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	currencies, err := f.reference.Currencies(ctx)
	require.NoError(t, err)
	types, err := f.reference.AccountTypes(ctx)
	require.NoError(t, err)

	account, err := f.accounts.Create(ctx, alice.ID, AccountInput{
		Name:          ptr("Main"),
		Balance:       ptr(domain.Money(100000)),
		CurrencyID:    &currencies[0].ID,
		AccountTypeID: &types[0].ID,
	})
	require.NoError(t, err)
	require.NotNil(t, account.Currency)
	require.NotNil(t, account.AccountType)
	assert.Equal(t, currencies[0].Code, account.Currency.Code)
	assert.Equal(t, "1000.00", account.Balance.String())

	_, err = f.accounts.Create(ctx, alice.ID, AccountInput{Name: ptr("X"), CurrencyID: ptr(int64(999))})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = f.accounts.Create(ctx, alice.ID, AccountInput{Name: ptr("")})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = f.accounts.Create(ctx, alice.ID, AccountInput{})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestAccountOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	account := f.account(t, alice.ID, "Main")

	_, err := f.accounts.Get(ctx, bob.ID, account.ID)
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.accounts.Update(ctx, bob.ID, account.ID, AccountInput{Name: ptr("stolen")})
	requireStatus(t, err, http.StatusNotFound)

	requireStatus(t, f.accounts.Delete(ctx, bob.ID, account.ID), http.StatusNotFound)

	updated, err := f.accounts.Update(ctx, alice.ID, account.ID, AccountInput{Name: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.NoError(t, f.accounts.Delete(ctx, alice.ID, account.ID))
	assert.Len(t, f.recorded.ofType(events.EventAccountDeleted), 1)
}
