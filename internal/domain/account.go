package domain

import "time"

// MaxAccountsPerUser caps how many accounts a single user may hold.
const MaxAccountsPerUser = 4

// Currency is reference data describing an ISO currency.
type Currency struct {
	ID     int64
	Code   string
	Name   string
	Symbol string
}

// AccountType is reference data such as Checking or Savings.
type AccountType struct {
	ID          int64
	Name        string
	Description string
}

// Account is a named balance-holding entity owned by a user.
type Account struct {
	ID            int64
	UserID        int64
	AccountTypeID *int64
	CurrencyID    *int64
	Name          string
	Balance       Money
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Currency    *Currency
	AccountType *AccountType
}
