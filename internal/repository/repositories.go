package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Set bundles every repository the services depend on.
type Set struct {
	Users        UserRepository
	Currencies   CurrencyRepository
	AccountTypes AccountTypeRepository
	Categories   CategoryRepository
	Accounts     AccountRepository
	Transactions TransactionRepository
	Budgets      BudgetRepository
	Goals        GoalRepository
}

// NewPostgresSet wires the Postgres implementations onto one pool.
func NewPostgresSet(pool *pgxpool.Pool) Set {
	return Set{
		Users:        NewUserRepository(pool),
		Currencies:   NewCurrencyRepository(pool),
		AccountTypes: NewAccountTypeRepository(pool),
		Categories:   NewCategoryRepository(pool),
		Accounts:     NewAccountRepository(pool),
		Transactions: NewTransactionRepository(pool),
		Budgets:      NewBudgetRepository(pool),
		Goals:        NewGoalRepository(pool),
	}
}
