// Package memstore is a process-local implementation of the repository interfaces.
// It mirrors the Postgres semantics closely enough to back tests and a DSN-less dev run.
package memstore

import (
	"strings"
	"sync"
	"time"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/repository"
)

// Store holds every table behind one lock.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	seq map[string]int64

	users        map[int64]domain.User
	currencies   map[int64]domain.Currency
	accountTypes map[int64]domain.AccountType
	categories   map[int64]domain.Category
	accounts     map[int64]domain.Account
	transactions map[int64]domain.Transaction
	budgets      map[int64]domain.Budget
	goals        map[int64]domain.Goal
}

// New creates an empty store.
func New() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		seq:          make(map[string]int64),
		users:        make(map[int64]domain.User),
		currencies:   make(map[int64]domain.Currency),
		accountTypes: make(map[int64]domain.AccountType),
		categories:   make(map[int64]domain.Category),
		accounts:     make(map[int64]domain.Account),
		transactions: make(map[int64]domain.Transaction),
		budgets:      make(map[int64]domain.Budget),
		goals:        make(map[int64]domain.Goal),
	}
}

// Set exposes the store through the repository interfaces.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Users:        &userRepo{s},
		Currencies:   &currencyRepo{s},
		AccountTypes: &accountTypeRepo{s},
		Categories:   &categoryRepo{s},
		Accounts:     &accountRepo{s},
		Transactions: &transactionRepo{s},
		Budgets:      &budgetRepo{s},
		Goals:        &goalRepo{s},
	}
}

// next must be called with the write lock held.
func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) ownsAccount(accountID, userID int64) bool {
	account, ok := s.accounts[accountID]
	return ok && account.UserID == userID
}

func sameDay(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	x := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	y := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return x.Compare(y)
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
