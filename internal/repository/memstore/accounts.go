package memstore

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/repository"
)

type accountRepo struct{ s *Store }

func (r *accountRepo) CreateWithinQuota(_ context.Context, account *domain.Account, limit int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[account.UserID]; !ok {
		return pgx.ErrNoRows
	}
	if r.count(account.UserID) >= limit {
		return repository.ErrQuotaExceeded
	}

	now := r.s.now()
	account.ID = r.s.next("accounts")
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := *account
	stored.Currency, stored.AccountType = nil, nil
	r.s.accounts[account.ID] = stored
	return nil
}

func (r *accountRepo) CountByUser(_ context.Context, userID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.count(userID), nil
}

func (r *accountRepo) count(userID int64) int {
	n := 0
	for _, account := range r.s.accounts {
		if account.UserID == userID {
			n++
		}
	}
	return n
}

func (r *accountRepo) GetForUser(_ context.Context, id, userID int64) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !r.s.ownsAccount(id, userID) {
		return nil, pgx.ErrNoRows
	}
	account := r.hydrate(r.s.accounts[id])
	return &account, nil
}

func (r *accountRepo) ListByUser(_ context.Context, userID int64) ([]domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Account
	for _, account := range r.s.accounts {
		if account.UserID == userID {
			out = append(out, r.hydrate(account))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *accountRepo) hydrate(account domain.Account) domain.Account {
	account.AccountTypeID = cloneInt64(account.AccountTypeID)
	account.CurrencyID = cloneInt64(account.CurrencyID)
	if account.CurrencyID != nil {
		if c, ok := r.s.currencies[*account.CurrencyID]; ok {
			account.Currency = &c
		}
	}
	if account.AccountTypeID != nil {
		if t, ok := r.s.accountTypes[*account.AccountTypeID]; ok {
			account.AccountType = &t
		}
	}
	return account
}

func (r *accountRepo) Update(_ context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.ownsAccount(account.ID, account.UserID) {
		return pgx.ErrNoRows
	}
	existing := r.s.accounts[account.ID]
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = r.s.now()
	stored := *account
	stored.Currency, stored.AccountType = nil, nil
	r.s.accounts[account.ID] = stored
	return nil
}

func (r *accountRepo) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.ownsAccount(id, userID) {
		return pgx.ErrNoRows
	}
	delete(r.s.accounts, id)
	for txID, txn := range r.s.transactions {
		if txn.AccountID == id {
			delete(r.s.transactions, txID)
		}
	}
	for budgetID, budget := range r.s.budgets {
		if budget.AccountID == id {
			delete(r.s.budgets, budgetID)
		}
	}
	for goalID, goal := range r.s.goals {
		if goal.AccountID == id {
			delete(r.s.goals, goalID)
		}
	}
	return nil
}
