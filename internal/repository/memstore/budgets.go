package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/behnamfe76/finance-service/internal/domain"
)

type budgetRepo struct{ s *Store }

func (r *budgetRepo) Create(_ context.Context, budget *domain.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[budget.AccountID]; !ok {
		return pgx.ErrNoRows
	}
	budget.ID = r.s.next("budgets")
	r.s.budgets[budget.ID] = *budget
	return nil
}

func (r *budgetRepo) GetForUser(_ context.Context, id, userID int64) (*domain.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	budget, ok := r.s.budgets[id]
	if !ok || !r.s.ownsAccount(budget.AccountID, userID) {
		return nil, pgx.ErrNoRows
	}
	return &budget, nil
}

func (r *budgetRepo) ListByUser(_ context.Context, userID int64) ([]domain.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Budget
	for _, budget := range r.s.budgets {
		if r.s.ownsAccount(budget.AccountID, userID) {
			out = append(out, budget)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *budgetRepo) ListActive(_ context.Context, accountID, categoryID int64, at time.Time) ([]domain.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Budget
	for _, budget := range r.s.budgets {
		if budget.AccountID == accountID && budget.CategoryID == categoryID && budget.Covers(at) {
			out = append(out, budget)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *budgetRepo) Update(_ context.Context, budget *domain.Budget, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.budgets[budget.ID]
	if !ok || !r.s.ownsAccount(existing.AccountID, userID) {
		return pgx.ErrNoRows
	}
	r.s.budgets[budget.ID] = *budget
	return nil
}

func (r *budgetRepo) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	budget, ok := r.s.budgets[id]
	if !ok || !r.s.ownsAccount(budget.AccountID, userID) {
		return pgx.ErrNoRows
	}
	delete(r.s.budgets, id)
	return nil
}
