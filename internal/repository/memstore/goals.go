package memstore

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/behnamfe76/finance-service/internal/domain"
)

type goalRepo struct{ s *Store }

func (r *goalRepo) Create(_ context.Context, goal *domain.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[goal.AccountID]; !ok {
		return pgx.ErrNoRows
	}
	goal.ID = r.s.next("goals")
	r.s.goals[goal.ID] = *goal
	return nil
}

func (r *goalRepo) GetForUser(_ context.Context, id, userID int64) (*domain.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	goal, ok := r.s.goals[id]
	if !ok || !r.s.ownsAccount(goal.AccountID, userID) {
		return nil, pgx.ErrNoRows
	}
	return &goal, nil
}

func (r *goalRepo) ListByUser(_ context.Context, userID int64) ([]domain.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Goal
	for _, goal := range r.s.goals {
		if r.s.ownsAccount(goal.AccountID, userID) {
			out = append(out, goal)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := sameDay(out[i].DueDate, out[j].DueDate); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *goalRepo) Update(_ context.Context, goal *domain.Goal, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.goals[goal.ID]
	if !ok || !r.s.ownsAccount(existing.AccountID, userID) {
		return pgx.ErrNoRows
	}
	r.s.goals[goal.ID] = *goal
	return nil
}

func (r *goalRepo) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	goal, ok := r.s.goals[id]
	if !ok || !r.s.ownsAccount(goal.AccountID, userID) {
		return pgx.ErrNoRows
	}
	delete(r.s.goals, id)
	return nil
}
