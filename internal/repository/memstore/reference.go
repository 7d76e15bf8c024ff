package memstore

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/behnamfe76/finance-service/internal/domain"
)

type currencyRepo struct{ s *Store }

func (r *currencyRepo) List(_ context.Context) ([]domain.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Currency, 0, len(r.s.currencies))
	for _, c := range r.s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *currencyRepo) GetByID(_ context.Context, id int64) (*domain.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.currencies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (r *currencyRepo) Upsert(_ context.Context, currency *domain.Currency) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.currencies {
		if existing.Code == currency.Code {
			currency.ID = id
			r.s.currencies[id] = *currency
			return nil
		}
	}
	currency.ID = r.s.next("currencies")
	r.s.currencies[currency.ID] = *currency
	return nil
}

type accountTypeRepo struct{ s *Store }

func (r *accountTypeRepo) List(_ context.Context) ([]domain.AccountType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.AccountType, 0, len(r.s.accountTypes))
	for _, t := range r.s.accountTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *accountTypeRepo) GetByID(_ context.Context, id int64) (*domain.AccountType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.accountTypes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (r *accountTypeRepo) Upsert(_ context.Context, accountType *domain.AccountType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.accountTypes {
		if existing.Name == accountType.Name {
			accountType.ID = id
			r.s.accountTypes[id] = *accountType
			return nil
		}
	}
	accountType.ID = r.s.next("account_types")
	r.s.accountTypes[accountType.ID] = *accountType
	return nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *categoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (r *categoryRepo) Upsert(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.categories {
		if existing.Name == category.Name {
			category.ID = id
			r.s.categories[id] = *category
			return nil
		}
	}
	category.ID = r.s.next("categories")
	r.s.categories[category.ID] = *category
	return nil
}
