package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/repository"
)

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, txn *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[txn.AccountID]; !ok {
		return pgx.ErrNoRows
	}
	txn.ID = r.s.next("transactions")
	txn.CreatedAt = r.s.now()
	r.s.transactions[txn.ID] = r.strip(*txn)
	return nil
}

func (r *transactionRepo) GetForUser(_ context.Context, id, userID int64) (*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	txn, ok := r.s.transactions[id]
	if !ok || !r.s.ownsAccount(txn.AccountID, userID) {
		return nil, pgx.ErrNoRows
	}
	out := r.hydrate(txn)
	return &out, nil
}

func (r *transactionRepo) List(_ context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Transaction
	for _, txn := range r.s.transactions {
		if !r.s.ownsAccount(txn.AccountID, filter.UserID) {
			continue
		}
		if filter.AccountID != nil && txn.AccountID != *filter.AccountID {
			continue
		}
		if filter.CategoryID != nil && (txn.CategoryID == nil || *txn.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.RecurringOnly && !txn.IsRecurring() {
			continue
		}
		if filter.From != nil && txn.TransactionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && txn.TransactionDate.After(*filter.To) {
			continue
		}
		out = append(out, r.hydrate(txn))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, filter.Limit, filter.Offset, 500), nil
}

func (r *transactionRepo) Update(_ context.Context, txn *domain.Transaction, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.transactions[txn.ID]
	if !ok || !r.s.ownsAccount(existing.AccountID, userID) {
		return pgx.ErrNoRows
	}
	txn.CreatedAt = existing.CreatedAt
	r.s.transactions[txn.ID] = r.strip(*txn)
	return nil
}

func (r *transactionRepo) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	txn, ok := r.s.transactions[id]
	if !ok || !r.s.ownsAccount(txn.AccountID, userID) {
		return pgx.ErrNoRows
	}
	delete(r.s.transactions, id)
	return nil
}

func (r *transactionRepo) ListDue(_ context.Context, on time.Time, limit int) ([]repository.DueTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var due []repository.DueTransaction
	for _, txn := range r.s.transactions {
		if !txn.IsRecurring() || txn.NextDueDate == nil || sameDay(*txn.NextDueDate, on) > 0 {
			continue
		}
		due = append(due, repository.DueTransaction{
			Transaction: r.hydrate(txn),
			UserID:      r.s.accounts[txn.AccountID].UserID,
		})
	}
	sort.Slice(due, func(i, j int) bool {
		if c := sameDay(*due[i].NextDueDate, *due[j].NextDueDate); c != 0 {
			return c < 0
		}
		return due[i].ID < due[j].ID
	})
	return page(due, limit, 0, 100), nil
}

func (r *transactionRepo) SetNextDueDate(_ context.Context, id int64, next time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	txn, ok := r.s.transactions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	txn.NextDueDate = &next
	r.s.transactions[id] = txn
	return nil
}

func (r *transactionRepo) strip(txn domain.Transaction) domain.Transaction {
	txn.CategoryID = cloneInt64(txn.CategoryID)
	txn.NextDueDate = cloneTime(txn.NextDueDate)
	txn.AccountName = ""
	txn.CategoryName = nil
	return txn
}

func (r *transactionRepo) hydrate(txn domain.Transaction) domain.Transaction {
	txn = r.strip(txn)
	txn.AccountName = r.s.accounts[txn.AccountID].Name
	if txn.CategoryID != nil {
		if c, ok := r.s.categories[*txn.CategoryID]; ok {
			name := c.Name
			txn.CategoryName = &name
		}
	}
	return txn
}
