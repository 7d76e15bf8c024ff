package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/behnamfe76/finance-service/internal/domain"
)

// TransactionFilter narrows a listing of the owner's transactions.
type TransactionFilter struct {
	UserID        int64
	AccountID     *int64
	CategoryID    *int64
	RecurringOnly bool
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// DueTransaction is a recurring transaction whose next due date has arrived.
type DueTransaction struct {
	domain.Transaction
	UserID int64
}

// TransactionRepository persists transactions. Ownership flows through the account.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetForUser(ctx context.Context, id, userID int64) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	Update(ctx context.Context, txn *domain.Transaction, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
	ListDue(ctx context.Context, on time.Time, limit int) ([]DueTransaction, error)
	SetNextDueDate(ctx context.Context, id int64, next time.Time) error
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository returns a Postgres-backed implementation.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionSelect = `
        SELECT t.id, t.account_id, t.category_id, t.amount_cents, t.transaction_date, t.description,
            t.frequency, t.next_due_date, t.created_at, a.name, c.name
        FROM transactions t
        JOIN accounts a ON a.id = t.account_id
        LEFT JOIN categories c ON c.id = t.category_id`

func (r *transactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (account_id, category_id, amount_cents, transaction_date, description, frequency, next_due_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		txn.AccountID,
		txn.CategoryID,
		int64(txn.Amount),
		txn.TransactionDate,
		txn.Description,
		string(txn.Frequency),
		txn.NextDueDate,
	).Scan(&txn.ID, &txn.CreatedAt)
}

func (r *transactionRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.id=$1 AND a.user_id=$2`
	return scanTransaction(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error) {
	clauses := []string{"a.user_id=$1"}
	args := []any{filter.UserID}
	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.AccountID != nil {
		add("t.account_id=$%d", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		add("t.category_id=$%d", *filter.CategoryID)
	}
	if filter.RecurringOnly {
		clauses = append(clauses, "t.frequency <> 'none'")
	}
	if filter.From != nil {
		add("t.transaction_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("t.transaction_date <= $%d", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	args = append(args, limit, filter.Offset)

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.transaction_date DESC, t.id DESC LIMIT $%d OFFSET $%d`,
		transactionSelect, strings.Join(clauses, " AND "), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

func (r *transactionRepository) Update(ctx context.Context, txn *domain.Transaction, userID int64) error {
	const query = `
        UPDATE transactions SET account_id=$1, category_id=$2, amount_cents=$3, transaction_date=$4,
            description=$5, frequency=$6, next_due_date=$7
        WHERE id=$8 AND account_id IN (SELECT id FROM accounts WHERE user_id=$9)`
	cmd, err := r.pool.Exec(ctx, query,
		txn.AccountID,
		txn.CategoryID,
		int64(txn.Amount),
		txn.TransactionDate,
		txn.Description,
		string(txn.Frequency),
		txn.NextDueDate,
		txn.ID,
		userID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id, userID int64) error {
	const query = `DELETE FROM transactions WHERE id=$1 AND account_id IN (SELECT id FROM accounts WHERE user_id=$2)`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListDue returns recurring transactions across all users due on or before the given day.
func (r *transactionRepository) ListDue(ctx context.Context, on time.Time, limit int) ([]DueTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
        SELECT t.id, t.account_id, t.category_id, t.amount_cents, t.transaction_date, t.description,
            t.frequency, t.next_due_date, t.created_at, a.name, c.name, a.user_id
        FROM transactions t
        JOIN accounts a ON a.id = t.account_id
        LEFT JOIN categories c ON c.id = t.category_id
        WHERE t.frequency <> 'none' AND t.next_due_date IS NOT NULL AND t.next_due_date <= $1::date
        ORDER BY t.next_due_date, t.id
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, on, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []DueTransaction
	for rows.Next() {
		var (
			item      DueTransaction
			amount    int64
			frequency string
		)
		if err := rows.Scan(
			&item.ID, &item.AccountID, &item.CategoryID, &amount, &item.TransactionDate, &item.Description,
			&frequency, &item.NextDueDate, &item.CreatedAt, &item.AccountName, &item.CategoryName, &item.UserID,
		); err != nil {
			return nil, err
		}
		item.Amount = domain.Money(amount)
		item.Frequency = domain.Frequency(frequency)
		due = append(due, item)
	}
	return due, rows.Err()
}

func (r *transactionRepository) SetNextDueDate(ctx context.Context, id int64, next time.Time) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE transactions SET next_due_date=$1 WHERE id=$2`, next, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn       domain.Transaction
		amount    int64
		frequency string
	)
	if err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.CategoryID,
		&amount,
		&txn.TransactionDate,
		&txn.Description,
		&frequency,
		&txn.NextDueDate,
		&txn.CreatedAt,
		&txn.AccountName,
		&txn.CategoryName,
	); err != nil {
		return nil, err
	}
	txn.Amount = domain.Money(amount)
	txn.Frequency = domain.Frequency(frequency)
	return &txn, nil
}
