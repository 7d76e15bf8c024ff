package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/behnamfe76/finance-service/internal/domain"
)

// AccountRepository persists accounts. Reads and writes are always scoped to the owner,
// so a foreign id behaves exactly like a missing one.
type AccountRepository interface {
	CreateWithinQuota(ctx context.Context, account *domain.Account, limit int) error
	CountByUser(ctx context.Context, userID int64) (int, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id, userID int64) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountSelect = `
        SELECT a.id, a.user_id, a.account_type_id, a.currency_id, a.name, a.balance_cents, a.created_at, a.updated_at,
            c.id, c.code, c.name, c.symbol,
            t.id, t.name, t.description
        FROM accounts a
        LEFT JOIN currencies c ON c.id = a.currency_id
        LEFT JOIN account_types t ON t.id = a.account_type_id`

// CreateWithinQuota inserts the account unless the owner already holds limit accounts.
// The owner row is locked for the duration so concurrent creates cannot overshoot.
func (r *accountRepository) CreateWithinQuota(ctx context.Context, account *domain.Account, limit int) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var locked int64
		if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id=$1 FOR UPDATE`, account.UserID).Scan(&locked); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE user_id=$1`, account.UserID).Scan(&count); err != nil {
			return err
		}
		if count >= limit {
			return ErrQuotaExceeded
		}

		const query = `
            INSERT INTO accounts (user_id, account_type_id, currency_id, name, balance_cents)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id, created_at, updated_at`
		return tx.QueryRow(ctx, query,
			account.UserID,
			account.AccountTypeID,
			account.CurrencyID,
			account.Name,
			int64(account.Balance),
		).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	})
}

func (r *accountRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE user_id=$1`, userID).Scan(&count)
	return count, err
}

func (r *accountRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Account, error) {
	query := accountSelect + ` WHERE a.id=$1 AND a.user_id=$2`
	return scanAccount(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *accountRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	query := accountSelect + ` WHERE a.user_id=$1 ORDER BY a.id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET account_type_id=$1, currency_id=$2, name=$3, balance_cents=$4, updated_at=NOW()
        WHERE id=$5 AND user_id=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		account.AccountTypeID,
		account.CurrencyID,
		account.Name,
		int64(account.Balance),
		account.ID,
		account.UserID,
	).Scan(&account.UpdatedAt)
}

func (r *accountRepository) Delete(ctx context.Context, id, userID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account      domain.Account
		balance      int64
		createdAt    time.Time
		updatedAt    time.Time
		currencyID   *int64
		currencyCode *string
		currencyName *string
		currencySym  *string
		typeID       *int64
		typeName     *string
		typeDesc     *string
	)
	if err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.AccountTypeID,
		&account.CurrencyID,
		&account.Name,
		&balance,
		&createdAt,
		&updatedAt,
		&currencyID, &currencyCode, &currencyName, &currencySym,
		&typeID, &typeName, &typeDesc,
	); err != nil {
		return nil, err
	}
	account.Balance = domain.Money(balance)
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt
	if currencyID != nil {
		account.Currency = &domain.Currency{ID: *currencyID, Code: deref(currencyCode), Name: deref(currencyName), Symbol: deref(currencySym)}
	}
	if typeID != nil {
		account.AccountType = &domain.AccountType{ID: *typeID, Name: deref(typeName), Description: deref(typeDesc)}
	}
	return &account, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
