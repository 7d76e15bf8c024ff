package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/behnamfe76/finance-service/internal/domain"
)

// BudgetRepository persists budgets. Ownership flows through the account.
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	GetForUser(ctx context.Context, id, userID int64) (*domain.Budget, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Budget, error)
	ListActive(ctx context.Context, accountID, categoryID int64, at time.Time) ([]domain.Budget, error)
	Update(ctx context.Context, budget *domain.Budget, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

type budgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository returns a Postgres-backed implementation.
func NewBudgetRepository(pool *pgxpool.Pool) BudgetRepository {
	return &budgetRepository{pool: pool}
}

const budgetSelect = `
        SELECT b.id, b.account_id, b.category_id, b.amount_cents, b.start_date, b.end_date
        FROM budgets b
        JOIN accounts a ON a.id = b.account_id`

func (r *budgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	const query = `
        INSERT INTO budgets (account_id, category_id, amount_cents, start_date, end_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		budget.AccountID,
		budget.CategoryID,
		int64(budget.Amount),
		budget.StartDate,
		budget.EndDate,
	).Scan(&budget.ID)
}

func (r *budgetRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Budget, error) {
	return scanBudget(r.pool.QueryRow(ctx, budgetSelect+` WHERE b.id=$1 AND a.user_id=$2`, id, userID))
}

func (r *budgetRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Budget, error) {
	return r.list(ctx, budgetSelect+` WHERE a.user_id=$1 ORDER BY b.start_date DESC, b.id`, userID)
}

func (r *budgetRepository) ListActive(ctx context.Context, accountID, categoryID int64, at time.Time) ([]domain.Budget, error) {
	query := budgetSelect + ` WHERE b.account_id=$1 AND b.category_id=$2 AND b.start_date <= $3::date AND b.end_date >= $3::date ORDER BY b.id`
	return r.list(ctx, query, accountID, categoryID, at)
}

func (r *budgetRepository) Update(ctx context.Context, budget *domain.Budget, userID int64) error {
	const query = `
        UPDATE budgets SET account_id=$1, category_id=$2, amount_cents=$3, start_date=$4, end_date=$5
        WHERE id=$6 AND account_id IN (SELECT id FROM accounts WHERE user_id=$7)`
	cmd, err := r.pool.Exec(ctx, query,
		budget.AccountID,
		budget.CategoryID,
		int64(budget.Amount),
		budget.StartDate,
		budget.EndDate,
		budget.ID,
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

func (r *budgetRepository) Delete(ctx context.Context, id, userID int64) error {
	const query = `DELETE FROM budgets WHERE id=$1 AND account_id IN (SELECT id FROM accounts WHERE user_id=$2)`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *budgetRepository) list(ctx context.Context, query string, args ...any) ([]domain.Budget, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *budget)
	}
	return budgets, rows.Err()
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget domain.Budget
		amount int64
	)
	if err := row.Scan(&budget.ID, &budget.AccountID, &budget.CategoryID, &amount, &budget.StartDate, &budget.EndDate); err != nil {
		return nil, err
	}
	budget.Amount = domain.Money(amount)
	return &budget, nil
}
