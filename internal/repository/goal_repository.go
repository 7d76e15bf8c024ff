package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/behnamfe76/finance-service/internal/domain"
)

// GoalRepository persists savings goals. Ownership flows through the account.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetForUser(ctx context.Context, id, userID int64) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

type goalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository returns a Postgres-backed implementation.
func NewGoalRepository(pool *pgxpool.Pool) GoalRepository {
	return &goalRepository{pool: pool}
}

const goalSelect = `
        SELECT g.id, g.account_id, g.name, g.target_amount_cents, g.current_amount_cents, g.due_date
        FROM goals g
        JOIN accounts a ON a.id = g.account_id`

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	const query = `
        INSERT INTO goals (account_id, name, target_amount_cents, current_amount_cents, due_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		goal.AccountID,
		goal.Name,
		int64(goal.TargetAmount),
		int64(goal.CurrentAmount),
		goal.DueDate,
	).Scan(&goal.ID)
}

func (r *goalRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Goal, error) {
	return scanGoal(r.pool.QueryRow(ctx, goalSelect+` WHERE g.id=$1 AND a.user_id=$2`, id, userID))
}

func (r *goalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Goal, error) {
	rows, err := r.pool.Query(ctx, goalSelect+` WHERE a.user_id=$1 ORDER BY g.due_date, g.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal, userID int64) error {
	const query = `
        UPDATE goals SET account_id=$1, name=$2, target_amount_cents=$3, current_amount_cents=$4, due_date=$5
        WHERE id=$6 AND account_id IN (SELECT id FROM accounts WHERE user_id=$7)`
	cmd, err := r.pool.Exec(ctx, query,
		goal.AccountID,
		goal.Name,
		int64(goal.TargetAmount),
		int64(goal.CurrentAmount),
		goal.DueDate,
		goal.ID,
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

func (r *goalRepository) Delete(ctx context.Context, id, userID int64) error {
	const query = `DELETE FROM goals WHERE id=$1 AND account_id IN (SELECT id FROM accounts WHERE user_id=$2)`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal    domain.Goal
		target  int64
		current int64
	)
	if err := row.Scan(&goal.ID, &goal.AccountID, &goal.Name, &target, &current, &goal.DueDate); err != nil {
		return nil, err
	}
	goal.TargetAmount = domain.Money(target)
	goal.CurrentAmount = domain.Money(current)
	return &goal, nil
}
