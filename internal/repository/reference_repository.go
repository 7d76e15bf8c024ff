package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/behnamfe76/finance-service/internal/domain"
)

// CurrencyRepository exposes currency reference data.
type CurrencyRepository interface {
	List(ctx context.Context) ([]domain.Currency, error)
	GetByID(ctx context.Context, id int64) (*domain.Currency, error)
	Upsert(ctx context.Context, currency *domain.Currency) error
}

// AccountTypeRepository exposes account type reference data.
type AccountTypeRepository interface {
	List(ctx context.Context) ([]domain.AccountType, error)
	GetByID(ctx context.Context, id int64) (*domain.AccountType, error)
	Upsert(ctx context.Context, accountType *domain.AccountType) error
}

// CategoryRepository exposes transaction categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Upsert(ctx context.Context, category *domain.Category) error
}

type currencyRepository struct {
	pool *pgxpool.Pool
}

// NewCurrencyRepository returns a Postgres-backed implementation.
func NewCurrencyRepository(pool *pgxpool.Pool) CurrencyRepository {
	return &currencyRepository{pool: pool}
}

func (r *currencyRepository) List(ctx context.Context) ([]domain.Currency, error) {
	const query = `SELECT id, code, name, symbol FROM currencies ORDER BY code`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Currency, error) {
		var c domain.Currency
		err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol)
		return c, err
	})
}

func (r *currencyRepository) GetByID(ctx context.Context, id int64) (*domain.Currency, error) {
	const query = `SELECT id, code, name, symbol FROM currencies WHERE id=$1`
	var c domain.Currency
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Code, &c.Name, &c.Symbol); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *currencyRepository) Upsert(ctx context.Context, currency *domain.Currency) error {
	const query = `
        INSERT INTO currencies (code, name, symbol) VALUES ($1, $2, $3)
        ON CONFLICT (code) DO UPDATE SET name=EXCLUDED.name, symbol=EXCLUDED.symbol
        RETURNING id`
	return r.pool.QueryRow(ctx, query, currency.Code, currency.Name, currency.Symbol).Scan(&currency.ID)
}

type accountTypeRepository struct {
	pool *pgxpool.Pool
}

// NewAccountTypeRepository returns a Postgres-backed implementation.
func NewAccountTypeRepository(pool *pgxpool.Pool) AccountTypeRepository {
	return &accountTypeRepository{pool: pool}
}

func (r *accountTypeRepository) List(ctx context.Context) ([]domain.AccountType, error) {
	const query = `SELECT id, name, description FROM account_types ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AccountType, error) {
		var t domain.AccountType
		err := row.Scan(&t.ID, &t.Name, &t.Description)
		return t, err
	})
}

func (r *accountTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AccountType, error) {
	const query = `SELECT id, name, description FROM account_types WHERE id=$1`
	var t domain.AccountType
	if err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *accountTypeRepository) Upsert(ctx context.Context, accountType *domain.AccountType) error {
	const query = `
        INSERT INTO account_types (name, description) VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET description=EXCLUDED.description
        RETURNING id`
	return r.pool.QueryRow(ctx, query, accountType.Name, accountType.Description).Scan(&accountType.ID)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a Postgres-backed implementation.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `SELECT id, name, description, is_income FROM categories ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.IsIncome)
		return c, err
	})
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `SELECT id, name, description, is_income FROM categories WHERE id=$1`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.IsIncome); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Upsert(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, description, is_income) VALUES ($1, $2, $3)
        ON CONFLICT (name) DO UPDATE SET description=EXCLUDED.description, is_income=EXCLUDED.is_income
        RETURNING id`
	return r.pool.QueryRow(ctx, query, category.Name, category.Description, category.IsIncome).Scan(&category.ID)
}
