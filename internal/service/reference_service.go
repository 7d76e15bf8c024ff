package service

import (
	"context"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/repository"
)

// ReferenceService serves the read-only lookup tables.
type ReferenceService struct {
	currencies   repository.CurrencyRepository
	accountTypes repository.AccountTypeRepository
	categories   repository.CategoryRepository
}

// NewReferenceService builds the service.
func NewReferenceService(currencies repository.CurrencyRepository, accountTypes repository.AccountTypeRepository, categories repository.CategoryRepository) *ReferenceService {
	return &ReferenceService{currencies: currencies, accountTypes: accountTypes, categories: categories}
}

func (s *ReferenceService) Currencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencies.List(ctx)
}

func (s *ReferenceService) AccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	return s.accountTypes.List(ctx)
}

func (s *ReferenceService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *ReferenceService) Category(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "category")
	}
	return category, nil
}

// SeedData is the default reference content.
type SeedData struct {
	Currencies   []domain.Currency
	AccountTypes []domain.AccountType
	Categories   []domain.Category
}

// DefaultSeedData returns the stock categories, currencies and account types.
func DefaultSeedData() SeedData {
	return SeedData{
		Currencies: []domain.Currency{
			{Code: "USD", Name: "US Dollar", Symbol: "$"},
			{Code: "EUR", Name: "Euro", Symbol: "€"},
		},
		AccountTypes: []domain.AccountType{
			{Name: "Checking", Description: "Everyday spending account"},
			{Name: "Savings", Description: "Interest-bearing savings account"},
		},
		Categories: []domain.Category{
			{Name: "Salary", Description: "Regular income from employment", IsIncome: true},
			{Name: "Investments", Description: "Income from investments, dividends, and interest", IsIncome: true},
			{Name: "Gifts", Description: "Money received as gifts or rewards", IsIncome: true},
			{Name: "Food & Groceries", Description: "Expenses for food, groceries, and dining out", IsIncome: false},
			{Name: "Housing", Description: "Rent, mortgage, utilities, and home maintenance", IsIncome: false},
			{Name: "Entertainment", Description: "Movies, music, games, and other leisure activities", IsIncome: false},
		},
	}
}

// Seed upserts data idempotently.
func (s *ReferenceService) Seed(ctx context.Context, data SeedData) error {
	for i := range data.Currencies {
		if err := s.currencies.Upsert(ctx, &data.Currencies[i]); err != nil {
			return err
		}
	}
	for i := range data.AccountTypes {
		if err := s.accountTypes.Upsert(ctx, &data.AccountTypes[i]); err != nil {
			return err
		}
	}
	for i := range data.Categories {
		if err := s.categories.Upsert(ctx, &data.Categories[i]); err != nil {
			return err
		}
	}
	return nil
}
