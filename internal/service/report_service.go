package service

import (
	"context"
	"sort"
	"time"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/repository"
)

// ReportFilter scopes a summary.
type ReportFilter struct {
	AccountID *int64
	From      *time.Time
	To        *time.Time
}

// ReportService aggregates the caller's transactions.
type ReportService struct {
	transactions repository.TransactionRepository
	accounts     repository.AccountRepository
	categories   repository.CategoryRepository
}

// NewReportService builds the service.
func NewReportService(transactions repository.TransactionRepository, accounts repository.AccountRepository, categories repository.CategoryRepository) *ReportService {
	return &ReportService{transactions: transactions, accounts: accounts, categories: categories}
}

// Summary totals income and expense overall and per category. Positive amounts are
// income, negative amounts are expense.
func (s *ReportService) Summary(ctx context.Context, userID int64, filter ReportFilter) (*domain.Summary, error) {
	if filter.AccountID != nil {
		if _, err := s.accounts.GetForUser(ctx, *filter.AccountID, userID); err != nil {
			return nil, storeError(err, "account")
		}
	}

	txns, err := s.transactions.List(ctx, repository.TransactionFilter{
		UserID:    userID,
		AccountID: filter.AccountID,
		From:      filter.From,
		To:        filter.To,
		Limit:     100000,
	})
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	incomeCategory := make(map[int64]bool, len(categories))
	for _, c := range categories {
		incomeCategory[c.ID] = c.IsIncome
	}

	summary := &domain.Summary{}
	totals := map[int64]*domain.CategoryTotal{}
	var uncategorized *domain.CategoryTotal

	for _, t := range txns {
		if t.Amount >= 0 {
			summary.Income += t.Amount
		} else {
			summary.Expense += t.Amount.Abs()
		}

		var bucket *domain.CategoryTotal
		if t.CategoryID == nil {
			if uncategorized == nil {
				uncategorized = &domain.CategoryTotal{CategoryName: "Uncategorized"}
			}
			bucket = uncategorized
		} else {
			bucket = totals[*t.CategoryID]
			if bucket == nil {
				id := *t.CategoryID
				name := ""
				if t.CategoryName != nil {
					name = *t.CategoryName
				}
				bucket = &domain.CategoryTotal{CategoryID: &id, CategoryName: name, IsIncome: incomeCategory[id]}
				totals[id] = bucket
			}
		}
		bucket.Total += t.Amount
		bucket.Count++
	}
	summary.Net = summary.Income - summary.Expense

	for _, bucket := range totals {
		summary.Categories = append(summary.Categories, *bucket)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return *summary.Categories[i].CategoryID < *summary.Categories[j].CategoryID
	})
	if uncategorized != nil {
		summary.Categories = append(summary.Categories, *uncategorized)
	}
	return summary, nil
}
