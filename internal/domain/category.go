package domain

// Category classifies transactions as income or expense.
type Category struct {
	ID          int64
	Name        string
	Description string
	IsIncome    bool
}
