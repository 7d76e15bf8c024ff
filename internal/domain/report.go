package domain

// CategoryTotal aggregates transaction amounts for one category.
type CategoryTotal struct {
	CategoryID   *int64
	CategoryName string
	IsIncome     bool
	Total        Money
	Count        int
}

// Summary is an income/expense rollup over a set of transactions.
type Summary struct {
	Income     Money
	Expense    Money
	Net        Money
	Categories []CategoryTotal
}
