package domain

import "time"

// Budget caps spending for a category on an account within a date range.
type Budget struct {
	ID         int64
	AccountID  int64
	CategoryID int64
	Amount     Money
	StartDate  time.Time
	EndDate    time.Time
}

// Covers reports whether t falls inside the budget window, inclusive of both days.
func (b *Budget) Covers(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(b.StartDate.Year(), b.StartDate.Month(), b.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(b.EndDate.Year(), b.EndDate.Month(), b.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}

// Goal tracks saving toward a target amount.
type Goal struct {
	ID            int64
	AccountID     int64
	Name          string
	TargetAmount  Money
	CurrentAmount Money
	DueDate       time.Time
}
