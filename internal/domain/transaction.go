package domain

import "time"

// Frequency enumerates recurrence periods for a transaction.
type Frequency string

const (
	FrequencyNone    Frequency = "none"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Next returns the occurrence following from, or from itself for FrequencyNone.
func (f Frequency) Next(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return addMonths(from, 1)
	case FrequencyYearly:
		return addMonths(from, 12)
	default:
		return from
	}
}

// addMonths moves from by n calendar months, clamping the day to the target month's end.
func addMonths(from time.Time, n int) time.Time {
	year, month, day := from.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, from.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	hour, minute, sec := from.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, from.Nanosecond(), from.Location())
}

// Transaction records money moving in or out of an account.
type Transaction struct {
	ID              int64
	AccountID       int64
	CategoryID      *int64
	Amount          Money
	TransactionDate time.Time
	Description     string
	Frequency       Frequency
	NextDueDate     *time.Time
	CreatedAt       time.Time

	AccountName  string
	CategoryName *string
}

// IsRecurring reports whether the transaction repeats.
func (t *Transaction) IsRecurring() bool {
	return t.Frequency != "" && t.Frequency != FrequencyNone
}
