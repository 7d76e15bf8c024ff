package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyNext(t *testing.T) {
	base := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, base, FrequencyNone.Next(base))
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), FrequencyDaily.Next(base))
	assert.Equal(t, time.Date(2024, time.February, 7, 0, 0, 0, 0, time.UTC), FrequencyWeekly.Next(base))
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), FrequencyYearly.Next(base))
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), FrequencyMonthly.Next(base))
}

func TestFrequencyNextClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		name string
		freq Frequency
		from time.Time
		want time.Time
	}{
		{"jan 31 non-leap", FrequencyMonthly, date(2023, time.January, 31), date(2023, time.February, 28)},
		{"mar 31", FrequencyMonthly, date(2024, time.March, 31), date(2024, time.April, 30)},
		{"dec 31 rolls year", FrequencyMonthly, date(2024, time.December, 31), date(2025, time.January, 31)},
		{"mid month", FrequencyMonthly, date(2024, time.January, 15), date(2024, time.February, 15)},
		{"leap day yearly", FrequencyYearly, date(2024, time.February, 29), date(2025, time.February, 28)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.freq.Next(tc.from))
		})
	}

	withClock := time.Date(2024, time.January, 31, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 9, 30, 0, 0, time.UTC), FrequencyMonthly.Next(withClock))
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestFrequencyValid(t *testing.T) {
	assert.True(t, FrequencyMonthly.Valid())
	assert.False(t, Frequency("hourly").Valid())
	assert.False(t, Frequency("").Valid())
}

func TestTransactionIsRecurring(t *testing.T) {
	assert.False(t, (&Transaction{Frequency: FrequencyNone}).IsRecurring())
	assert.True(t, (&Transaction{Frequency: FrequencyWeekly}).IsRecurring())
}

func TestBudgetCovers(t *testing.T) {
	b := &Budget{
		StartDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, b.Covers(time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, b.Covers(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, b.Covers(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
}
