package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthWindowUTC(t *testing.T) {
	testCases := []struct {
		name          string
		now           time.Time
		expectedFrom  time.Time
		expectedUntil time.Time
	}{
		{
			name:          "Mid-month",
			now:           time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC),
			expectedFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedUntil: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "First instant of the month",
			now:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedUntil: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "Last instant of the month",
			now:           time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC),
			expectedFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedUntil: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "December rolls into January",
			now:           time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
			expectedFrom:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			expectedUntil: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Local time east of UTC maps to the UTC month",
			// 2025-04-01 03:00 +05 is still 2025-03-31 22:00 UTC
			now:           time.Date(2025, 4, 1, 3, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			expectedFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedUntil: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			from, until := MonthWindowUTC(tc.now)
			assert.Equal(t, tc.expectedFrom, from)
			assert.Equal(t, tc.expectedUntil, until)
		})
	}
}
