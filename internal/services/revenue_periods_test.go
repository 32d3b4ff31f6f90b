package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymstar/pkg/utils"
)

var ist = utils.LoadLocation("Asia/Kolkata")

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, ist)
}

func TestTodayWindow(t *testing.T) {
	w := TodayWindow(at(2025, 6, 15, 18))
	assert.Equal(t, at(2025, 6, 15, 0).Unix(), w.Start)
	assert.Equal(t, at(2025, 6, 16, 0).Unix(), w.End)
	assert.False(t, w.InclusiveEnd)
}

func TestLastNDaysWindow(t *testing.T) {
	now := at(2025, 6, 15, 18)
	w := LastNDaysWindow(now, 10)
	assert.Equal(t, at(2025, 6, 5, 18).Unix(), w.Start)
	assert.Equal(t, now.Unix(), w.End)
	assert.True(t, w.InclusiveEnd)
}

func TestMonthWindows(t *testing.T) {
	now := at(2025, 1, 20, 9)

	w := ThisMonthWindow(now)
	assert.Equal(t, at(2025, 1, 1, 0).Unix(), w.Start)
	assert.Equal(t, at(2025, 2, 1, 0).Unix(), w.End)

	w = LastMonthsWindow(now, 1)
	assert.Equal(t, at(2024, 12, 1, 0).Unix(), w.Start)
	assert.Equal(t, at(2025, 1, 1, 0).Unix(), w.End)

	w = LastMonthsWindow(now, 3)
	assert.Equal(t, at(2024, 10, 1, 0).Unix(), w.Start)

	w = LastMonthsWindow(now, 6)
	assert.Equal(t, at(2024, 7, 1, 0).Unix(), w.Start)
}

func TestFinancialYearWindows(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		currentStart  time.Time
		previousStart time.Time
	}{
		{"after april", at(2025, 6, 1, 0), at(2025, 4, 1, 0), at(2024, 4, 1, 0)},
		{"april first", at(2025, 4, 1, 0), at(2025, 4, 1, 0), at(2024, 4, 1, 0)},
		{"january", at(2025, 1, 15, 0), at(2024, 4, 1, 0), at(2023, 4, 1, 0)},
		{"march end", at(2025, 3, 31, 23), at(2024, 4, 1, 0), at(2023, 4, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := CurrentFinancialYearWindow(tt.now)
			assert.Equal(t, tt.currentStart.Unix(), cur.Start)
			assert.Equal(t, tt.now.Unix(), cur.End)
			assert.True(t, cur.InclusiveEnd)

			prev := PreviousFinancialYearWindow(tt.now)
			assert.Equal(t, tt.previousStart.Unix(), prev.Start)
			assert.Equal(t, tt.currentStart.Unix(), prev.End)
			assert.False(t, prev.InclusiveEnd)
		})
	}
}

func TestParseDayCount(t *testing.T) {
	n, err := ParseDayCount(" 15 ")
	require.NoError(t, err)
	assert.Equal(t, 15, n)

	for _, raw := range []string{"", "abc", "0", "-3", "2.5", "7d"} {
		_, err := ParseDayCount(raw)
		assert.ErrorIs(t, err, utils.ErrInvalidDayCount, raw)
	}
}

func TestDateRangeWindow(t *testing.T) {
	now := at(2025, 6, 15, 12)

	w, err := DateRangeWindow(now, "2025-06-01", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, at(2025, 6, 1, 0).Unix(), w.Start)
	assert.Equal(t, at(2025, 6, 11, 0).Unix(), w.End)

	_, err = DateRangeWindow(now, "2025-06-01", "2025-06-15")
	assert.NoError(t, err)

	_, err = DateRangeWindow(now, "2025-06-10", "2025-06-10")
	assert.ErrorIs(t, err, utils.ErrInvalidDateRange)

	_, err = DateRangeWindow(now, "2025-06-10", "2025-06-01")
	assert.ErrorIs(t, err, utils.ErrInvalidDateRange)

	_, err = DateRangeWindow(now, "2025-06-01", "2025-06-16")
	assert.ErrorIs(t, err, utils.ErrEndDateInFuture)

	_, err = DateRangeWindow(now, "06/01/2025", "2025-06-10")
	assert.ErrorIs(t, err, utils.ErrInvalidDateRange)
}
