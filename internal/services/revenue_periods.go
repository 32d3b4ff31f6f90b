package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gymstar/internal/repositories"
	"gymstar/pkg/utils"
)

// Window helpers take now already converted to the business location.

func window(start, end time.Time, inclusiveEnd bool) repositories.RevenueWindow {
	return repositories.RevenueWindow{Start: start.Unix(), End: end.Unix(), InclusiveEnd: inclusiveEnd}
}

func TodayWindow(now time.Time) repositories.RevenueWindow {
	start := utils.StartOfDay(now)
	return window(start, start.AddDate(0, 0, 1), false)
}

func LastNDaysWindow(now time.Time, days int) repositories.RevenueWindow {
	return window(now.Add(-time.Duration(days)*24*time.Hour), now, true)
}

func ThisMonthWindow(now time.Time) repositories.RevenueWindow {
	start := utils.StartOfMonth(now)
	return window(start, start.AddDate(0, 1, 0), false)
}

// LastMonthsWindow covers the n full calendar months before the current one.
func LastMonthsWindow(now time.Time, n int) repositories.RevenueWindow {
	end := utils.StartOfMonth(now)
	return window(end.AddDate(0, -n, 0), end, false)
}

func CurrentFinancialYearWindow(now time.Time) repositories.RevenueWindow {
	return window(utils.FinancialYearStart(now), now, true)
}

func PreviousFinancialYearWindow(now time.Time) repositories.RevenueWindow {
	end := utils.FinancialYearStart(now)
	return window(end.AddDate(-1, 0, 0), end, false)
}

// ParseDayCount accepts a positive whole number of days.
func ParseDayCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", utils.ErrInvalidDayCount, raw)
	}
	return n, nil
}

// DateRangeWindow covers whole days from start through end inclusive.
func DateRangeWindow(now time.Time, startRaw, endRaw string) (repositories.RevenueWindow, error) {
	loc := now.Location()
	start, err := utils.ParseDate(strings.TrimSpace(startRaw), loc)
	if err != nil {
		return repositories.RevenueWindow{}, fmt.Errorf("%w: start %q", utils.ErrInvalidDateRange, startRaw)
	}
	end, err := utils.ParseDate(strings.TrimSpace(endRaw), loc)
	if err != nil {
		return repositories.RevenueWindow{}, fmt.Errorf("%w: end %q", utils.ErrInvalidDateRange, endRaw)
	}
	if !end.After(start) {
		return repositories.RevenueWindow{}, fmt.Errorf("%w: end must be after start", utils.ErrInvalidDateRange)
	}
	if end.After(utils.StartOfDay(now)) {
		return repositories.RevenueWindow{}, utils.ErrEndDateInFuture
	}
	return window(start, end.AddDate(0, 0, 1), false), nil
}
