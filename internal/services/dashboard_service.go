package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	dbm "gymstar/internal/models/db_models"
	resp "gymstar/internal/models/response_models"
	"gymstar/internal/repositories"
	"gymstar/pkg/utils"
)

type DashboardService interface {
	RevenueReport(ctx context.Context) (*resp.RevenueReport, error)
	Summary(ctx context.Context) (*resp.DashboardSummary, error)
	RevenueForLastDays(ctx context.Context, days string) (*resp.RevenueWindowResponse, error)
	RevenueForDateRange(ctx context.Context, start, end string) (*resp.RevenueWindowResponse, error)
}

type dashboardService struct {
	repo     repositories.DashboardRepository
	loc      *time.Location
	currency string
	now      func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository, loc *time.Location, currency string) DashboardService {
	return &dashboardService{repo: repo, loc: loc, currency: currency, now: time.Now}
}

func (s *dashboardService) sum(ctx context.Context, w repositories.RevenueWindow) (decimal.Decimal, error) {
	total, err := s.repo.SumRevenue(ctx, w)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: sum revenue: %v", utils.ErrDatabaseError, err)
	}
	return total, nil
}

type revenueSlot struct {
	window repositories.RevenueWindow
	dst    *string
}

func (s *dashboardService) RevenueReport(ctx context.Context) (*resp.RevenueReport, error) {
	now := s.now().In(s.loc)
	report := &resp.RevenueReport{Currency: s.currency}

	slots := []revenueSlot{
		{repositories.RevenueWindow{}, &report.Total},
		{TodayWindow(now), &report.Today},
		{LastNDaysWindow(now, 10), &report.Last10Days},
		{ThisMonthWindow(now), &report.ThisMonth},
		{LastMonthsWindow(now, 1), &report.LastMonth},
		{LastMonthsWindow(now, 3), &report.Last3Months},
		{LastMonthsWindow(now, 6), &report.Last6Months},
		{CurrentFinancialYearWindow(now), &report.CurrentFinancialYear},
		{PreviousFinancialYearWindow(now), &report.LastFinancialYear},
	}
	for _, slot := range slots {
		total, err := s.sum(ctx, slot.window)
		if err != nil {
			return nil, err
		}
		*slot.dst = utils.FormatAmount(total)
	}
	return report, nil
}

func (s *dashboardService) Summary(ctx context.Context) (*resp.DashboardSummary, error) {
	report, err := s.RevenueReport(ctx)
	if err != nil {
		return nil, err
	}

	out := &resp.DashboardSummary{Revenue: *report}
	counts := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&out.TotalCustomers, s.repo.CountCustomers},
		{&out.TotalPlans, func(ctx context.Context) (int64, error) { return s.repo.CountPlansByStatus(ctx, "") }},
		{&out.ActivePlans, func(ctx context.Context) (int64, error) { return s.repo.CountPlansByStatus(ctx, dbm.PlanStatusActive) }},
		{&out.InactivePlans, func(ctx context.Context) (int64, error) { return s.repo.CountPlansByStatus(ctx, dbm.PlanStatusInactive) }},
		{&out.TotalSubscriptions, s.repo.CountSubscriptions},
	}
	for _, c := range counts {
		n, err := c.fn(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: dashboard counts: %v", utils.ErrDatabaseError, err)
		}
		*c.dst = n
	}
	return out, nil
}

func (s *dashboardService) RevenueForLastDays(ctx context.Context, days string) (*resp.RevenueWindowResponse, error) {
	n, err := ParseDayCount(days)
	if err != nil {
		return nil, err
	}
	return s.windowResponse(ctx, LastNDaysWindow(s.now().In(s.loc), n))
}

func (s *dashboardService) RevenueForDateRange(ctx context.Context, start, end string) (*resp.RevenueWindowResponse, error) {
	w, err := DateRangeWindow(s.now().In(s.loc), start, end)
	if err != nil {
		return nil, err
	}
	return s.windowResponse(ctx, w)
}

func (s *dashboardService) windowResponse(ctx context.Context, w repositories.RevenueWindow) (*resp.RevenueWindowResponse, error) {
	total, err := s.sum(ctx, w)
	if err != nil {
		return nil, err
	}
	return &resp.RevenueWindowResponse{Start: w.Start, End: w.End, Amount: utils.FormatAmount(total)}, nil
}
