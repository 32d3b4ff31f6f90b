package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbm "gymstar/internal/models/db_models"
)

// RevenueWindow bounds created_at in unix seconds. End is exclusive unless
// InclusiveEnd is set. A zero window covers all rows.
type RevenueWindow struct {
	Start        int64
	End          int64
	InclusiveEnd bool
}

type DashboardRepository interface {
	SumRevenue(ctx context.Context, w RevenueWindow) (decimal.Decimal, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountPlansByStatus(ctx context.Context, status dbm.PlanStatus) (int64, error)
	CountSubscriptions(ctx context.Context) (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) SumRevenue(ctx context.Context, w RevenueWindow) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&dbm.Subscription{}).
		Select("COALESCE(SUM(total), 0)")

	if w.Start != 0 || w.End != 0 {
		q = q.Where("created_at >= ?", w.Start)
		if w.InclusiveEnd {
			q = q.Where("created_at <= ?", w.End)
		} else {
			q = q.Where("created_at < ?", w.End)
		}
	}

	var sum decimal.NullDecimal
	if err := q.Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *dashboardRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Where("role = ?", dbm.RoleCustomer).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountPlansByStatus(ctx context.Context, status dbm.PlanStatus) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&dbm.MembershipPlan{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountSubscriptions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Subscription{}).Count(&n).Error
	return n, err
}
