package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymstar/internal/models/db_models"
)

type IPlanRepository interface {
	GetAllPlans(ctx context.Context) ([]db_models.MembershipPlan, error)
	GetPlanById(ctx context.Context, planID string) (*db_models.MembershipPlan, error)
	GetPlanInfo(ctx context.Context, membershipID uuid.UUID) (*db_models.PlanInfo, error)
	CreatePlan(ctx context.Context, plan *db_models.MembershipPlan) error
	UpdatePlan(ctx context.Context, plan *db_models.MembershipPlan) error
	UpsertPlanInfo(ctx context.Context, info *db_models.PlanInfo) error
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

// GetAllPlans returns every plan, active or not, oldest first.
func (p PlanRepository) GetAllPlans(ctx context.Context) ([]db_models.MembershipPlan, error) {

	var plans []db_models.MembershipPlan
	err := p.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (p PlanRepository) GetPlanById(ctx context.Context, planID string) (*db_models.MembershipPlan, error) {

	var plan db_models.MembershipPlan
	err := p.db.WithContext(ctx).First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p PlanRepository) GetPlanInfo(ctx context.Context, membershipID uuid.UUID) (*db_models.PlanInfo, error) {

	var info db_models.PlanInfo
	err := p.db.WithContext(ctx).First(&info, "membership_id = ?", membershipID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &info, nil
}

func (p PlanRepository) CreatePlan(ctx context.Context, plan *db_models.MembershipPlan) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Create(plan).Error
}

func (p PlanRepository) UpdatePlan(ctx context.Context, plan *db_models.MembershipPlan) error {
	res := p.db.WithContext(ctx).
		Model(plan).
		Select("name", "price", "discount", "final_price", "duration", "status", "updated_at").
		Updates(plan)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertPlanInfo writes the single info row of a plan, keyed by membership id.
func (p PlanRepository) UpsertPlanInfo(ctx context.Context, info *db_models.PlanInfo) error {
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "membership_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"line1", "line2", "line3", "line4", "line5", "line6", "line7", "updated_at",
		}),
	}).Create(info).Error
}
