package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymstar/internal/models/db_models"
	"gymstar/internal/models/request_models"
	"gymstar/internal/models/response_models"
	"gymstar/internal/repositories"
	"gymstar/pkg/memcache"
	"gymstar/pkg/utils"
)

const catalogCacheKey = "catalog:active"

// CatalogPlan is an active, sellable plan with its display info.
type CatalogPlan struct {
	Plan         db_models.MembershipPlan
	Info         *db_models.PlanInfo
	PlanType     PlanType
	DurationDays int
}

type PlanServiceInterface interface {
	// GetCatalog lists active plans that map to a plan length, oldest first.
	GetCatalog(ctx context.Context) ([]CatalogPlan, error)
	GetCatalogPlan(ctx context.Context, planId string) (*CatalogPlan, error)

	ListAllPlans(ctx context.Context) ([]response_models.PlanResponse, error)
	CreatePlan(ctx context.Context, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error)
	UpdatePlan(ctx context.Context, planId string, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error)
	UpsertPlanInfo(ctx context.Context, planId string, req request_models.PlanInfoRequest) (*response_models.PlanInfoResponse, error)
}

func NewPlanService(planRepo repositories.IPlanRepository, cache memcache.CatalogCache, log *zap.Logger) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
		cache:    cache,
		log:      log,
	}
}

type PlanService struct {
	planRepo repositories.IPlanRepository
	cache    memcache.CatalogCache
	log      *zap.Logger
}

func (p *PlanService) GetCatalog(ctx context.Context) ([]CatalogPlan, error) {
	if cached, ok := p.cache.Get(catalogCacheKey); ok {
		if plans, ok := cached.([]CatalogPlan); ok {
			return plans, nil
		}
	}

	plans, err := p.planRepo.GetAllPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list plans: %v", utils.ErrDatabaseError, err)
	}

	catalog := make([]CatalogPlan, 0, len(plans))
	degraded := false
	for _, plan := range plans {
		if plan.Status != db_models.PlanStatusActive {
			continue
		}
		planType, days, ok := DerivePlanType(plan.Duration)
		if !ok {
			p.log.Warn("plan hidden from catalog: duration has no plan length",
				zap.String("plan_id", plan.ID.String()), zap.String("duration", plan.Duration))
			continue
		}

		info, err := p.planRepo.GetPlanInfo(ctx, plan.ID)
		if err != nil {
			p.log.Warn("plan info unavailable", zap.String("plan_id", plan.ID.String()), zap.Error(err))
			info = nil
			degraded = true
		}

		catalog = append(catalog, CatalogPlan{Plan: plan, Info: info, PlanType: planType, DurationDays: days})
	}

	// A catalog missing some info is served but not cached.
	if !degraded {
		p.cache.Set(catalogCacheKey, catalog)
	}
	return catalog, nil
}

func (p *PlanService) GetCatalogPlan(ctx context.Context, planId string) (*CatalogPlan, error) {
	catalog, err := p.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].Plan.ID.String() == planId {
			return &catalog[i], nil
		}
	}
	return nil, utils.ErrPlanNotFound
}

func (p *PlanService) ListAllPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.GetAllPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list plans: %v", utils.ErrDatabaseError, err)
	}

	result := make([]response_models.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		info, err := p.planRepo.GetPlanInfo(ctx, plan.ID)
		if err != nil {
			p.log.Warn("plan info unavailable", zap.String("plan_id", plan.ID.String()), zap.Error(err))
		}
		result = append(result, ToPlanResponse(plan, info))
	}
	return result, nil
}

func (p *PlanService) CreatePlan(ctx context.Context, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error) {
	plan := &db_models.MembershipPlan{}
	if err := applyPlanRequest(plan, req); err != nil {
		return nil, err
	}

	if err := p.planRepo.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("%w: create plan: %v", utils.ErrDatabaseError, err)
	}
	p.cache.Flush()

	resp := ToPlanResponse(*plan, nil)
	return &resp, nil
}

func (p *PlanService) UpdatePlan(ctx context.Context, planId string, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error) {
	if _, err := parsePlanID(planId); err != nil {
		return nil, err
	}

	plan, err := p.planRepo.GetPlanById(ctx, planId)
	if err != nil {
		return nil, fmt.Errorf("%w: get plan: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	if err := applyPlanRequest(plan, req); err != nil {
		return nil, err
	}
	if err := p.planRepo.UpdatePlan(ctx, plan); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrPlanNotFound
		}
		return nil, fmt.Errorf("%w: update plan: %v", utils.ErrDatabaseError, err)
	}
	p.cache.Flush()

	info, _ := p.planRepo.GetPlanInfo(ctx, plan.ID)
	resp := ToPlanResponse(*plan, info)
	return &resp, nil
}

func (p *PlanService) UpsertPlanInfo(ctx context.Context, planId string, req request_models.PlanInfoRequest) (*response_models.PlanInfoResponse, error) {
	if _, err := parsePlanID(planId); err != nil {
		return nil, err
	}

	plan, err := p.planRepo.GetPlanById(ctx, planId)
	if err != nil {
		return nil, fmt.Errorf("%w: get plan: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	info := &db_models.PlanInfo{
		MembershipID: plan.ID,
		Line1:        req.Line1,
		Line2:        req.Line2,
		Line3:        req.Line3,
		Line4:        req.Line4,
		Line5:        req.Line5,
		Line6:        req.Line6,
		Line7:        req.Line7,
	}
	if err := ValidatePlanInfo(info); err != nil {
		return nil, err
	}

	if err := p.planRepo.UpsertPlanInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("%w: upsert plan info: %v", utils.ErrDatabaseError, err)
	}
	p.cache.Flush()

	return toPlanInfoResponse(info), nil
}

// applyPlanRequest copies admin input onto plan and derives the final price.
func applyPlanRequest(plan *db_models.MembershipPlan, req request_models.UpsertPlanRequest) error {
	if req.Price.Sign() <= 0 {
		return fmt.Errorf("%w: price must be positive", utils.ErrInvalidPlanInput)
	}
	if req.Discount.Sign() < 0 || req.Discount.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: discount must be between 0 and 100", utils.ErrInvalidPlanInput)
	}

	status := db_models.PlanStatus(req.Status)
	if status == "" {
		status = db_models.PlanStatusActive
	}

	plan.Name = req.Name
	plan.Price = req.Price.Round(2)
	plan.Discount = req.Discount.Round(2)
	plan.FinalPrice = utils.FinalPrice(plan.Price, plan.Discount)
	plan.Duration = req.Duration
	plan.Status = status
	return nil
}

const (
	maxInfoLine       = 30
	maxMotivationLine = 60
)

// ValidatePlanInfo enforces the card layout: five required short lines,
// an optional motivation line and an optional footnote.
func ValidatePlanInfo(info *db_models.PlanInfo) error {
	required := []string{info.Line1, info.Line2, info.Line3, info.Line4, info.Line5}
	for i, line := range required {
		if line == "" {
			return fmt.Errorf("%w: line%d is required", utils.ErrInvalidPlanInput, i+1)
		}
		if len([]rune(line)) > maxInfoLine {
			return fmt.Errorf("%w: line%d exceeds %d characters", utils.ErrInvalidPlanInput, i+1, maxInfoLine)
		}
	}
	if len([]rune(info.Line6)) > maxMotivationLine {
		return fmt.Errorf("%w: line6 exceeds %d characters", utils.ErrInvalidPlanInput, maxMotivationLine)
	}
	if len([]rune(info.Line7)) > maxInfoLine {
		return fmt.Errorf("%w: line7 exceeds %d characters", utils.ErrInvalidPlanInput, maxInfoLine)
	}
	return nil
}

func ToPlanResponse(plan db_models.MembershipPlan, info *db_models.PlanInfo) response_models.PlanResponse {
	resp := response_models.PlanResponse{
		ID:         plan.ID.String(),
		Name:       plan.Name,
		Price:      utils.FormatAmount(plan.Price),
		Discount:   utils.FormatAmount(plan.Discount),
		FinalPrice: utils.FormatAmount(plan.FinalPrice),
		Duration:   plan.Duration,
		Status:     string(plan.Status),
		PlanInfo:   toPlanInfoResponse(info),
	}
	if planType, _, ok := DerivePlanType(plan.Duration); ok {
		resp.PlanType = string(planType)
	}
	return resp
}

func toPlanInfoResponse(info *db_models.PlanInfo) *response_models.PlanInfoResponse {
	if info == nil {
		return nil
	}
	return &response_models.PlanInfoResponse{
		Line1: info.Line1,
		Line2: info.Line2,
		Line3: info.Line3,
		Line4: info.Line4,
		Line5: info.Line5,
		Line6: info.Line6,
		Line7: info.Line7,
	}
}

func catalogPlans(catalog []CatalogPlan) []db_models.MembershipPlan {
	plans := make([]db_models.MembershipPlan, len(catalog))
	for i := range catalog {
		plans[i] = catalog[i].Plan
	}
	return plans
}

func parsePlanID(planId string) (uuid.UUID, error) {
	id, err := uuid.Parse(planId)
	if err != nil {
		return uuid.Nil, utils.ErrPlanNotFound
	}
	return id, nil
}
