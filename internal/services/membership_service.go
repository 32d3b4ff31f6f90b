package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gymstar/internal/models/db_models"
	"gymstar/internal/models/response_models"
	"gymstar/internal/repositories"
	"gymstar/pkg/utils"
)

type MembershipService interface {
	ListCatalog(ctx context.Context) ([]response_models.PlanResponse, error)
	GetPlan(ctx context.Context, planId string) (*response_models.PlanResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]response_models.PlanStateResponse, error)
	// EvaluatePlan resolves a catalog plan and its state for userID.
	EvaluatePlan(ctx context.Context, userID uuid.UUID, planId string) (*CatalogPlan, PlanEvaluation, error)
}

type membershipService struct {
	plans     PlanServiceInterface
	subRepo   repositories.SubscriptionRepository
	evaluator *SubscriptionEvaluator
	loc       *time.Location
	now       func() time.Time
}

func NewMembershipService(
	plans PlanServiceInterface,
	subRepo repositories.SubscriptionRepository,
	evaluator *SubscriptionEvaluator,
	loc *time.Location,
) MembershipService {
	return &membershipService{
		plans:     plans,
		subRepo:   subRepo,
		evaluator: evaluator,
		loc:       loc,
		now:       time.Now,
	}
}

func (m *membershipService) ListCatalog(ctx context.Context) ([]response_models.PlanResponse, error) {
	catalog, err := m.plans.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]response_models.PlanResponse, 0, len(catalog))
	for _, c := range catalog {
		result = append(result, ToPlanResponse(c.Plan, c.Info))
	}
	return result, nil
}

func (m *membershipService) GetPlan(ctx context.Context, planId string) (*response_models.PlanResponse, error) {
	c, err := m.plans.GetCatalogPlan(ctx, planId)
	if err != nil {
		return nil, err
	}
	resp := ToPlanResponse(c.Plan, c.Info)
	return &resp, nil
}

func (m *membershipService) ListForUser(ctx context.Context, userID uuid.UUID) ([]response_models.PlanStateResponse, error) {
	catalog, err := m.plans.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := m.subRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list subscriptions: %v", utils.ErrDatabaseError, err)
	}

	now := m.now().In(m.loc)
	plans := catalogPlans(catalog)
	result := make([]response_models.PlanStateResponse, 0, len(catalog))
	for _, c := range catalog {
		ev := m.evaluator.Evaluate(subs, c.Plan, plans, now)
		item := response_models.PlanStateResponse{
			Plan:        ToPlanResponse(c.Plan, c.Info),
			State:       ev.State.String(),
			CanPurchase: ev.CanPurchase,
			CanExtend:   ev.CanExtend,
		}
		if ev.Current != nil {
			s := ToSubscriptionResponse(*ev.Current, c.Plan.Name, now.Unix())
			item.CurrentSubscription = &s
		}
		result = append(result, item)
	}
	return result, nil
}

func (m *membershipService) EvaluatePlan(ctx context.Context, userID uuid.UUID, planId string) (*CatalogPlan, PlanEvaluation, error) {
	c, err := m.plans.GetCatalogPlan(ctx, planId)
	if err != nil {
		return nil, PlanEvaluation{}, err
	}
	catalog, err := m.plans.GetCatalog(ctx)
	if err != nil {
		return nil, PlanEvaluation{}, err
	}
	subs, err := m.subRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, PlanEvaluation{}, fmt.Errorf("%w: list subscriptions: %v", utils.ErrDatabaseError, err)
	}

	ev := m.evaluator.Evaluate(subs, c.Plan, catalogPlans(catalog), m.now().In(m.loc))
	return c, ev, nil
}

func ToSubscriptionResponse(s db_models.Subscription, planName string, now int64) response_models.SubscriptionResponse {
	return response_models.SubscriptionResponse{
		ID:             s.ID.String(),
		MembershipID:   s.MembershipID.String(),
		MembershipName: planName,
		StartDate:      s.StartDate,
		ExpiryDate:     s.ExpiryDate,
		Subtotal:       utils.FormatAmount(s.Subtotal),
		Discount:       utils.FormatAmount(s.Discount),
		Total:          utils.FormatAmount(s.Total),
		Promocode:      s.Promocode,
		PaymentStatus:  string(s.PaymentStatus),
		IsExtended:     s.IsExtended,
		Status:         string(s.StatusAt(now)),
		CreatedAt:      s.CreatedAt,
	}
}
