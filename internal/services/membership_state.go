package services

import (
	"time"

	"gymstar/internal/models/db_models"
)

type PlanState int

const (
	PlanStateGet PlanState = iota
	PlanStateUpgrade
	PlanStateCurrent
	PlanStateExtended
	PlanStateMaxed
)

func (s PlanState) String() string {
	switch s {
	case PlanStateGet:
		return "get"
	case PlanStateUpgrade:
		return "upgrade"
	case PlanStateCurrent:
		return "current"
	case PlanStateExtended:
		return "extended"
	case PlanStateMaxed:
		return "maxed"
	}
	return "unknown"
}

// PlanEvaluation is the purchase state of one plan for one user.
type PlanEvaluation struct {
	State       PlanState
	Current     *db_models.Subscription
	ActiveCount int
	CanPurchase bool
	CanExtend   bool
}

const DefaultMaxActiveSubscriptions = 2

type SubscriptionEvaluator struct {
	maxActive int
}

func NewSubscriptionEvaluator(maxActive int) *SubscriptionEvaluator {
	if maxActive < 1 {
		maxActive = DefaultMaxActiveSubscriptions
	}
	return &SubscriptionEvaluator{maxActive: maxActive}
}

func (e *SubscriptionEvaluator) MaxActive() int {
	return e.maxActive
}

// Evaluate decides the state of plan for a user holding subs at now.
// catalog resolves the prices of plans referenced by active subscriptions.
func (e *SubscriptionEvaluator) Evaluate(
	subs []db_models.Subscription,
	plan db_models.MembershipPlan,
	catalog []db_models.MembershipPlan,
	now time.Time,
) PlanEvaluation {
	t := now.Unix()
	ev := PlanEvaluation{
		Current:     CurrentSubscription(subs, plan, t),
		ActiveCount: ActiveCount(subs, t),
	}

	switch {
	case ev.Current != nil:
		ev.State = PlanStateCurrent
		if IsExtended(subs, plan, t) {
			ev.State = PlanStateExtended
		}
	case ev.ActiveCount >= e.maxActive:
		ev.State = PlanStateMaxed
	default:
		ev.State = PlanStateGet
		highest := HighestPricedActivePlan(subs, catalog, t)
		if highest != nil && plan.FinalPrice.GreaterThan(highest.FinalPrice) {
			ev.State = PlanStateUpgrade
		}
	}

	switch ev.State {
	case PlanStateGet, PlanStateUpgrade:
		ev.CanPurchase = true
	case PlanStateCurrent:
		ev.CanExtend = ev.ActiveCount < e.maxActive
	case PlanStateExtended, PlanStateMaxed:
	}
	return ev
}

// ActiveFor returns the subscriptions on plan that expire after t.
func ActiveFor(subs []db_models.Subscription, plan db_models.MembershipPlan, t int64) []db_models.Subscription {
	var out []db_models.Subscription
	for _, s := range subs {
		if s.MembershipID == plan.ID && s.IsActiveAt(t) {
			out = append(out, s)
		}
	}
	return out
}

func CurrentSubscription(subs []db_models.Subscription, plan db_models.MembershipPlan, t int64) *db_models.Subscription {
	var current *db_models.Subscription
	for _, s := range ActiveFor(subs, plan, t) {
		if current == nil || s.ExpiryDate > current.ExpiryDate {
			c := s
			current = &c
		}
	}
	return current
}

func IsExtended(subs []db_models.Subscription, plan db_models.MembershipPlan, t int64) bool {
	for _, s := range ActiveFor(subs, plan, t) {
		if s.IsExtended {
			return true
		}
	}
	return false
}

func ActiveCount(subs []db_models.Subscription, t int64) int {
	n := 0
	for _, s := range subs {
		if s.IsActiveAt(t) {
			n++
		}
	}
	return n
}

// HighestPricedActivePlan returns the most expensive catalog plan among those
// referenced by active subscriptions. Ties keep the first one seen.
func HighestPricedActivePlan(subs []db_models.Subscription, catalog []db_models.MembershipPlan, t int64) *db_models.MembershipPlan {
	byID := make(map[string]*db_models.MembershipPlan, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID.String()] = &catalog[i]
	}

	var highest *db_models.MembershipPlan
	for _, s := range subs {
		if !s.IsActiveAt(t) {
			continue
		}
		p, ok := byID[s.MembershipID.String()]
		if !ok {
			continue
		}
		if highest == nil || p.FinalPrice.GreaterThan(highest.FinalPrice) {
			highest = p
		}
	}
	return highest
}
