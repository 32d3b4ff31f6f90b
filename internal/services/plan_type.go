package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gymstar/pkg/utils"
)

type PlanType string

const (
	PlanTypeMonthly    PlanType = "monthly"
	PlanTypeHalfYearly PlanType = "half-yearly"
	PlanTypeYearly     PlanType = "yearly"
	PlanTypeCustom     PlanType = "custom"
)

var firstInteger = regexp.MustCompile(`\d+`)

// DerivePlanType maps a free text duration to a plan length. Custom plans
// carry an explicit day count; ok is false when no length can be derived.
func DerivePlanType(duration string) (planType PlanType, days int, ok bool) {
	switch {
	case strings.Contains(duration, "30"):
		return PlanTypeMonthly, 0, true
	case strings.Contains(duration, "182"):
		return PlanTypeHalfYearly, 0, true
	case strings.Contains(duration, "365"):
		return PlanTypeYearly, 0, true
	}

	m := firstInteger.FindString(duration)
	if m == "" {
		return PlanTypeCustom, 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return PlanTypeCustom, 0, false
	}
	return PlanTypeCustom, n, true
}

// Expiry adds the plan length to start using calendar arithmetic.
func (t PlanType) Expiry(start time.Time, days int) (time.Time, error) {
	switch t {
	case PlanTypeMonthly:
		return start.AddDate(0, 1, 0), nil
	case PlanTypeHalfYearly:
		return start.AddDate(0, 6, 0), nil
	case PlanTypeYearly:
		return start.AddDate(1, 0, 0), nil
	case PlanTypeCustom:
		if days > 0 {
			return start.AddDate(0, 0, days), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (days=%d)", utils.ErrInvalidPlanType, t, days)
}
