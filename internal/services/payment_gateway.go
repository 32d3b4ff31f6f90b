package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gymstar/pkg/utils"
)

type CheckoutMode string

const (
	CheckoutModeNew    CheckoutMode = "new"
	CheckoutModeExtend CheckoutMode = "extend"
)

const PromocodePlaceholder = "Null"

// CheckoutSessionRequest is everything the completion step needs back from
// the provider. It travels as session metadata.
type CheckoutSessionRequest struct {
	PlanName      string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Discount      decimal.Decimal
	FinalPrice    decimal.Decimal
	MembershipID  uuid.UUID
	PlanType      PlanType
	DurationDays  int
	Promocode     string
	UserID        uuid.UUID
	Mode          CheckoutMode
	// CurrentExpiry is the unix expiry of the plan being extended, zero otherwise.
	CurrentExpiry int64
}

type CheckoutSession struct {
	ID  string
	URL string
}

type VerifiedSession struct {
	ID            string
	Paid          bool
	CustomerEmail string
	Metadata      map[string]string
}

// PaymentGateway is a hosted checkout provider.
// VerifySession wraps transport failures in utils.ErrPaymentProvider.
type PaymentGateway interface {
	Name() string
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	VerifySession(ctx context.Context, sessionID string) (*VerifiedSession, error)
}

const (
	metaUserID        = "user_id"
	metaMembershipID  = "membership_id"
	metaPlanName      = "plan_name"
	metaPrice         = "price"
	metaOriginalPrice = "original_price"
	metaDiscount      = "discount"
	metaFinalPrice    = "final_price"
	metaPlanType      = "plan_type"
	metaDurationDays  = "duration_days"
	metaPromocode     = "promocode"
	metaMode          = "mode"
	metaCurrentExpiry = "current_expiry"
)

func (r CheckoutSessionRequest) Metadata() map[string]string {
	md := map[string]string{
		metaUserID:        r.UserID.String(),
		metaMembershipID:  r.MembershipID.String(),
		metaPlanName:      r.PlanName,
		metaPrice:         utils.FormatAmount(r.Price),
		metaOriginalPrice: utils.FormatAmount(r.OriginalPrice),
		metaDiscount:      utils.FormatAmount(r.Discount),
		metaFinalPrice:    utils.FormatAmount(r.FinalPrice),
		metaPlanType:      string(r.PlanType),
		metaPromocode:     r.Promocode,
		metaMode:          string(r.Mode),
	}
	if r.DurationDays > 0 {
		md[metaDurationDays] = strconv.Itoa(r.DurationDays)
	}
	if r.CurrentExpiry > 0 {
		md[metaCurrentExpiry] = strconv.FormatInt(r.CurrentExpiry, 10)
	}
	return md
}

// ParseCheckoutMetadata rebuilds the request from verified session metadata.
// Missing price fields fall back the way receipts expect: original price to
// price, price to final price, discount to zero.
func ParseCheckoutMetadata(md map[string]string) (*CheckoutSessionRequest, error) {
	for _, k := range []string{metaUserID, metaMembershipID, metaFinalPrice, metaPlanType} {
		if strings.TrimSpace(md[k]) == "" {
			return nil, fmt.Errorf("%w: %s", utils.ErrMissingMetadata, k)
		}
	}

	userID, err := uuid.Parse(md[metaUserID])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrMissingMetadata, metaUserID)
	}
	membershipID, err := uuid.Parse(md[metaMembershipID])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrMissingMetadata, metaMembershipID)
	}
	finalPrice, err := decimal.NewFromString(md[metaFinalPrice])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrMissingMetadata, metaFinalPrice)
	}

	req := &CheckoutSessionRequest{
		PlanName:     md[metaPlanName],
		FinalPrice:   finalPrice,
		Price:        optionalDecimal(md[metaPrice], finalPrice),
		Discount:     optionalDecimal(md[metaDiscount], decimal.Zero),
		MembershipID: membershipID,
		PlanType:     PlanType(md[metaPlanType]),
		Promocode:    md[metaPromocode],
		UserID:       userID,
		Mode:         CheckoutMode(md[metaMode]),
	}
	req.OriginalPrice = optionalDecimal(md[metaOriginalPrice], req.Price)

	if v := md[metaDurationDays]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.DurationDays = n
		}
	}
	if v := md[metaCurrentExpiry]; v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.CurrentExpiry = n
		}
	}
	return req, nil
}

func optionalDecimal(raw string, fallback decimal.Decimal) decimal.Decimal {
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return d
}

// NormalizePromocode stores "None" for an absent or placeholder code.
func NormalizePromocode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, PromocodePlaceholder) {
		return "None"
	}
	return code
}
