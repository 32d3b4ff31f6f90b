package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"gymstar/internal/config"
	"gymstar/pkg/utils"
)

// checkoutSessions is the part of the Stripe client the gateway uses.
type checkoutSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeGateway struct {
	sessions checkoutSessions
	cfg      config.StripeConfig
	log      *zap.Logger
}

func NewStripeGateway(cfg config.StripeConfig, log *zap.Logger) PaymentGateway {
	sc := client.New(cfg.SecretKey, nil)
	return newStripeGateway(sc.CheckoutSessions, cfg, log)
}

func newStripeGateway(sessions checkoutSessions, cfg config.StripeConfig, log *zap.Logger) *stripeGateway {
	if cfg.Currency == "" {
		cfg.Currency = "inr"
	}
	return &stripeGateway{sessions: sessions, cfg: cfg, log: log}
}

func (g *stripeGateway) Name() string { return "stripe" }

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	description := fmt.Sprintf("%s membership", strings.ReplaceAll(string(req.PlanType), "-", " "))
	if req.Mode == CheckoutModeExtend {
		description = "Extension: " + description
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.PlanName),
						Description: stripe.String(description),
					},
					// Minor units.
					UnitAmount: stripe.Int64(req.FinalPrice.Shift(2).Round(0).IntPart()),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.cfg.SuccessURL),
		CancelURL:         stripe.String(g.cfg.CancelURL),
		ClientReferenceID: stripe.String(req.UserID.String()),
	}
	for k, v := range req.Metadata() {
		params.AddMetadata(k, v)
	}

	s, err := g.sessions.New(params)
	if err != nil {
		g.log.Error("stripe: create checkout session failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrPaymentProvider, err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *stripeGateway) VerifySession(ctx context.Context, sessionID string) (*VerifiedSession, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) &&
			(stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing) {
			return nil, fmt.Errorf("%w: session %s not found", utils.ErrPaymentNotVerified, sessionID)
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrPaymentProvider, err)
	}

	out := &VerifiedSession{
		ID:            s.ID,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out, nil
}
