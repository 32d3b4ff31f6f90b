package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gymstar/internal/config"
	dbm "gymstar/internal/models/db_models"
	"gymstar/internal/models/response_models"
	"gymstar/internal/repositories"
	"gymstar/pkg/utils"
)

type PaymentService interface {
	CreateCheckout(ctx context.Context, userID uuid.UUID, planId string) (*response_models.CreateCheckoutResponse, error)
	// CompletePayment records the subscription paid through sessionID. The
	// returned flag is true when the session had already been recorded.
	CompletePayment(ctx context.Context, userID uuid.UUID, sessionID string) (*response_models.SubscriptionResponse, bool, error)
}

type paymentService struct {
	memberships MembershipService
	subRepo     repositories.SubscriptionRepository
	accountRepo repositories.AccountRepository
	gateway     PaymentGateway
	mail        IMailService
	log         *zap.Logger
	loc         *time.Location

	maxActive      int
	verifyAttempts uint
	retryInterval  time.Duration
	now            func() time.Time
}

func NewPaymentService(
	memberships MembershipService,
	subRepo repositories.SubscriptionRepository,
	accountRepo repositories.AccountRepository,
	gateway PaymentGateway,
	mail IMailService,
	cfg *config.Config,
	loc *time.Location,
	log *zap.Logger,
) PaymentService {
	attempts := cfg.Stripe.VerifyAttempts
	if attempts == 0 {
		attempts = 3
	}
	maxActive := cfg.Business.MaxActiveSubscriptions
	if maxActive < 1 {
		maxActive = DefaultMaxActiveSubscriptions
	}
	return &paymentService{
		maxActive:      maxActive,
		memberships:    memberships,
		subRepo:        subRepo,
		accountRepo:    accountRepo,
		gateway:        gateway,
		mail:           mail,
		log:            log,
		loc:            loc,
		verifyAttempts: attempts,
		retryInterval:  500 * time.Millisecond,
		now:            time.Now,
	}
}

func (p *paymentService) CreateCheckout(ctx context.Context, userID uuid.UUID, planId string) (*response_models.CreateCheckoutResponse, error) {
	c, ev, err := p.memberships.EvaluatePlan(ctx, userID, planId)
	if err != nil {
		return nil, err
	}

	mode := CheckoutModeNew
	switch ev.State {
	case PlanStateGet, PlanStateUpgrade:
	case PlanStateCurrent:
		if !ev.CanExtend {
			return nil, fmt.Errorf("%w: %d active subscriptions", utils.ErrPlanNotPurchasable, ev.ActiveCount)
		}
		mode = CheckoutModeExtend
	case PlanStateExtended, PlanStateMaxed:
		return nil, fmt.Errorf("%w: plan is %s", utils.ErrPlanNotPurchasable, ev.State)
	}

	plan := c.Plan
	req := CheckoutSessionRequest{
		PlanName:      plan.Name,
		Price:         plan.Price,
		OriginalPrice: utils.OriginalPrice(plan.Price, plan.Discount),
		Discount:      plan.Discount,
		FinalPrice:    plan.FinalPrice,
		MembershipID:  plan.ID,
		PlanType:      c.PlanType,
		DurationDays:  c.DurationDays,
		Promocode:     PromocodePlaceholder,
		UserID:        userID,
		Mode:          mode,
	}
	if ev.Current != nil {
		req.CurrentExpiry = ev.Current.ExpiryDate
	}

	session, err := p.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		return nil, err
	}
	if session == nil || session.ID == "" {
		return nil, fmt.Errorf("%w: empty checkout session", utils.ErrPaymentProvider)
	}

	p.log.Info("checkout session created",
		zap.String("user_id", userID.String()),
		zap.String("plan_id", plan.ID.String()),
		zap.String("mode", string(mode)),
		zap.String("session_id", session.ID),
	)

	return &response_models.CreateCheckoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
		Mode:        string(mode),
		Provider:    p.gateway.Name(),
	}, nil
}

func (p *paymentService) CompletePayment(ctx context.Context, userID uuid.UUID, sessionID string) (*response_models.SubscriptionResponse, bool, error) {
	verified, err := p.verify(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if !verified.Paid {
		return nil, false, fmt.Errorf("%w: session %s is not paid", utils.ErrPaymentNotVerified, sessionID)
	}

	req, err := ParseCheckoutMetadata(verified.Metadata)
	if err != nil {
		return nil, false, err
	}
	if req.UserID != userID {
		return nil, false, utils.ErrSessionUserMismatch
	}

	snapshot, err := json.Marshal(verified.Metadata)
	if err != nil {
		return nil, false, fmt.Errorf("encode metadata: %w", err)
	}

	now := p.now().In(p.loc)
	build := func(prior []dbm.Subscription) (*dbm.Subscription, error) {
		if active := ActiveCount(prior, now.Unix()); active >= p.maxActive {
			p.log.Error("paid session exceeds the active subscription limit, refund required",
				zap.String("user_id", userID.String()),
				zap.String("session_id", sessionID),
				zap.Int("active", active),
			)
			return nil, fmt.Errorf("%w: %d active subscriptions", utils.ErrPlanNotPurchasable, active)
		}

		// prior is ordered by expiry, so the first row is the latest subscription.
		start := now
		if len(prior) > 0 && prior[0].ExpiryDate > now.Unix() {
			start = utils.FromUnixSeconds(prior[0].ExpiryDate, p.loc)
		}
		expiry, err := req.PlanType.Expiry(start, req.DurationDays)
		if err != nil {
			return nil, err
		}
		return &dbm.Subscription{
			UserID:        userID,
			MembershipID:  req.MembershipID,
			StartDate:     start.Unix(),
			ExpiryDate:    expiry.Unix(),
			Subtotal:      req.OriginalPrice,
			Discount:      req.Discount,
			Total:         req.FinalPrice,
			Promocode:     NormalizePromocode(req.Promocode),
			PaymentStatus: dbm.PaymentPaid,
			IsExtended:    req.Mode == CheckoutModeExtend,
			Provider:      p.gateway.Name(),
			Metadata:      datatypes.JSON(snapshot),
			BaseModel:     dbm.BaseModel{CreatedAt: now.Unix()},
		}, nil
	}

	sub, replayed, err := p.subRepo.CreateOnce(ctx, userID, sessionID, build)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidPlanType), errors.Is(err, utils.ErrPlanNotPurchasable):
			return nil, false, err
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, false, utils.ErrAccountNotFound
		}
		return nil, false, fmt.Errorf("%w: record subscription: %v", utils.ErrDatabaseError, err)
	}

	resp := ToSubscriptionResponse(*sub, req.PlanName, now.Unix())
	if replayed {
		p.log.Info("payment completion replayed", zap.String("session_id", sessionID))
		return &resp, true, nil
	}

	p.log.Info("subscription recorded",
		zap.String("user_id", userID.String()),
		zap.String("subscription_id", sub.ID.String()),
		zap.Bool("extended", sub.IsExtended),
	)
	p.sendReceipt(ctx, userID, verified.CustomerEmail, req.PlanName, sub)
	return &resp, false, nil
}

// verify looks the session up, retrying only provider transport failures.
func (p *paymentService) verify(ctx context.Context, sessionID string) (*VerifiedSession, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.retryInterval

	operation := func() (*VerifiedSession, error) {
		v, err := p.gateway.VerifySession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, utils.ErrPaymentProvider) {
				p.log.Warn("session verification failed, retrying", zap.String("session_id", sessionID), zap.Error(err))
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		if v == nil {
			return nil, backoff.Permanent(fmt.Errorf("%w: session %s not found", utils.ErrPaymentNotVerified, sessionID))
		}
		return v, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(p.verifyAttempts),
	)
}

// sendReceipt never fails the completion; errors are logged.
func (p *paymentService) sendReceipt(ctx context.Context, userID uuid.UUID, fallbackEmail, planName string, sub *dbm.Subscription) {
	account, err := p.accountRepo.FindById(ctx, userID)
	if err != nil {
		p.log.Warn("receipt skipped: account lookup failed", zap.Error(err))
		return
	}

	to, name := fallbackEmail, ""
	if account != nil {
		to, name = account.Email, account.Name
	}
	if to == "" {
		return
	}

	receipt := Receipt{
		CustomerName: name,
		PlanName:     planName,
		StartDate:    utils.FromUnixSeconds(sub.StartDate, p.loc),
		ExpiryDate:   utils.FromUnixSeconds(sub.ExpiryDate, p.loc),
		Subtotal:     utils.FormatAmount(sub.Subtotal),
		Discount:     utils.FormatAmount(sub.Discount),
		Total:        utils.FormatAmount(sub.Total),
		Promocode:    sub.Promocode,
		Extended:     sub.IsExtended,
		Reference:    sub.ProviderSessionID,
	}
	if err := p.mail.SendSubscriptionReceipt(ctx, to, receipt); err != nil {
		p.log.Warn("receipt email failed", zap.String("to", to), zap.Error(err))
	}
}
