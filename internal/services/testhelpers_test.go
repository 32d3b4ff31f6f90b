package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymstar/internal/config"
	"gymstar/internal/repositories"
	"gymstar/internal/testutil"
	"gymstar/pkg/memcache"
	"gymstar/pkg/utils"
)

type fakeGateway struct {
	mu        sync.Mutex
	created   []CheckoutSessionRequest
	createErr error
	sessions  map[string]*VerifiedSession
	verifyErr []error
	verifies  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]*VerifiedSession{}}
}

func (f *fakeGateway) Name() string { return "stripe" }

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	id := "cs_test_" + req.MembershipID.String()
	f.sessions[id] = &VerifiedSession{ID: id, Paid: true, Metadata: req.Metadata()}
	return &CheckoutSession{ID: id, URL: "https://checkout.example/" + id}, nil
}

func (f *fakeGateway) VerifySession(_ context.Context, id string) (*VerifiedSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifies++
	if len(f.verifyErr) > 0 {
		err := f.verifyErr[0]
		f.verifyErr = f.verifyErr[1:]
		return nil, err
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, utils.ErrPaymentNotVerified
	}
	return s, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []Receipt
	to   []string
}

func (m *fakeMailer) SendSubscriptionReceipt(_ context.Context, to string, r Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.sent = append(m.sent, r)
	return nil
}

type paymentFixture struct {
	db          *gorm.DB
	gateway     *fakeGateway
	mailer      *fakeMailer
	plans       PlanServiceInterface
	memberships *membershipService
	payments    *paymentService
}

// newPaymentFixture wires the payment flow over an in-memory database with a
// clock fixed at now.
func newPaymentFixture(t *testing.T, now time.Time) *paymentFixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()
	loc := now.Location()
	clock := func() time.Time { return now }

	planRepo := repositories.NewPlanRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)
	accountRepo := repositories.NewAccountRepository(db)

	plans := NewPlanService(planRepo, memcache.NewCatalogCache(time.Minute), log)
	memberships := NewMembershipService(plans, subRepo, NewSubscriptionEvaluator(2), loc).(*membershipService)
	memberships.now = clock

	gateway := newFakeGateway()
	mailer := &fakeMailer{}
	cfg := &config.Config{}
	cfg.Business.MaxActiveSubscriptions = 2
	cfg.Stripe.VerifyAttempts = 3

	payments := NewPaymentService(memberships, subRepo, accountRepo, gateway, mailer, cfg, loc, log).(*paymentService)
	payments.now = clock
	payments.retryInterval = time.Millisecond

	return &paymentFixture{
		db:          db,
		gateway:     gateway,
		mailer:      mailer,
		plans:       plans,
		memberships: memberships,
		payments:    payments,
	}
}
