package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymstar/internal/models/db_models"
	"gymstar/internal/testutil"
	"gymstar/pkg/utils"
)

func TestCreateCheckout_NewPurchase(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, ist)
	f := newPaymentFixture(t, now)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db, testutil.WithPlanName("Gold"), testutil.WithPricing(1000, 20))

	resp, err := f.payments.CreateCheckout(context.Background(), user.ID, plan.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Mode)
	assert.Equal(t, "stripe", resp.Provider)
	assert.NotEmpty(t, resp.SessionID)

	require.Len(t, f.gateway.created, 1)
	req := f.gateway.created[0]
	assert.Equal(t, "Gold", req.PlanName)
	assert.Equal(t, "800.00", utils.FormatAmount(req.FinalPrice))
	assert.Equal(t, "1250.00", utils.FormatAmount(req.OriginalPrice))
	assert.Equal(t, PlanTypeMonthly, req.PlanType)
	assert.Equal(t, PromocodePlaceholder, req.Promocode)
	assert.Equal(t, user.ID, req.UserID)
	assert.Zero(t, req.CurrentExpiry)

	var n int64
	require.NoError(t, f.db.Model(&db_models.Subscription{}).Count(&n).Error)
	assert.Zero(t, n, "checkout must not persist anything")
}

func TestCreateCheckout_CurrentPlanExtends(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, ist)
	f := newPaymentFixture(t, now)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db)
	current := testutil.TestSubscription(t, f.db, user.ID, plan.ID, now.AddDate(0, 0, -15), now.AddDate(0, 0, 15))

	resp, err := f.payments.CreateCheckout(context.Background(), user.ID, plan.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "extend", resp.Mode)
	require.Len(t, f.gateway.created, 1)
	assert.Equal(t, current.ExpiryDate, f.gateway.created[0].CurrentExpiry)
}

func TestCreateCheckout_RejectsMaxedAndExtended(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, ist)
	f := newPaymentFixture(t, now)
	user := testutil.TestAccount(t, f.db)
	a := testutil.TestPlan(t, f.db)
	b := testutil.TestPlan(t, f.db)
	c := testutil.TestPlan(t, f.db)

	testutil.TestSubscription(t, f.db, user.ID, a.ID, now.AddDate(0, 0, -1), now.AddDate(0, 0, 20))
	testutil.TestSubscription(t, f.db, user.ID, b.ID, now.AddDate(0, 0, -1), now.AddDate(0, 0, 20))
	testutil.TestSubscription(t, f.db, user.ID, a.ID, now.AddDate(0, 0, 20), now.AddDate(0, 1, 20), testutil.WithExtended())

	_, err := f.payments.CreateCheckout(context.Background(), user.ID, c.ID.String())
	assert.ErrorIs(t, err, utils.ErrPlanNotPurchasable, "maxed")

	_, err = f.payments.CreateCheckout(context.Background(), user.ID, a.ID.String())
	assert.ErrorIs(t, err, utils.ErrPlanNotPurchasable, "extended")

	_, err = f.payments.CreateCheckout(context.Background(), user.ID, b.ID.String())
	assert.ErrorIs(t, err, utils.ErrPlanNotPurchasable, "current at the limit")

	assert.Empty(t, f.gateway.created)
}

func TestCreateCheckout_UnknownOrInactivePlan(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, ist)
	f := newPaymentFixture(t, now)
	user := testutil.TestAccount(t, f.db)
	inactive := testutil.TestPlan(t, f.db, testutil.WithStatus(db_models.PlanStatusInactive))
	unsellable := testutil.TestPlan(t, f.db, testutil.WithDuration("lifetime"))

	for _, id := range []string{uuid.NewString(), inactive.ID.String(), unsellable.ID.String()} {
		_, err := f.payments.CreateCheckout(context.Background(), user.ID, id)
		assert.ErrorIs(t, err, utils.ErrPlanNotFound)
	}
}

func TestCreateCheckout_ProviderFailure(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, ist)
	f := newPaymentFixture(t, now)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db)
	f.gateway.createErr = utils.ErrPaymentProvider

	_, err := f.payments.CreateCheckout(context.Background(), user.ID, plan.ID.String())
	assert.ErrorIs(t, err, utils.ErrPaymentProvider)
}

// checkoutAt starts a checkout with the clock at ts and returns the session id.
func checkoutAt(t *testing.T, f *paymentFixture, ts time.Time, userID uuid.UUID, planID uuid.UUID) string {
	t.Helper()
	f.payments.now = func() time.Time { return ts }
	f.memberships.now = func() time.Time { return ts }
	resp, err := f.payments.CreateCheckout(context.Background(), userID, planID.String())
	require.NoError(t, err)
	return resp.SessionID
}

func TestCompletePayment_NewHalfYearly(t *testing.T) {
	paidAt := time.Date(2025, 1, 10, 11, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db, testutil.WithDuration("182 days"), testutil.WithPricing(6000, 0))

	sessionID := checkoutAt(t, f, paidAt, user.ID, plan.ID)

	resp, replayed, err := f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, paidAt.Unix(), resp.StartDate)
	assert.Equal(t, time.Date(2025, 7, 10, 11, 0, 0, 0, ist).Unix(), resp.ExpiryDate)
	assert.Equal(t, "6000.00", resp.Total)
	assert.Equal(t, "6000.00", resp.Subtotal)
	assert.Equal(t, "None", resp.Promocode)
	assert.False(t, resp.IsExtended)
	assert.Equal(t, "active", resp.Status)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, user.Email, f.mailer.to[0])
	assert.Equal(t, sessionID, f.mailer.sent[0].Reference)
}

func TestCompletePayment_ExtensionStartsAtCurrentExpiry(t *testing.T) {
	paidAt := time.Date(2025, 6, 15, 9, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db)
	currentExpiry := time.Date(2025, 6, 30, 0, 0, 0, 0, ist)
	testutil.TestSubscription(t, f.db, user.ID, plan.ID, time.Date(2025, 5, 30, 0, 0, 0, 0, ist), currentExpiry)

	sessionID := checkoutAt(t, f, paidAt, user.ID, plan.ID)

	resp, _, err := f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, currentExpiry.Unix(), resp.StartDate)
	assert.Equal(t, time.Date(2025, 7, 30, 0, 0, 0, 0, ist).Unix(), resp.ExpiryDate)
	assert.True(t, resp.IsExtended)
	assert.Equal(t, "upcoming", resp.Status)

	// The plan is now extended and cannot be bought again.
	_, err = f.payments.CreateCheckout(context.Background(), user.ID, plan.ID.String())
	assert.ErrorIs(t, err, utils.ErrPlanNotPurchasable)
}

func TestCompletePayment_OtherPlanStartsAfterLatestExpiry(t *testing.T) {
	paidAt := time.Date(2025, 6, 15, 10, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	held := testutil.TestPlan(t, f.db, testutil.WithPlanName("Monthly A"))
	bought := testutil.TestPlan(t, f.db, testutil.WithPlanName("Monthly B"), testutil.WithPricing(1500, 0))
	heldExpiry := time.Date(2025, 6, 30, 10, 0, 0, 0, ist)
	testutil.TestSubscription(t, f.db, user.ID, held.ID, time.Date(2025, 5, 30, 10, 0, 0, 0, ist), heldExpiry)

	sessionID := checkoutAt(t, f, paidAt, user.ID, bought.ID)
	resp, _, err := f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, bought.ID.String(), resp.MembershipID)
	assert.Equal(t, heldExpiry.Unix(), resp.StartDate)
	assert.Equal(t, time.Date(2025, 7, 30, 10, 0, 0, 0, ist).Unix(), resp.ExpiryDate)
	assert.False(t, resp.IsExtended)
}

func TestCompletePayment_RechecksActiveLimit(t *testing.T) {
	paidAt := time.Date(2025, 6, 15, 10, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	held := testutil.TestPlan(t, f.db)
	first := testutil.TestPlan(t, f.db)
	second := testutil.TestPlan(t, f.db)
	testutil.TestSubscription(t, f.db, user.ID, held.ID, paidAt.AddDate(0, 0, -5), paidAt.AddDate(0, 0, 25))

	// Both checkouts open while only one subscription is active.
	firstSession := checkoutAt(t, f, paidAt, user.ID, first.ID)
	secondSession := checkoutAt(t, f, paidAt, user.ID, second.ID)

	_, _, err := f.payments.CompletePayment(context.Background(), user.ID, firstSession)
	require.NoError(t, err)

	_, _, err = f.payments.CompletePayment(context.Background(), user.ID, secondSession)
	assert.ErrorIs(t, err, utils.ErrPlanNotPurchasable)

	var count int64
	require.NoError(t, f.db.Model(&db_models.Subscription{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
	assert.Len(t, f.mailer.sent, 1)
}

func TestCompletePayment_ExpiredHistoryStartsNow(t *testing.T) {
	paidAt := time.Date(2025, 6, 15, 9, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db, testutil.WithDuration("365 days"))
	testutil.TestSubscription(t, f.db, user.ID, plan.ID, paidAt.AddDate(-1, 0, -10), paidAt.AddDate(0, 0, -10))

	sessionID := checkoutAt(t, f, paidAt, user.ID, plan.ID)
	resp, _, err := f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, paidAt.Unix(), resp.StartDate)
	assert.Equal(t, paidAt.AddDate(1, 0, 0).Unix(), resp.ExpiryDate)
}

func TestCompletePayment_CustomDays(t *testing.T) {
	paidAt := time.Date(2025, 6, 15, 9, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db, testutil.WithDuration("90 days"))

	sessionID := checkoutAt(t, f, paidAt, user.ID, plan.ID)
	resp, _, err := f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, paidAt.AddDate(0, 0, 90).Unix(), resp.ExpiryDate)
}

func TestCompletePayment_IsIdempotentPerSession(t *testing.T) {
	paidAt := time.Date(2025, 6, 15, 9, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db)
	sessionID := checkoutAt(t, f, paidAt, user.ID, plan.ID)

	first, replayed, err := f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	require.NoError(t, err)
	assert.False(t, replayed)

	second, replayed, err := f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.StartDate, second.StartDate)

	var n int64
	require.NoError(t, f.db.Model(&db_models.Subscription{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	assert.Len(t, f.mailer.sent, 1)
}

func TestCompletePayment_Rejections(t *testing.T) {
	paidAt := time.Date(2025, 6, 15, 9, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	intruder := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db)
	sessionID := checkoutAt(t, f, paidAt, user.ID, plan.ID)

	_, _, err := f.payments.CompletePayment(context.Background(), intruder.ID, sessionID)
	assert.ErrorIs(t, err, utils.ErrSessionUserMismatch)

	_, _, err = f.payments.CompletePayment(context.Background(), user.ID, "cs_unknown")
	assert.ErrorIs(t, err, utils.ErrPaymentNotVerified)

	f.gateway.sessions["cs_unpaid"] = &VerifiedSession{ID: "cs_unpaid", Paid: false, Metadata: f.gateway.sessions[sessionID].Metadata}
	_, _, err = f.payments.CompletePayment(context.Background(), user.ID, "cs_unpaid")
	assert.ErrorIs(t, err, utils.ErrPaymentNotVerified)

	f.gateway.sessions["cs_nometa"] = &VerifiedSession{ID: "cs_nometa", Paid: true, Metadata: map[string]string{"user_id": user.ID.String()}}
	_, _, err = f.payments.CompletePayment(context.Background(), user.ID, "cs_nometa")
	assert.ErrorIs(t, err, utils.ErrMissingMetadata)

	md := map[string]string{}
	for k, v := range f.gateway.sessions[sessionID].Metadata {
		md[k] = v
	}
	md["plan_type"] = "weekly"
	f.gateway.sessions["cs_badtype"] = &VerifiedSession{ID: "cs_badtype", Paid: true, Metadata: md}
	_, _, err = f.payments.CompletePayment(context.Background(), user.ID, "cs_badtype")
	assert.ErrorIs(t, err, utils.ErrInvalidPlanType)

	var n int64
	require.NoError(t, f.db.Model(&db_models.Subscription{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCompletePayment_RetriesTransportErrors(t *testing.T) {
	paidAt := time.Date(2025, 6, 15, 9, 0, 0, 0, ist)
	f := newPaymentFixture(t, paidAt)
	user := testutil.TestAccount(t, f.db)
	plan := testutil.TestPlan(t, f.db)
	sessionID := checkoutAt(t, f, paidAt, user.ID, plan.ID)

	f.gateway.verifyErr = []error{utils.ErrPaymentProvider, utils.ErrPaymentProvider}
	_, _, err := f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, f.gateway.verifies)

	f.gateway.verifies = 0
	f.gateway.verifyErr = []error{utils.ErrPaymentProvider, utils.ErrPaymentProvider, utils.ErrPaymentProvider}
	_, _, err = f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	assert.ErrorIs(t, err, utils.ErrPaymentProvider)
	assert.Equal(t, 3, f.gateway.verifies)

	f.gateway.verifies = 0
	f.gateway.verifyErr = []error{errors.New("boom")}
	_, _, err = f.payments.CompletePayment(context.Background(), user.ID, sessionID)
	assert.Error(t, err)
	assert.Equal(t, 1, f.gateway.verifies, "non transport errors are not retried")
}

func TestParseCheckoutMetadata_Fallbacks(t *testing.T) {
	userID, membershipID := uuid.New(), uuid.New()
	req, err := ParseCheckoutMetadata(map[string]string{
		"user_id":       userID.String(),
		"membership_id": membershipID.String(),
		"final_price":   "750.00",
		"plan_type":     "monthly",
	})
	require.NoError(t, err)
	assert.True(t, req.OriginalPrice.Equal(decimal.NewFromInt(750)))
	assert.True(t, req.Discount.IsZero())
	assert.Equal(t, "None", NormalizePromocode(req.Promocode))
	assert.Equal(t, "SPRING", NormalizePromocode("SPRING"))
	assert.Equal(t, "None", NormalizePromocode("Null"))
}
