package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymstar/internal/config"
	"gymstar/internal/models/db_models"
	"gymstar/internal/repositories"
	"gymstar/internal/services"
	"gymstar/internal/testutil"
	"gymstar/pkg/memcache"
	"gymstar/pkg/middleware"
	"gymstar/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGateway struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]*services.VerifiedSession
}

func (g *stubGateway) Name() string { return "stripe" }

func (g *stubGateway) CreateCheckoutSession(_ context.Context, req services.CheckoutSessionRequest) (*services.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	id := fmt.Sprintf("cs_test_%d", g.seq)
	g.sessions[id] = &services.VerifiedSession{ID: id, Paid: true, Metadata: req.Metadata()}
	return &services.CheckoutSession{ID: id, URL: "https://checkout.stripe.test/" + id}, nil
}

func (g *stubGateway) VerifySession(_ context.Context, id string) (*services.VerifiedSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[id]
	if !ok {
		return nil, utils.ErrPaymentNotVerified
	}
	return s, nil
}

type noopMailer struct{}

func (noopMailer) SendSubscriptionReceipt(context.Context, string, services.Receipt) error {
	return nil
}

type apiHarness struct {
	db     *gorm.DB
	tokens *utils.TokenIssuer
	router *gin.Engine
}

// setupAPI wires every controller over an in-memory database the same way
// the application router does.
func setupAPI(t *testing.T) *apiHarness {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()
	loc := utils.LoadLocation("Asia/Kolkata")
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)

	cfg := &config.Config{}
	cfg.Stripe.Currency = "inr"
	cfg.Stripe.VerifyAttempts = 1
	cfg.Business.MaxActiveSubscriptions = 2

	accountRepo := repositories.NewAccountRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)

	plans := services.NewPlanService(planRepo, memcache.NewCatalogCache(time.Minute), log)
	memberships := services.NewMembershipService(plans, subRepo, services.NewSubscriptionEvaluator(2), loc)
	gateway := &stubGateway{sessions: map[string]*services.VerifiedSession{}}
	payments := services.NewPaymentService(memberships, subRepo, accountRepo, gateway, noopMailer{}, cfg, loc, log)

	accountController := NewAccountController(services.NewAccountService(accountRepo, subRepo, tokens, log))
	membershipController := NewMembershipController(memberships)
	adminController := NewAdminMembershipController(plans)
	paymentController := NewPaymentController(payments)
	subscriptionController := NewSubscriptionController(services.NewSubscriptionService(subRepo))
	dashboardController := NewDashboardController(
		services.NewDashboardService(repositories.NewDashboardRepository(db), loc, cfg.Stripe.Currency))

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())

	auth := middleware.JWTAuthMiddleware(tokens)
	adminOnly := middleware.RoleMiddleware(string(db_models.RoleAdmin))

	r.POST("/accounts/register", accountController.Register)
	r.POST("/accounts/login", accountController.Login)
	r.GET("/accounts/profile", auth, accountController.Profile)
	r.PUT("/accounts/change-password", auth, accountController.ChangePassword)

	r.GET("/memberships", membershipController.ListMemberships)
	r.GET("/memberships/me", auth, membershipController.MyMemberships)
	r.GET("/memberships/:id", membershipController.GetMembership)

	r.GET("/subscriptions/me", auth, subscriptionController.MySubscriptions)

	r.POST("/payments/checkout", auth, paymentController.CreateCheckout)
	r.POST("/payments/complete", auth, paymentController.CompletePayment)
	r.GET("/payments/complete", auth, paymentController.CompletePayment)

	admin := r.Group("/admin", auth, adminOnly)
	admin.GET("/memberships", adminController.ListPlans)
	admin.POST("/memberships", adminController.CreatePlan)
	admin.PUT("/memberships/:id", adminController.UpdatePlan)
	admin.PUT("/memberships/:id/info", adminController.UpsertPlanInfo)

	dashboard := r.Group("/dashboard", auth, adminOnly)
	dashboard.GET("/summary", dashboardController.GetSummary)
	dashboard.GET("/revenue", dashboardController.GetRevenue)
	dashboard.GET("/revenue/days", dashboardController.GetRevenueForDays)
	dashboard.GET("/revenue/range", dashboardController.GetRevenueForRange)

	return &apiHarness{db: db, tokens: tokens, router: r}
}

func (h *apiHarness) tokenFor(t *testing.T, account *db_models.Account) string {
	t.Helper()
	token, err := h.tokens.CreateToken(account.ID, string(account.Role))
	require.NoError(t, err)
	return token
}

func (h *apiHarness) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}
