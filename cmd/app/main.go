package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"gymstar/cmd/fx/account_fx"
	"gymstar/cmd/fx/config_fx"
	"gymstar/cmd/fx/controllers_fx"
	"gymstar/cmd/fx/dashboard"
	"gymstar/cmd/fx/db_fx"
	"gymstar/cmd/fx/mail_fx"
	"gymstar/cmd/fx/membership_fx"
	"gymstar/cmd/fx/memcache_fx"
	"gymstar/cmd/fx/payment_service_fx"
	"gymstar/internal/api/controllers"
	"gymstar/internal/config"
	"gymstar/internal/models/db_models"
	"gymstar/pkg/middleware"
	"gymstar/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		membership_fx.Module,
		payment_service_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	tokens *utils.TokenIssuer,
	accountController *controllers.AccountController,
	membershipController *controllers.MembershipController,
	adminMembershipController *controllers.AdminMembershipController,
	paymentController *controllers.PaymentController,
	subscriptionController *controllers.SubscriptionController,
	dashboardController *controllers.DashboardController) *gin.Engine {

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	RegisterRoutes(r, tokens,
		accountController,
		membershipController,
		adminMembershipController,
		paymentController,
		subscriptionController,
		dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	tokens *utils.TokenIssuer,
	accountController *controllers.AccountController,
	membershipController *controllers.MembershipController,
	adminMembershipController *controllers.AdminMembershipController,
	paymentController *controllers.PaymentController,
	subscriptionController *controllers.SubscriptionController,
	dashboardController *controllers.DashboardController) {

	auth := middleware.JWTAuthMiddleware(tokens)
	adminOnly := middleware.RoleMiddleware(string(db_models.RoleAdmin))
	customerOnly := middleware.RoleMiddleware(string(db_models.RoleCustomer))

	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "OK")
	})

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", accountController.Register)
	accountGroup.POST("/login", accountController.Login)
	accountGroup.GET("/profile", auth, accountController.Profile)
	accountGroup.PUT("/change-password", auth, accountController.ChangePassword)

	membershipGroup := r.Group("/memberships")
	membershipGroup.GET("", membershipController.ListMemberships)
	membershipGroup.GET("/me", auth, membershipController.MyMemberships)
	membershipGroup.GET("/:id", membershipController.GetMembership)

	subscriptionGroup := r.Group("/subscriptions", auth)
	subscriptionGroup.GET("/me", subscriptionController.MySubscriptions)

	paymentGroup := r.Group("/payments", auth)
	paymentGroup.POST("/checkout", customerOnly, paymentController.CreateCheckout)
	paymentGroup.POST("/complete", paymentController.CompletePayment)
	paymentGroup.GET("/complete", paymentController.CompletePayment)

	adminGroup := r.Group("/admin", auth, adminOnly)
	adminGroup.GET("/memberships", adminMembershipController.ListPlans)
	adminGroup.POST("/memberships", adminMembershipController.CreatePlan)
	adminGroup.PUT("/memberships/:id", adminMembershipController.UpdatePlan)
	adminGroup.PUT("/memberships/:id/info", adminMembershipController.UpsertPlanInfo)

	dashboardGroup := r.Group("/dashboard", auth, adminOnly)
	dashboardGroup.GET("/summary", dashboardController.GetSummary)
	dashboardGroup.GET("/revenue", dashboardController.GetRevenue)
	dashboardGroup.GET("/revenue/days", dashboardController.GetRevenueForDays)
	dashboardGroup.GET("/revenue/range", dashboardController.GetRevenueForRange)
}
