package payment_service_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"gymstar/internal/config"
	"gymstar/internal/repositories"
	"gymstar/internal/services"
)

var Module = fx.Provide(
	provideGateway, providePaymentService,
)

func provideGateway(cfg *config.Config, log *zap.Logger) services.PaymentGateway {
	if cfg.Stripe.SecretKey == "" {
		log.Warn("Stripe secret key not configured, checkout calls will fail")
	}
	return services.NewStripeGateway(cfg.Stripe, log)
}

func providePaymentService(
	memberships services.MembershipService,
	subRepo repositories.SubscriptionRepository,
	accountRepo repositories.AccountRepository,
	gateway services.PaymentGateway,
	mail services.IMailService,
	cfg *config.Config,
	loc *time.Location,
	log *zap.Logger,
) services.PaymentService {
	return services.NewPaymentService(memberships, subRepo, accountRepo, gateway, mail, cfg, loc, log)
}
