package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"gymstar/internal/config"
	"gymstar/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, log *zap.Logger) services.IMailService {
	if cfg.SMTP.Host == "" {
		log.Warn("SMTP host not configured, receipts will only be logged")
	}
	return services.NewMailService(cfg.SMTP, log)
}
