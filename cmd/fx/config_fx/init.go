package config_fx

import (
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"gymstar/internal/config"
	"gymstar/pkg/logger"
	"gymstar/pkg/utils"
)

var Module = fx.Provide(
	provideConfig, provideLogger, provideLocation, provideTokenIssuer)

func provideConfig() (*config.Config, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func provideLogger(lc fx.Lifecycle, cfg *config.Config) *zap.Logger {
	log := logger.New(logger.Options{
		Production: cfg.Log.Production,
		FilePath:   cfg.Log.File,
	})
	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log
}

func provideLocation(cfg *config.Config) *time.Location {
	return utils.LoadLocation(cfg.Business.Timezone)
}

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
}
