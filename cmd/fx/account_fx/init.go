package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymstar/internal/repositories"
	"gymstar/internal/services"
	"gymstar/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	subRepo repositories.SubscriptionRepository,
	tokens *utils.TokenIssuer,
	log *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, subRepo, tokens, log)
}
