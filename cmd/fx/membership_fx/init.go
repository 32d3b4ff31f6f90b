package membership_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymstar/internal/config"
	"gymstar/internal/repositories"
	"gymstar/internal/services"
	mem "gymstar/pkg/memcache"
)

var Module = fx.Provide(
	providePlanRepo,
	provideSubscriptionRepo,
	providePlanService,
	provideEvaluator,
	provideMembershipService,
	provideSubscriptionService,
)

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func providePlanService(planRepo repositories.IPlanRepository, cache mem.CatalogCache, log *zap.Logger) services.PlanServiceInterface {
	return services.NewPlanService(planRepo, cache, log)
}

func provideEvaluator(cfg *config.Config) *services.SubscriptionEvaluator {
	return services.NewSubscriptionEvaluator(cfg.Business.MaxActiveSubscriptions)
}

func provideMembershipService(
	plans services.PlanServiceInterface,
	subRepo repositories.SubscriptionRepository,
	evaluator *services.SubscriptionEvaluator,
	loc *time.Location,
) services.MembershipService {
	return services.NewMembershipService(plans, subRepo, evaluator, loc)
}

func provideSubscriptionService(subRepo repositories.SubscriptionRepository) services.SubscriptionService {
	return services.NewSubscriptionService(subRepo)
}
