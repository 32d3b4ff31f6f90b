package dashboard

import (
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"gymstar/internal/config"
	"gymstar/internal/repositories"
	"gymstar/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(dashboardRepo repositories.DashboardRepository, loc *time.Location, cfg *config.Config) services.DashboardService {
	return services.NewDashboardService(dashboardRepo, loc, cfg.Stripe.Currency)
}
