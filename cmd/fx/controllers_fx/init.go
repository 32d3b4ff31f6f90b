package controllers_fx

import (
	"go.uber.org/fx"

	"gymstar/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewMembershipController),
	fx.Provide(controllers.NewAdminMembershipController),
	fx.Provide(controllers.NewPaymentController),
	fx.Provide(controllers.NewSubscriptionController),
	fx.Provide(controllers.NewDashboardController))
