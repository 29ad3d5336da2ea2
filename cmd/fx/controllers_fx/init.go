package controllers_fx

import (
	"go.uber.org/fx"

	"github.com/davidsodrelins/comunyCAR/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewVehicleController),
	fx.Provide(controllers.NewAlertController),
	fx.Provide(controllers.NewMessageController),
	fx.Provide(controllers.NewCreditController),
	fx.Provide(controllers.NewNotificationController),
	fx.Provide(controllers.NewAuditController),
)
