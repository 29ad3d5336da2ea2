package alert_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/internal/services"
)

var Module = fx.Provide(
	provideFixedAlertRepo,
	provideMessageRepo,
	provideAlertService,
	provideMessageService,
)

func provideFixedAlertRepo(db *gorm.DB) repositories.FixedAlertRepository {
	return repositories.NewFixedAlertRepository(db)
}

func provideMessageRepo(db *gorm.DB) repositories.MessageRepository {
	return repositories.NewMessageRepository(db)
}

func provideAlertService(
	fixedAlertRepo repositories.FixedAlertRepository,
	vehicleRepo repositories.VehicleRepository,
	messageRepo repositories.MessageRepository,
	creditRepo repositories.CreditRepository,
	notifications services.NotificationServiceInterface,
	logger *zap.Logger,
) services.AlertServiceInterface {
	return services.NewAlertService(fixedAlertRepo, vehicleRepo, messageRepo, creditRepo, notifications, logger)
}

func provideMessageService(messageRepo repositories.MessageRepository, logger *zap.Logger) services.MessageServiceInterface {
	return services.NewMessageService(messageRepo, logger)
}
