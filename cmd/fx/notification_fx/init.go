package notification_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/internal/services"
)

var Module = fx.Provide(
	provideNotificationRepo,
	provideQueueRepo,
	provideWhatsappService,
	providePushService,
	provideNotificationService,
)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideQueueRepo(db *gorm.DB) repositories.QueueRepository {
	return repositories.NewQueueRepository(db)
}

func provideWhatsappService(notificationRepo repositories.NotificationRepository, logger *zap.Logger) services.WhatsappServiceInterface {
	return services.NewWhatsappService(services.WhatsappGatewayConfigFromEnv(), notificationRepo, logger)
}

func providePushService(logger *zap.Logger) (services.PushServiceInterface, error) {
	return services.NewFCMPushService(context.Background(), logger)
}

func provideNotificationService(
	notificationRepo repositories.NotificationRepository,
	queueRepo repositories.QueueRepository,
	mailService services.MailServiceInterface,
	whatsappService services.WhatsappServiceInterface,
	pushService services.PushServiceInterface,
	logger *zap.Logger,
) services.NotificationServiceInterface {
	return services.NewNotificationService(notificationRepo, queueRepo, mailService, whatsappService, pushService, logger)
}
