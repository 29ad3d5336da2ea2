package payment_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/internal/services"
)

var Module = fx.Provide(
	providePaymentRepo,
	providePaymentService,
)

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepository {
	return repositories.NewPaymentRepository(db)
}

func providePaymentService(
	paymentRepo repositories.PaymentRepository,
	creditRepo repositories.CreditRepository,
	logger *zap.Logger,
) (services.PaymentServiceInterface, error) {
	return services.NewPaymentService(services.PayPalConfigFromEnv(), paymentRepo, creditRepo, logger)
}
