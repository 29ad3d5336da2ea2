package credit_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/internal/services"
)

var Module = fx.Provide(
	provideCreditRepo,
	provideCreditService,
)

func provideCreditRepo(db *gorm.DB) repositories.CreditRepository {
	return repositories.NewCreditRepository(db)
}

func provideCreditService(creditRepo repositories.CreditRepository) services.CreditServiceInterface {
	return services.NewCreditService(creditRepo)
}
