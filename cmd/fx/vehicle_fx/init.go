package vehicle_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/internal/services"
)

var Module = fx.Provide(
	provideVehicleRepo,
	provideVehicleService,
)

func provideVehicleRepo(db *gorm.DB) repositories.VehicleRepository {
	return repositories.NewVehicleRepository(db)
}

func provideVehicleService(vehicleRepo repositories.VehicleRepository, userRepo repositories.UserRepository, logger *zap.Logger) services.VehicleServiceInterface {
	return services.NewVehicleService(vehicleRepo, userRepo, logger)
}
