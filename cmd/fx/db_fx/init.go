package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/infra"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Invoke(migrateAndSeed),
)

func provideDB() (*gorm.DB, error) {
	return infra.InitMySQL()
}

func migrateAndSeed(db *gorm.DB, fixedAlertRepo repositories.FixedAlertRepository) error {
	if err := infra.Migrate(db); err != nil {
		return err
	}
	return fixedAlertRepo.SeedDefaults(context.Background())
}
