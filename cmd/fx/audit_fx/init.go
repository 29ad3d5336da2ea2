package audit_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/internal/services"
)

var Module = fx.Provide(
	provideAuditRepo,
	provideAuditService,
)

func provideAuditRepo(db *gorm.DB) repositories.AuditRepository {
	return repositories.NewAuditRepository(db)
}

func provideAuditService(auditRepo repositories.AuditRepository, logger *zap.Logger) services.AuditServiceInterface {
	return services.NewAuditService(auditRepo, logger)
}
