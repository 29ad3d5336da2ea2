package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type AuditServiceInterface interface {
	// Record writes an audit entry. Failures are logged, never surfaced.
	Record(ctx context.Context, userID *uint, action, entity string, entityID *uint, details map[string]interface{}, ip string)
	List(ctx context.Context, page, pageSize int) ([]db_models.AuditLog, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepository
	logger    *zap.Logger
}

func NewAuditService(auditRepo repositories.AuditRepository, logger *zap.Logger) AuditServiceInterface {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (a *AuditService) Record(ctx context.Context, userID *uint, action, entity string, entityID *uint, details map[string]interface{}, ip string) {
	var payload datatypes.JSON
	if details != nil {
		raw, err := json.Marshal(details)
		if err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	entry := &db_models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   payload,
		IPAddress: ip,
	}
	if err := a.auditRepo.Insert(ctx, entry); err != nil {
		a.logger.Error("writing audit entry", zap.String("action", action), zap.Error(err))
	}
}

func (a *AuditService) List(ctx context.Context, page, pageSize int) ([]db_models.AuditLog, error) {
	rows, err := a.auditRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return rows, nil
}
