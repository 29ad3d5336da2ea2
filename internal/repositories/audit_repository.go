package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

type AuditRepository interface {
	Insert(ctx context.Context, entry *db_models.AuditLog) error
	List(ctx context.Context, page, pageSize int) ([]db_models.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, entry *db_models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, page, pageSize int) ([]db_models.AuditLog, error) {
	var rows []db_models.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	return rows, err
}
