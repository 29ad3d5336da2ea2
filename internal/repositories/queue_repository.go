package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

type QueueRepository interface {
	InsertEmail(ctx context.Context, item *db_models.EmailQueueItem) error
	MarkEmailSent(ctx context.Context, id uint) error
	MarkEmailFailed(ctx context.Context, id uint, reason string) error

	InsertWhatsapp(ctx context.Context, item *db_models.WhatsappQueueItem) error
	MarkWhatsappSent(ctx context.Context, id uint) error
	MarkWhatsappFailed(ctx context.Context, id uint, reason string) error
}

type queueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) QueueRepository {
	return &queueRepository{db: db}
}

func (r *queueRepository) InsertEmail(ctx context.Context, item *db_models.EmailQueueItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *queueRepository) MarkEmailSent(ctx context.Context, id uint) error {
	now := time.Now().Unix()
	return r.db.WithContext(ctx).
		Model(&db_models.EmailQueueItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   db_models.QueueSent,
			"attempts": gorm.Expr("attempts + 1"),
			"sent_at":  now,
		}).Error
}

func (r *queueRepository) MarkEmailFailed(ctx context.Context, id uint, reason string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.EmailQueueItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         db_models.QueueFailed,
			"attempts":       gorm.Expr("attempts + 1"),
			"failure_reason": reason,
		}).Error
}

func (r *queueRepository) InsertWhatsapp(ctx context.Context, item *db_models.WhatsappQueueItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *queueRepository) MarkWhatsappSent(ctx context.Context, id uint) error {
	now := time.Now().Unix()
	return r.db.WithContext(ctx).
		Model(&db_models.WhatsappQueueItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   db_models.QueueSent,
			"attempts": gorm.Expr("attempts + 1"),
			"sent_at":  now,
		}).Error
}

func (r *queueRepository) MarkWhatsappFailed(ctx context.Context, id uint, reason string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.WhatsappQueueItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         db_models.QueueFailed,
			"attempts":       gorm.Expr("attempts + 1"),
			"failure_reason": reason,
		}).Error
}
