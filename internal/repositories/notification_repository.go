package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

type NotificationRepository interface {
	// GetPreferences lazily creates the row with default toggles.
	GetPreferences(ctx context.Context, userID uint) (*db_models.NotificationPreference, error)
	UpdatePreferences(ctx context.Context, prefs *db_models.NotificationPreference) error

	// UpsertPushToken reactivates a previously removed token.
	UpsertPushToken(ctx context.Context, token *db_models.PushToken) error
	DeactivatePushToken(ctx context.Context, userID uint, token string) error
	// ListPushTokens returns active tokens only.
	ListPushTokens(ctx context.Context, userID uint) ([]db_models.PushToken, error)

	GetWhatsappConfig(ctx context.Context, userID uint) (*db_models.WhatsappConfig, error)
	SaveWhatsappConfig(ctx context.Context, cfg *db_models.WhatsappConfig) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetPreferences(ctx context.Context, userID uint) (*db_models.NotificationPreference, error) {
	var prefs db_models.NotificationPreference
	err := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if err == nil {
		return &prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	prefs = db_models.NotificationPreference{
		UserID:          userID,
		EmailEnabled:    true,
		WhatsappEnabled: false,
		PushEnabled:     true,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&prefs).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *notificationRepository) UpdatePreferences(ctx context.Context, prefs *db_models.NotificationPreference) error {
	return r.db.WithContext(ctx).
		Model(&db_models.NotificationPreference{}).
		Where("user_id = ?", prefs.UserID).
		Updates(map[string]interface{}{
			"email_enabled":    prefs.EmailEnabled,
			"whatsapp_enabled": prefs.WhatsappEnabled,
			"push_enabled":     prefs.PushEnabled,
		}).Error
}

func (r *notificationRepository) UpsertPushToken(ctx context.Context, token *db_models.PushToken) error {
	token.Active = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "device_name", "active", "updated_at"}),
		}).
		Create(token).Error
}

func (r *notificationRepository) DeactivatePushToken(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.PushToken{}).
		Where("user_id = ? AND token = ?", userID, token).
		Update("active", false).Error
}

func (r *notificationRepository) ListPushTokens(ctx context.Context, userID uint) ([]db_models.PushToken, error) {
	var tokens []db_models.PushToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Find(&tokens).Error
	return tokens, err
}

func (r *notificationRepository) GetWhatsappConfig(ctx context.Context, userID uint) (*db_models.WhatsappConfig, error) {
	var cfg db_models.WhatsappConfig
	err := r.db.WithContext(ctx).First(&cfg, "user_id = ?", userID).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cfg = db_models.WhatsappConfig{UserID: userID, State: db_models.WhatsappDisconnected}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *notificationRepository) SaveWhatsappConfig(ctx context.Context, cfg *db_models.WhatsappConfig) error {
	if cfg.State == db_models.WhatsappConnected {
		now := time.Now().Unix()
		cfg.LastConnectedAt = &now
	}
	return r.db.WithContext(ctx).Save(cfg).Error
}
