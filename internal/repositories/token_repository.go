package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type TokenRepository interface {
	InsertVerification(ctx context.Context, userID uint, token string, ttl time.Duration) error
	// ConsumeVerification validates and single-uses the token, returning the
	// owning user id.
	ConsumeVerification(ctx context.Context, token string) (uint, error)

	InsertReset(ctx context.Context, userID uint, token string, ttl time.Duration) error
	ConsumeReset(ctx context.Context, token string) (uint, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) InsertVerification(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	row := db_models.EmailVerificationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *tokenRepository) ConsumeVerification(ctx context.Context, token string) (uint, error) {
	var row db_models.EmailVerificationToken
	err := r.db.WithContext(ctx).First(&row, "token = ? AND used_at IS NULL", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, utils.ErrTokenNotFound
		}
		return 0, err
	}
	if row.ExpiresAt < time.Now().Unix() {
		return 0, utils.ErrTokenExpired
	}
	now := time.Now().Unix()
	err = r.db.WithContext(ctx).
		Model(&row).
		Update("used_at", now).Error
	if err != nil {
		return 0, err
	}
	return row.UserID, nil
}

func (r *tokenRepository) InsertReset(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	row := db_models.PasswordResetToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *tokenRepository) ConsumeReset(ctx context.Context, token string) (uint, error) {
	var row db_models.PasswordResetToken
	err := r.db.WithContext(ctx).First(&row, "token = ? AND used_at IS NULL", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, utils.ErrTokenNotFound
		}
		return 0, err
	}
	if row.ExpiresAt < time.Now().Unix() {
		return 0, utils.ErrTokenExpired
	}
	now := time.Now().Unix()
	err = r.db.WithContext(ctx).
		Model(&row).
		Update("used_at", now).Error
	if err != nil {
		return 0, err
	}
	return row.UserID, nil
}
