package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uint) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	Update(ctx context.Context, user *db_models.User) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	TouchLastSignedIn(ctx context.Context, userID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Update("email_verified", true).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

func (r *userRepository) TouchLastSignedIn(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Update("last_signed_in", time.Now().Unix()).Error
}
