package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

type PaymentRepository interface {
	Insert(ctx context.Context, tx *db_models.PayPalTransaction) error
	FindByOrderID(ctx context.Context, orderID string) (*db_models.PayPalTransaction, error)
	Update(ctx context.Context, tx *db_models.PayPalTransaction) error
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]db_models.PayPalTransaction, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Insert(ctx context.Context, tx *db_models.PayPalTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *paymentRepository) FindByOrderID(ctx context.Context, orderID string) (*db_models.PayPalTransaction, error) {
	var row db_models.PayPalTransaction
	err := r.db.WithContext(ctx).First(&row, "pay_pal_order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *paymentRepository) Update(ctx context.Context, tx *db_models.PayPalTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]db_models.PayPalTransaction, error) {
	var rows []db_models.PayPalTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	return rows, err
}
