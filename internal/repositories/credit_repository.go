package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type CreditRepository interface {
	EnsureAccount(ctx context.Context, userID uint) (*db_models.Credit, error)
	GetBalance(ctx context.Context, userID uint) (int, error)
	// Deduct atomically decrements the balance and writes a usage ledger row.
	// Returns utils.ErrInsufficientCredits without side effects when the
	// balance is lower than amount.
	Deduct(ctx context.Context, userID uint, amount int, messageID uint, description string) (int, error)
	// Add increments the balance and writes a ledger row of the given type.
	// paymentMethod and externalRef are recorded on purchase rows and may be
	// empty for refunds.
	Add(ctx context.Context, userID uint, amount int, txType db_models.CreditTxType, messageID, paymentID *uint, description, paymentMethod, externalRef string) (int, error)
	ListTransactions(ctx context.Context, userID uint, page, pageSize int) ([]db_models.CreditTransaction, error)
}

type creditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) EnsureAccount(ctx context.Context, userID uint) (*db_models.Credit, error) {
	credit := db_models.Credit{UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&credit).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).First(&credit, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *creditRepository) GetBalance(ctx context.Context, userID uint) (int, error) {
	var credit db_models.Credit
	err := r.db.WithContext(ctx).First(&credit, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return credit.Balance, nil
}

func (r *creditRepository) Deduct(ctx context.Context, userID uint, amount int, messageID uint, description string) (int, error) {
	var balanceAfter int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.Credit{}).
			Where("user_id = ? AND balance >= ?", userID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrInsufficientCredits
		}

		var credit db_models.Credit
		if err := tx.First(&credit, "user_id = ?", userID).Error; err != nil {
			return err
		}
		balanceAfter = credit.Balance

		mid := messageID
		ledger := db_models.CreditTransaction{
			UserID:          userID,
			TransactionType: db_models.CreditTxUsage,
			Amount:          -amount,
			BalanceAfter:    balanceAfter,
			Description:     description,
			MessageID:       &mid,
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

func (r *creditRepository) Add(ctx context.Context, userID uint, amount int, txType db_models.CreditTxType, messageID, paymentID *uint, description, paymentMethod, externalRef string) (int, error) {
	var balanceAfter int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		credit := db_models.Credit{UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&credit).Error; err != nil {
			return err
		}
		res := tx.Model(&db_models.Credit{}).
			Where("user_id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}

		if err := tx.First(&credit, "user_id = ?", userID).Error; err != nil {
			return err
		}
		balanceAfter = credit.Balance

		ledger := db_models.CreditTransaction{
			UserID:                userID,
			TransactionType:       txType,
			Amount:                amount,
			BalanceAfter:          balanceAfter,
			Description:           description,
			MessageID:             messageID,
			PaymentID:             paymentID,
			PaymentMethod:         paymentMethod,
			ExternalTransactionID: externalRef,
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

func (r *creditRepository) ListTransactions(ctx context.Context, userID uint, page, pageSize int) ([]db_models.CreditTransaction, error) {
	var rows []db_models.CreditTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	return rows, err
}
