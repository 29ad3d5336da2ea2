package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type CreditServiceInterface interface {
	GetBalance(ctx context.Context, userID uint) (int, error)
	ListTransactions(ctx context.Context, userID uint, page, pageSize int) ([]db_models.CreditTransaction, error)
	// Purchase grants credits settled outside PayPal (pix, manual top-up).
	// Returns the new balance and the generated transaction reference.
	Purchase(ctx context.Context, userID uint, amount int, paymentMethod string) (int, string, error)
}

type CreditService struct {
	creditRepo repositories.CreditRepository
}

func NewCreditService(creditRepo repositories.CreditRepository) CreditServiceInterface {
	return &CreditService{creditRepo: creditRepo}
}

func (c *CreditService) GetBalance(ctx context.Context, userID uint) (int, error) {
	balance, err := c.creditRepo.GetBalance(ctx, userID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return balance, nil
}

func (c *CreditService) Purchase(ctx context.Context, userID uint, amount int, paymentMethod string) (int, string, error) {
	if amount < 1 || amount > 1000 {
		return 0, "", utils.ErrInvalidInput
	}

	txnID := "TXN-" + strings.ToUpper(uuid.NewString())
	description := fmt.Sprintf("Compra de créditos via %s", paymentMethod)
	balance, err := c.creditRepo.Add(ctx, userID, amount, db_models.CreditTxPurchase, nil, nil, description, paymentMethod, txnID)
	if err != nil {
		return 0, "", utils.ErrDatabaseError
	}
	return balance, txnID, nil
}

func (c *CreditService) ListTransactions(ctx context.Context, userID uint, page, pageSize int) ([]db_models.CreditTransaction, error) {
	rows, err := c.creditRepo.ListTransactions(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return rows, nil
}
