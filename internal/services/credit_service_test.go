package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

func TestPurchaseGrantsCredits(t *testing.T) {
	s := newTestStack(t)
	svc := NewCreditService(s.creditRepo)
	ctx := context.Background()

	user := createUser(t, s.db, "buyer@example.com")

	balance, txnID, err := svc.Purchase(ctx, user.ID, 10, "pix")
	require.NoError(t, err)
	assert.Equal(t, 10, balance)
	assert.True(t, strings.HasPrefix(txnID, "TXN-"))

	rows, err := svc.ListTransactions(ctx, user.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, db_models.CreditTxPurchase, rows[0].TransactionType)
	assert.Equal(t, "pix", rows[0].PaymentMethod)
	assert.Equal(t, txnID, rows[0].ExternalTransactionID)
}

func TestPurchaseRejectsInvalidAmount(t *testing.T) {
	s := newTestStack(t)
	svc := NewCreditService(s.creditRepo)
	user := createUser(t, s.db, "buyer@example.com")

	_, _, err := svc.Purchase(context.Background(), user.ID, 0, "pix")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, _, err = svc.Purchase(context.Background(), user.ID, 1001, "pix")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
