package repositories

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

func TestCreditDeductWritesLedgerRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	user := createTestUser(t, db, "deduct@example.com")

	_, err := repo.EnsureAccount(ctxT(), user.ID)
	require.NoError(t, err)
	_, err = repo.Add(ctxT(), user.ID, 5, db_models.CreditTxPurchase, nil, nil, "compra", "", "")
	require.NoError(t, err)

	after, err := repo.Deduct(ctxT(), user.ID, 2, 99, "envio")
	require.NoError(t, err)
	assert.Equal(t, 3, after)

	rows, err := repo.ListTransactions(ctxT(), user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var usage db_models.CreditTransaction
	for _, row := range rows {
		if row.TransactionType == db_models.CreditTxUsage {
			usage = row
		}
	}
	require.NotZero(t, usage.ID)
	assert.Equal(t, -2, usage.Amount)
	assert.Equal(t, 3, usage.BalanceAfter)
	require.NotNil(t, usage.MessageID)
	assert.Equal(t, uint(99), *usage.MessageID)
}

func TestCreditDeductNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	user := createTestUser(t, db, "negative@example.com")

	_, err := repo.EnsureAccount(ctxT(), user.ID)
	require.NoError(t, err)
	_, err = repo.Add(ctxT(), user.ID, 1, db_models.CreditTxPurchase, nil, nil, "compra", "", "")
	require.NoError(t, err)

	_, err = repo.Deduct(ctxT(), user.ID, 1, 1, "envio")
	require.NoError(t, err)

	_, err = repo.Deduct(ctxT(), user.ID, 1, 2, "envio")
	assert.ErrorIs(t, err, utils.ErrInsufficientCredits)

	balance, err := repo.GetBalance(ctxT(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	// The failed deduction must leave no ledger row behind.
	rows, err := repo.ListTransactions(ctxT(), user.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestConcurrentDeductionsAllowOnlyOne(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	user := createTestUser(t, db, "race@example.com")

	_, err := repo.EnsureAccount(ctxT(), user.ID)
	require.NoError(t, err)
	_, err = repo.Add(ctxT(), user.ID, 1, db_models.CreditTxPurchase, nil, nil, "compra", "", "")
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(messageID uint) {
			defer wg.Done()
			_, err := repo.Deduct(ctxT(), user.ID, 1, messageID, "envio")
			errs <- err
		}(uint(i + 1))
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, utils.ErrInsufficientCredits)
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	balance, err := repo.GetBalance(ctxT(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	rows, err := repo.ListTransactions(ctxT(), user.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCreditRefundRestoresBalance(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	user := createTestUser(t, db, "refund@example.com")

	_, err := repo.EnsureAccount(ctxT(), user.ID)
	require.NoError(t, err)
	_, err = repo.Add(ctxT(), user.ID, 2, db_models.CreditTxPurchase, nil, nil, "compra", "", "")
	require.NoError(t, err)
	_, err = repo.Deduct(ctxT(), user.ID, 1, 7, "envio")
	require.NoError(t, err)

	mid := uint(7)
	after, err := repo.Add(ctxT(), user.ID, 1, db_models.CreditTxRefund, &mid, nil, "estorno", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, after)
}

func TestEnsureAccountIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewCreditRepository(db)
	user := createTestUser(t, db, "ensure@example.com")

	first, err := repo.EnsureAccount(ctxT(), user.ID)
	require.NoError(t, err)
	second, err := repo.EnsureAccount(ctxT(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 0, second.Balance)
}
