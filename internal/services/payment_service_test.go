package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

func newWebhookService(t *testing.T, s *testStack) PaymentServiceInterface {
	t.Helper()

	// WebhookID left empty so signature verification is skipped in tests.
	svc, err := NewPaymentService(PayPalConfig{
		ClientID:         "test-client",
		ClientSecret:     "test-secret",
		APIBase:          "https://api.sandbox.paypal.com",
		Currency:         "BRL",
		CreditPriceCents: 100,
	}, repositories.NewPaymentRepository(s.db), s.creditRepo, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func postWebhook(svc PaymentServiceInterface, payload string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks/paypal", bytes.NewBufferString(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	svc.HandleWebhook(c)
	return w
}

func TestWebhookCaptureCompletedCreditsOnce(t *testing.T) {
	s := newTestStack(t)
	svc := newWebhookService(t, s)
	ctx := context.Background()

	user := createUser(t, s.db, "buyer@example.com")
	_, err := s.creditRepo.EnsureAccount(ctx, user.ID)
	require.NoError(t, err)

	txn := &db_models.PayPalTransaction{
		UserID:        user.ID,
		PayPalOrderID: "ORDER-1",
		Amount:        "5.00",
		Currency:      "BRL",
		Credits:       5,
		Status:        db_models.PayPalApproved,
	}
	require.NoError(t, s.db.Create(txn).Error)

	payload := `{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"id":"CAP-1","supplementary_data":{"related_ids":{"order_id":"ORDER-1"}}}}`
	w := postWebhook(svc, payload)
	assert.Equal(t, http.StatusOK, w.Code)

	balance, err := s.creditRepo.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, balance)

	// Replayed event must not credit again.
	w = postWebhook(svc, payload)
	assert.Equal(t, http.StatusOK, w.Code)
	balance, err = s.creditRepo.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, balance)

	var stored db_models.PayPalTransaction
	require.NoError(t, s.db.First(&stored, "pay_pal_order_id = ?", "ORDER-1").Error)
	assert.Equal(t, db_models.PayPalCompleted, stored.Status)

	var ledger db_models.CreditTransaction
	require.NoError(t, s.db.First(&ledger, "user_id = ?", user.ID).Error)
	assert.Equal(t, "paypal", ledger.PaymentMethod)
	assert.Equal(t, "ORDER-1", ledger.ExternalTransactionID)
}

func TestWebhookOrderApproved(t *testing.T) {
	s := newTestStack(t)
	svc := newWebhookService(t, s)

	user := createUser(t, s.db, "buyer@example.com")
	txn := &db_models.PayPalTransaction{
		UserID:        user.ID,
		PayPalOrderID: "ORDER-2",
		Amount:        "1.00",
		Currency:      "BRL",
		Credits:       1,
		Status:        db_models.PayPalCreated,
	}
	require.NoError(t, s.db.Create(txn).Error)

	w := postWebhook(svc, `{"event_type":"CHECKOUT.ORDER.APPROVED","resource":{"id":"ORDER-2"}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored db_models.PayPalTransaction
	require.NoError(t, s.db.First(&stored, "pay_pal_order_id = ?", "ORDER-2").Error)
	assert.Equal(t, db_models.PayPalApproved, stored.Status)
}

func TestWebhookCaptureDeniedDoesNotDowngradeCompleted(t *testing.T) {
	s := newTestStack(t)
	svc := newWebhookService(t, s)

	user := createUser(t, s.db, "buyer@example.com")
	txn := &db_models.PayPalTransaction{
		UserID:        user.ID,
		PayPalOrderID: "ORDER-3",
		Amount:        "1.00",
		Currency:      "BRL",
		Credits:       1,
		Status:        db_models.PayPalCompleted,
	}
	require.NoError(t, s.db.Create(txn).Error)

	w := postWebhook(svc, `{"event_type":"PAYMENT.CAPTURE.DENIED","resource":{"id":"ORDER-3"}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored db_models.PayPalTransaction
	require.NoError(t, s.db.First(&stored, "pay_pal_order_id = ?", "ORDER-3").Error)
	assert.Equal(t, db_models.PayPalCompleted, stored.Status)
}

func TestWebhookUnknownOrderIsAcknowledged(t *testing.T) {
	s := newTestStack(t)
	svc := newWebhookService(t, s)

	w := postWebhook(svc, `{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"id":"NOPE"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMissingCredentialsDisableCheckout(t *testing.T) {
	s := newTestStack(t)

	svc, err := NewPaymentService(PayPalConfig{
		APIBase:          "https://api.sandbox.paypal.com",
		Currency:         "BRL",
		CreditPriceCents: 100,
	}, repositories.NewPaymentRepository(s.db), s.creditRepo, zap.NewNop())
	require.NoError(t, err, "missing credentials must not prevent construction")

	user := createUser(t, s.db, "buyer@example.com")

	_, err = svc.CreateOrder(context.Background(), user.ID, 5)
	assert.ErrorIs(t, err, utils.ErrPaymentFailed)

	_, err = svc.CaptureOrder(context.Background(), user.ID, "ORDER-X")
	assert.ErrorIs(t, err, utils.ErrPaymentFailed)
}
