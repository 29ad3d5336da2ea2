package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plutov/paypal/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/response_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	APIBase      string // paypal.APIBaseSandBox or paypal.APIBaseLive
	WebhookID    string
	ReturnURL    string
	CancelURL    string
	Currency     string
	// CreditPriceCents is the unit price of one credit in currency cents.
	CreditPriceCents int
}

func PayPalConfigFromEnv() PayPalConfig {
	apiBase := paypal.APIBaseSandBox
	if os.Getenv("PAYPAL_MODE") == "live" {
		apiBase = paypal.APIBaseLive
	}
	price, _ := strconv.Atoi(os.Getenv("PAYPAL_CREDIT_PRICE_CENTS"))
	if price == 0 {
		price = 100
	}
	currency := os.Getenv("PAYPAL_CURRENCY")
	if currency == "" {
		currency = "BRL"
	}
	return PayPalConfig{
		ClientID:         os.Getenv("PAYPAL_CLIENT_ID"),
		ClientSecret:     os.Getenv("PAYPAL_CLIENT_SECRET"),
		APIBase:          apiBase,
		WebhookID:        os.Getenv("PAYPAL_WEBHOOK_ID"),
		ReturnURL:        os.Getenv("PAYPAL_RETURN_URL"),
		CancelURL:        os.Getenv("PAYPAL_CANCEL_URL"),
		Currency:         currency,
		CreditPriceCents: price,
	}
}

type PaymentServiceInterface interface {
	CreateOrder(ctx context.Context, userID uint, credits int) (*response_models.CreateOrderResponse, error)
	CaptureOrder(ctx context.Context, userID uint, orderID string) (*response_models.CaptureOrderResponse, error)
	HandleWebhook(c *gin.Context)
	ListPayments(ctx context.Context, userID uint, page, pageSize int) ([]db_models.PayPalTransaction, error)
}

type PaymentService struct {
	cfg         PayPalConfig
	client      *paypal.Client
	paymentRepo repositories.PaymentRepository
	creditRepo  repositories.CreditRepository
	logger      *zap.Logger
}

func NewPaymentService(
	cfg PayPalConfig,
	paymentRepo repositories.PaymentRepository,
	creditRepo repositories.CreditRepository,
	logger *zap.Logger,
) (PaymentServiceInterface, error) {
	svc := &PaymentService{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		creditRepo:  creditRepo,
		logger:      logger,
	}

	// Missing credentials disable checkout instead of preventing boot.
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		logger.Warn("PAYPAL_CLIENT_ID/PAYPAL_CLIENT_SECRET not set, PayPal checkout disabled")
		return svc, nil
	}

	client, err := paypal.NewClient(cfg.ClientID, cfg.ClientSecret, cfg.APIBase)
	if err != nil {
		return nil, fmt.Errorf("creating paypal client: %w", err)
	}
	svc.client = client
	return svc, nil
}

func (p *PaymentService) amountFor(credits int) string {
	cents := credits * p.cfg.CreditPriceCents
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func (p *PaymentService) CreateOrder(ctx context.Context, userID uint, credits int) (*response_models.CreateOrderResponse, error) {
	if p.client == nil {
		return nil, utils.ErrPaymentFailed
	}
	if credits <= 0 {
		return nil, utils.ErrInvalidInput
	}
	amount := p.amountFor(credits)

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				Amount: &paypal.PurchaseUnitAmount{
					Currency: p.cfg.Currency,
					Value:    amount,
				},
				Description: fmt.Sprintf("%d créditos comunyCAR", credits),
			},
		},
		nil,
		&paypal.ApplicationContext{
			ReturnURL: p.cfg.ReturnURL,
			CancelURL: p.cfg.CancelURL,
		})
	if err != nil {
		p.logger.Error("creating paypal order", zap.Error(err))
		return nil, utils.ErrPaymentFailed
	}

	raw, _ := json.Marshal(order)
	txn := &db_models.PayPalTransaction{
		UserID:         userID,
		PayPalOrderID:  order.ID,
		Amount:         amount,
		Currency:       p.cfg.Currency,
		Credits:        credits,
		Status:         db_models.PayPalCreated,
		PayPalResponse: datatypes.JSON(raw),
	}
	if err := p.paymentRepo.Insert(ctx, txn); err != nil {
		return nil, utils.ErrDatabaseError
	}

	approveLink := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approveLink = link.Href
			break
		}
	}

	return &response_models.CreateOrderResponse{
		OrderID:     order.ID,
		ApproveLink: approveLink,
		Amount:      amount,
		Currency:    p.cfg.Currency,
		Credits:     credits,
	}, nil
}

func (p *PaymentService) CaptureOrder(ctx context.Context, userID uint, orderID string) (*response_models.CaptureOrderResponse, error) {
	if p.client == nil {
		return nil, utils.ErrPaymentFailed
	}
	txn, err := p.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if txn == nil || txn.UserID != userID {
		return nil, utils.ErrPaymentFailed
	}
	if txn.Status == db_models.PayPalCompleted {
		balance, _ := p.creditRepo.GetBalance(ctx, userID)
		return &response_models.CaptureOrderResponse{
			OrderID: orderID,
			Status:  string(txn.Status),
			Balance: balance,
		}, nil
	}

	capture, err := p.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		p.logger.Error("capturing paypal order", zap.String("order_id", orderID), zap.Error(err))
		p.markFailed(ctx, txn, err.Error())
		return nil, utils.ErrPaymentFailed
	}
	if capture.Status != "COMPLETED" {
		p.markFailed(ctx, txn, "capture status "+capture.Status)
		return nil, utils.ErrPaymentFailed
	}

	if capture.Payer != nil {
		txn.PayerEmail = capture.Payer.EmailAddress
	}
	raw, _ := json.Marshal(capture)
	txn.PayPalResponse = datatypes.JSON(raw)

	balance, err := p.settleCompleted(ctx, txn)
	if err != nil {
		return nil, err
	}

	return &response_models.CaptureOrderResponse{
		OrderID: orderID,
		Status:  string(db_models.PayPalCompleted),
		Balance: balance,
	}, nil
}

// settleCompleted credits the purchase exactly once and moves the
// transaction to completed.
func (p *PaymentService) settleCompleted(ctx context.Context, txn *db_models.PayPalTransaction) (int, error) {
	if txn.Status == db_models.PayPalCompleted {
		return p.creditRepo.GetBalance(ctx, txn.UserID)
	}

	pid := txn.ID
	balance, err := p.creditRepo.Add(ctx, txn.UserID, txn.Credits, db_models.CreditTxPurchase, nil, &pid,
		fmt.Sprintf("compra de %d créditos via PayPal", txn.Credits), "paypal", txn.PayPalOrderID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	txn.Status = db_models.PayPalCompleted
	if err := p.paymentRepo.Update(ctx, txn); err != nil {
		return balance, utils.ErrDatabaseError
	}
	return balance, nil
}

func (p *PaymentService) markFailed(ctx context.Context, txn *db_models.PayPalTransaction, reason string) {
	if txn.Status == db_models.PayPalCompleted {
		return
	}
	txn.Status = db_models.PayPalFailed
	raw, _ := json.Marshal(map[string]string{"failure": reason})
	txn.PayPalResponse = datatypes.JSON(raw)
	if err := p.paymentRepo.Update(ctx, txn); err != nil {
		p.logger.Error("marking payment failed", zap.String("order_id", txn.PayPalOrderID), zap.Error(err))
	}
}

type paypalWebhookEvent struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Resource  struct {
		ID                string `json:"id"`
		Status            string `json:"status"`
		SupplementaryData struct {
			RelatedIDs struct {
				OrderID string `json:"order_id"`
			} `json:"related_ids"`
		} `json:"supplementary_data"`
	} `json:"resource"`
}

// HandleWebhook verifies the signature, then advances the matching
// transaction. Replayed events are no-ops.
func (p *PaymentService) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if p.cfg.WebhookID != "" {
		if p.client == nil {
			p.logger.Warn("paypal webhook received but checkout is disabled")
			c.Status(http.StatusOK)
			return
		}
		verify, err := p.client.VerifyWebhookSignature(ctx, c.Request, p.cfg.WebhookID)
		if err != nil || verify.VerificationStatus != "SUCCESS" {
			p.logger.Warn("paypal webhook signature rejected", zap.Error(err))
			c.Status(http.StatusUnauthorized)
			return
		}
	}

	var event paypalWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	orderID := event.Resource.ID
	if event.Resource.SupplementaryData.RelatedIDs.OrderID != "" {
		orderID = event.Resource.SupplementaryData.RelatedIDs.OrderID
	}

	txn, err := p.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if txn == nil {
		// Not ours, acknowledge so PayPal stops retrying.
		c.Status(http.StatusOK)
		return
	}

	switch event.EventType {
	case "CHECKOUT.ORDER.APPROVED":
		if txn.Status == db_models.PayPalCreated {
			txn.Status = db_models.PayPalApproved
			if err := p.paymentRepo.Update(ctx, txn); err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
		}
	case "CHECKOUT.ORDER.COMPLETED", "PAYMENT.CAPTURE.COMPLETED":
		if _, err := p.settleCompleted(ctx, txn); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	case "CHECKOUT.ORDER.CANCELLED":
		if txn.Status != db_models.PayPalCompleted {
			txn.Status = db_models.PayPalCancelled
			if err := p.paymentRepo.Update(ctx, txn); err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
		}
	case "PAYMENT.CAPTURE.DENIED":
		p.markFailed(ctx, txn, "capture denied")
	default:
		p.logger.Debug("ignoring paypal event", zap.String("event_type", event.EventType))
	}

	c.Status(http.StatusOK)
}

func (p *PaymentService) ListPayments(ctx context.Context, userID uint, page, pageSize int) ([]db_models.PayPalTransaction, error) {
	rows, err := p.paymentRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return rows, nil
}
