package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/response_models"
	"github.com/davidsodrelins/comunyCAR/internal/services"
	"github.com/davidsodrelins/comunyCAR/pkg/middleware"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type CreditController struct {
	creditService  services.CreditServiceInterface
	paymentService services.PaymentServiceInterface
	auditService   services.AuditServiceInterface
	logger         *zap.Logger
}

func NewCreditController(
	creditService services.CreditServiceInterface,
	paymentService services.PaymentServiceInterface,
	auditService services.AuditServiceInterface,
	logger *zap.Logger,
) *CreditController {
	return &CreditController{
		creditService:  creditService,
		paymentService: paymentService,
		auditService:   auditService,
		logger:         logger,
	}
}

// Balance godoc
// @Summary Get the current credit balance
// @Tags Credits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /credits/balance [get]
func (cc *CreditController) Balance(c *gin.Context) {
	balance, err := cc.creditService.GetBalance(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.BalanceResponse{Balance: balance}, "")
}

// Transactions godoc
// @Summary List the credit ledger
// @Tags Credits
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /credits/transactions [get]
func (cc *CreditController) Transactions(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, err := cc.creditService.ListTransactions(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}

	out := make([]response_models.CreditTransactionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, response_models.CreditTransactionResponse{
			ID:              row.ID,
			TransactionType: string(row.TransactionType),
			Amount:          row.Amount,
			BalanceAfter:    row.BalanceAfter,
			Description:     row.Description,
			PaymentMethod:   row.PaymentMethod,
			TransactionID:   row.ExternalTransactionID,
			CreatedAt:       row.CreatedAt,
		})
	}
	utils.RespondSuccess(c, out, "")
}

// Purchase godoc
// @Summary Buy credits settled outside PayPal
// @Description Direct grant for pix, boleto or manual top-ups
// @Tags Credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.PurchaseCreditsRequest true "Purchase payload"
// @Success 200 {object} utils.APIResponse
// @Router /credits/purchase [post]
func (cc *CreditController) Purchase(c *gin.Context) {
	var req request_models.PurchaseCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := middleware.CurrentUserID(c)
	balance, txnID, err := cc.creditService.Purchase(c.Request.Context(), userID, req.Amount, req.PaymentMethod)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}

	cc.auditService.Record(c.Request.Context(), &userID, "credit.purchased", "credit_transaction", nil,
		map[string]interface{}{"amount": req.Amount, "payment_method": req.PaymentMethod, "transaction_id": txnID}, c.ClientIP())

	utils.RespondSuccess(c, response_models.PurchaseResponse{
		Amount:        req.Amount,
		Balance:       balance,
		TransactionID: txnID,
	}, "Credits added")
}

// CreateOrder godoc
// @Summary Start a PayPal checkout for credits
// @Tags Credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreatePayPalOrderRequest true "Order payload"
// @Success 200 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /credits/orders [post]
func (cc *CreditController) CreateOrder(c *gin.Context) {
	var req request_models.CreatePayPalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := middleware.CurrentUserID(c)
	order, err := cc.paymentService.CreateOrder(c.Request.Context(), userID, req.Credits)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}

	cc.auditService.Record(c.Request.Context(), &userID, "payment.order_created", "paypal_transaction", nil,
		map[string]interface{}{"order_id": order.OrderID, "credits": order.Credits}, c.ClientIP())

	utils.RespondSuccess(c, order, "Order created")
}

// CaptureOrder godoc
// @Summary Capture an approved PayPal order
// @Tags Credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CapturePayPalOrderRequest true "Capture payload"
// @Success 200 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /credits/orders/capture [post]
func (cc *CreditController) CaptureOrder(c *gin.Context) {
	var req request_models.CapturePayPalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := middleware.CurrentUserID(c)
	result, err := cc.paymentService.CaptureOrder(c.Request.Context(), userID, req.OrderID)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}

	cc.auditService.Record(c.Request.Context(), &userID, "payment.order_captured", "paypal_transaction", nil,
		map[string]interface{}{"order_id": result.OrderID, "status": result.Status}, c.ClientIP())

	utils.RespondSuccess(c, result, "Payment captured")
}

// ListOrders godoc
// @Summary List PayPal purchase history
// @Tags Credits
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /credits/orders [get]
func (cc *CreditController) ListOrders(c *gin.Context) {
	page, pageSize := pagination(c)
	rows, err := cc.paymentService.ListPayments(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}

	out := make([]response_models.PaymentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, response_models.PaymentResponse{
			ID:        row.ID,
			OrderID:   row.PayPalOrderID,
			Amount:    row.Amount,
			Currency:  row.Currency,
			Credits:   row.Credits,
			Status:    string(row.Status),
			CreatedAt: row.CreatedAt,
		})
	}
	utils.RespondSuccess(c, out, "")
}

// Webhook godoc
// @Summary PayPal webhook endpoint
// @Tags Credits
// @Accept json
// @Produce json
// @Success 200
// @Router /webhooks/paypal [post]
func (cc *CreditController) Webhook(c *gin.Context) {
	cc.paymentService.HandleWebhook(c)
}
