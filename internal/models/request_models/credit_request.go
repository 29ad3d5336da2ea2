package request_models

type CreatePayPalOrderRequest struct {
	Credits int `json:"credits" binding:"required,min=1,max=1000"`
}

type CapturePayPalOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type PurchaseCreditsRequest struct {
	Amount        int    `json:"amount" binding:"required,min=1,max=1000"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=pix boleto manual"`
}
