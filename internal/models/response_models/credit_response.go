package response_models

type BalanceResponse struct {
	Balance int `json:"balance"`
}

type CreditTransactionResponse struct {
	ID              uint   `json:"id"`
	TransactionType string `json:"transaction_type"`
	Amount          int    `json:"amount"`
	BalanceAfter    int    `json:"balance_after"`
	Description     string `json:"description"`
	PaymentMethod   string `json:"payment_method,omitempty"`
	TransactionID   string `json:"transaction_id,omitempty"`
	CreatedAt       int64  `json:"created_at"`
}

type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	ApproveLink string `json:"approve_link"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Credits     int    `json:"credits"`
}

type PurchaseResponse struct {
	Amount        int    `json:"amount"`
	Balance       int    `json:"balance"`
	TransactionID string `json:"transaction_id"`
}

type PaymentResponse struct {
	ID        uint   `json:"id"`
	OrderID   string `json:"order_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Credits   int    `json:"credits"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type CaptureOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Balance int    `json:"balance"`
}
