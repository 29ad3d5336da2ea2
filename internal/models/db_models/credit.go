package db_models

type CreditTxType string

const (
	CreditTxPurchase CreditTxType = "purchase"
	CreditTxUsage    CreditTxType = "usage"
	CreditTxRefund   CreditTxType = "refund"
)

// Credit holds the current balance for a user. Every balance change also
// writes a CreditTransaction row in the same database transaction.
type Credit struct {
	BaseModel
	UserID  uint `gorm:"uniqueIndex"`
	Balance int  `gorm:"default:0"`

	User User `gorm:"foreignKey:UserID"`
}

type CreditTransaction struct {
	BaseModel
	UserID          uint         `gorm:"index"`
	TransactionType CreditTxType `gorm:"size:16"`
	Amount          int          // positive for purchase/refund, negative for usage
	BalanceAfter    int
	Description     string `gorm:"size:255"`
	MessageID       *uint  // set for usage and refund rows
	PaymentID       *uint  // set for purchase rows

	// Purchase rows record how they were paid and the gateway reference,
	// so the ledger can be reconciled without parsing Description.
	PaymentMethod         string `gorm:"size:32"`
	ExternalTransactionID string `gorm:"size:64;index"`

	User User `gorm:"foreignKey:UserID"`
}
