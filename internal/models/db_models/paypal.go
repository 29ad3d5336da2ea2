package db_models

import "gorm.io/datatypes"

type PayPalStatus string

const (
	PayPalCreated   PayPalStatus = "created"
	PayPalApproved  PayPalStatus = "approved"
	PayPalCompleted PayPalStatus = "completed"
	PayPalCancelled PayPalStatus = "cancelled"
	PayPalFailed    PayPalStatus = "failed"
)

// PayPalTransaction links a PayPal order to the pending credit purchase it
// pays for. Status moves forward only, webhook replays are no-ops.
type PayPalTransaction struct {
	BaseModel
	UserID              uint   `gorm:"index"`
	CreditTransactionID *uint  `gorm:"index"`
	PayPalOrderID       string `gorm:"size:64;uniqueIndex"`
	PayerEmail          string `gorm:"size:320"`
	Amount              string `gorm:"size:32"` // decimal string as sent to PayPal
	Currency            string `gorm:"size:8"`
	Credits             int
	Status              PayPalStatus   `gorm:"size:16;default:created;index"`
	PayPalResponse      datatypes.JSON `gorm:"type:json"`

	User User `gorm:"foreignKey:UserID"`
}
