package db_models

type QueueStatus string

const (
	QueuePending QueueStatus = "pending"
	QueueSent    QueueStatus = "sent"
	QueueFailed  QueueStatus = "failed"
)

// EmailQueueItem records an outbound email attempt for auditing and retry.
type EmailQueueItem struct {
	BaseModel
	RecipientID   uint        `gorm:"index"`
	ToAddress     string      `gorm:"size:320"`
	Subject       string      `gorm:"size:255"`
	Body          string      `gorm:"type:text"`
	Status        QueueStatus `gorm:"size:16;default:pending;index"`
	Attempts      int         `gorm:"default:0"`
	FailureReason string      `gorm:"size:512"`
	SentAt        *int64
}

type WhatsappQueueItem struct {
	BaseModel
	RecipientID   uint        `gorm:"index"`
	ToPhone       string      `gorm:"size:32"`
	Body          string      `gorm:"type:text"`
	Status        QueueStatus `gorm:"size:16;default:pending;index"`
	Attempts      int         `gorm:"default:0"`
	FailureReason string      `gorm:"size:512"`
	SentAt        *int64
}
