package db_models

type MessageType string

const (
	MessageTypeFixed        MessageType = "fixed"
	MessageTypePersonalized MessageType = "personalized"
)

type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
	MessageStatusFailed    MessageStatus = "failed"
)

type ReactionType string

const (
	ReactionSeen     ReactionType = "seen"
	ReactionThankYou ReactionType = "thank_you"
	ReactionUrgent   ReactionType = "urgent"
	ReactionResolved ReactionType = "resolved"
	ReactionVehicle  ReactionType = "vehicle"
	ReactionLater    ReactionType = "later"
)

// Message is an alert sent to a vehicle, fixed or personalized. Fan-out to
// the vehicle's linked users lives in MessageRecipient rows.
type Message struct {
	BaseModel
	SenderID     *uint       `gorm:"index"` // nil for anonymous senders
	VehicleID    uint        `gorm:"index"`
	MessageType  MessageType `gorm:"size:16"`
	FixedAlertID *uint       // nil for personalized messages
	Content      string      `gorm:"type:text"` // empty for fixed messages
	CreditsUsed  int         `gorm:"default:0"`
	Status       MessageStatus `gorm:"size:16;default:sent;index"`
	ReadAt       *int64

	Sender     *User       `gorm:"foreignKey:SenderID"`
	Vehicle    Vehicle     `gorm:"foreignKey:VehicleID"`
	FixedAlert *FixedAlert `gorm:"foreignKey:FixedAlertID"`
	Recipients []MessageRecipient
	Reactions  []MessageReaction
}

type MessageRecipient struct {
	BaseModel
	MessageID   uint `gorm:"index:idx_message_recipients_pair,unique"`
	RecipientID uint `gorm:"index:idx_message_recipients_pair,unique"`
	ReadAt      *int64

	Recipient User `gorm:"foreignKey:RecipientID"`
}

type MessageReaction struct {
	BaseModel
	MessageID    uint         `gorm:"index:idx_message_reactions_triple,unique"`
	UserID       uint         `gorm:"index:idx_message_reactions_triple,unique"`
	ReactionType ReactionType `gorm:"size:16;index:idx_message_reactions_triple,unique"`

	User User `gorm:"foreignKey:UserID"`
}

// ValidReaction reports whether t is one of the supported reaction types.
func ValidReaction(t ReactionType) bool {
	switch t {
	case ReactionSeen, ReactionThankYou, ReactionUrgent, ReactionResolved, ReactionVehicle, ReactionLater:
		return true
	}
	return false
}
