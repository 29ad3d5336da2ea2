package db_models

// NotificationPreference stores per-user channel toggles. Rows are created
// lazily with email and push enabled, whatsapp disabled.
type NotificationPreference struct {
	BaseModel
	UserID          uint `gorm:"uniqueIndex"`
	EmailEnabled    bool `gorm:"default:true"`
	WhatsappEnabled bool `gorm:"default:false"`
	PushEnabled     bool `gorm:"default:true"`

	User User `gorm:"foreignKey:UserID"`
}

type PushPlatform string

const (
	PushPlatformAndroid PushPlatform = "android"
	PushPlatformIOS     PushPlatform = "ios"
	PushPlatformWeb     PushPlatform = "web"
)

// PushToken is deactivated rather than deleted when the user removes a
// device, so the registration history survives. Re-registering a token
// reactivates it.
type PushToken struct {
	BaseModel
	UserID     uint         `gorm:"index"`
	Token      string       `gorm:"size:512;uniqueIndex"`
	Platform   PushPlatform `gorm:"size:16"`
	DeviceName string       `gorm:"size:100"`
	Active     bool         `gorm:"default:true"`

	User User `gorm:"foreignKey:UserID"`
}

type WhatsappState string

const (
	WhatsappDisconnected WhatsappState = "disconnected"
	WhatsappConnecting   WhatsappState = "connecting"
	WhatsappConnected    WhatsappState = "connected"
	WhatsappError        WhatsappState = "error"
)

// WhatsappConfig tracks a user's gateway session. QRCode is only populated
// while the session is in the connecting state.
type WhatsappConfig struct {
	BaseModel
	UserID          uint          `gorm:"uniqueIndex"`
	PhoneNumber     string        `gorm:"size:20"`
	State           WhatsappState `gorm:"size:16;default:disconnected"`
	QRCode          string        `gorm:"type:text"`
	SessionData     string        `gorm:"type:text"`
	LastConnectedAt *int64

	User User `gorm:"foreignKey:UserID"`
}
