package request_models

type UpdatePreferencesRequest struct {
	EmailEnabled    *bool `json:"email_enabled"`
	WhatsappEnabled *bool `json:"whatsapp_enabled"`
	PushEnabled     *bool `json:"push_enabled"`
}

type RegisterPushTokenRequest struct {
	Token      string `json:"token" binding:"required"`
	Platform   string `json:"platform" binding:"required,oneof=android ios web"`
	DeviceName string `json:"device_name" binding:"omitempty,max=100"`
}

type WhatsappConnectRequest struct {
	PhoneNumber string `json:"phone_number" binding:"omitempty"`
}

type WhatsappCallbackRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	SessionData string `json:"session_data"`
}