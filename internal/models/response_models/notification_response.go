package response_models

type PreferencesResponse struct {
	EmailEnabled    bool `json:"email_enabled"`
	WhatsappEnabled bool `json:"whatsapp_enabled"`
	PushEnabled     bool `json:"push_enabled"`
}

type PushTokenResponse struct {
	Token     string `json:"token"`
	Platform  string `json:"platform"`
	CreatedAt int64  `json:"created_at"`
}

type WhatsappStatusResponse struct {
	State           string `json:"state"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	QRCode          string `json:"qr_code,omitempty"`
	LastConnectedAt *int64 `json:"last_connected_at,omitempty"`
}
