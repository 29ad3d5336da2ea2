package response_models

type FixedAlertResponse struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

type MessageResponse struct {
	ID          uint               `json:"id"`
	Plate       string             `json:"plate"`
	MessageType string             `json:"message_type"`
	Content     string             `json:"content"`
	CreditsUsed int                `json:"credits_used"`
	Status      string             `json:"status"`
	ReadAt      *int64             `json:"read_at,omitempty"`
	CreatedAt   int64              `json:"created_at"`
	Reactions   []ReactionResponse `json:"reactions,omitempty"`
}

type ReactionResponse struct {
	UserID       uint   `json:"user_id"`
	ReactionType string `json:"reaction_type"`
	CreatedAt    int64  `json:"created_at"`
}

type SendAlertResponse struct {
	MessageID   uint   `json:"message_id"`
	Status      string `json:"status"`
	CreditsUsed int    `json:"credits_used"`
	Balance     int    `json:"balance"`
}

type ReactionToggleResponse struct {
	MessageID    uint   `json:"message_id"`
	ReactionType string `json:"reaction_type"`
	Action       string `json:"action"` // added or removed
}
