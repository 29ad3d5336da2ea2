package request_models

type SendFixedAlertRequest struct {
	Plate        string `json:"plate" binding:"required"`
	FixedAlertID uint   `json:"fixed_alert_id" binding:"required"`
}

type SendPersonalizedAlertRequest struct {
	Plate   string `json:"plate" binding:"required"`
	Content string `json:"content" binding:"required,min=1,max=500"`
}

type ReactionRequest struct {
	ReactionType string `json:"reaction_type" binding:"required"`
}

type UpsertFixedAlertRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Message string `json:"message" binding:"required,max=500"`
	Icon    string `json:"icon" binding:"omitempty,max=50"`
}
