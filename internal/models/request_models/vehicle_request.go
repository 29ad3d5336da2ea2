package request_models

type CreateVehicleRequest struct {
	Plate string `json:"plate" binding:"required"`
	Brand string `json:"brand" binding:"required,max=50"`
	Model string `json:"model" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,max=30"`
	Year  int    `json:"year" binding:"omitempty,min=1900,max=2100"`
}

type UpdateVehicleRequest struct {
	Brand string `json:"brand" binding:"omitempty,max=50"`
	Model string `json:"model" binding:"omitempty,max=50"`
	Color string `json:"color" binding:"omitempty,max=30"`
	Year  int    `json:"year" binding:"omitempty,min=1900,max=2100"`
}

type AddSecondaryUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}
