package response_models

type VehicleResponse struct {
	ID    uint   `json:"id"`
	Plate string `json:"plate"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Color string `json:"color"`
	Year  int    `json:"year"`
	Role  string `json:"role"`
}

// VehicleLookupResponse is the public plate lookup payload. It carries no
// owner information.
type VehicleLookupResponse struct {
	Plate string `json:"plate"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Color string `json:"color"`
}

type VehicleUserResponse struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
