package db_models

const (
	VehicleRoleOwner     = "owner"
	VehicleRoleSecondary = "secondary"
)

type Vehicle struct {
	BaseModel
	Plate string `gorm:"size:20;uniqueIndex"` // normalized, no hyphen
	Brand string `gorm:"size:100"`
	Model string `gorm:"size:100"`
	Color string `gorm:"size:50"`
	Year  int
}

// VehicleUser links a user to a vehicle as owner or secondary. Both roles
// receive alerts about the vehicle.
type VehicleUser struct {
	BaseModel
	UserID    uint   `gorm:"index:idx_vehicle_users_pair,unique"`
	VehicleID uint   `gorm:"index:idx_vehicle_users_pair,unique"`
	Role      string `gorm:"size:16"`

	User    User    `gorm:"foreignKey:UserID"`
	Vehicle Vehicle `gorm:"foreignKey:VehicleID"`
}
