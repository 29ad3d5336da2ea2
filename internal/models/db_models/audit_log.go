package db_models

import "gorm.io/datatypes"

// AuditLog records security-relevant actions. UserID is nil for anonymous
// requests.
type AuditLog struct {
	BaseModel
	UserID    *uint          `gorm:"index"`
	Action    string         `gorm:"size:64;index"`
	Entity    string         `gorm:"size:64"`
	EntityID  *uint
	Details   datatypes.JSON `gorm:"type:json"`
	IPAddress string         `gorm:"size:64"`
}
