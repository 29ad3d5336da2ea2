package db_models

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	BaseModel
	Name          string `gorm:"size:255"`
	Email         string `gorm:"size:320;uniqueIndex"`
	Phone         string `gorm:"size:20"`
	CNPJ          string `gorm:"column:cnpj;size:18;uniqueIndex"` // XX.XXX.XXX/XXXX-XX
	PasswordHash  string
	EmailVerified bool   `gorm:"default:false"`
	Role          string `gorm:"size:16;default:user"`
	LastSignedIn  int64
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
