package db_models

// EmailVerificationToken is single use and expires 24h after creation.
type EmailVerificationToken struct {
	BaseModel
	UserID    uint   `gorm:"index"`
	Token     string `gorm:"size:128;uniqueIndex"`
	ExpiresAt int64
	UsedAt    *int64

	User User `gorm:"foreignKey:UserID"`
}

// PasswordResetToken is single use and expires 1h after creation.
type PasswordResetToken struct {
	BaseModel
	UserID    uint   `gorm:"index"`
	Token     string `gorm:"size:128;uniqueIndex"`
	ExpiresAt int64
	UsedAt    *int64

	User User `gorm:"foreignKey:UserID"`
}
