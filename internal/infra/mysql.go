package infra

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

func InitMySQL() (*gorm.DB, error) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("MYSQL_DSN is not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to mysql: %w", err)
	}
	return db, nil
}

func CloseMySQL(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.User{},
		&db_models.Vehicle{},
		&db_models.VehicleUser{},
		&db_models.FixedAlert{},
		&db_models.Message{},
		&db_models.MessageRecipient{},
		&db_models.MessageReaction{},
		&db_models.Credit{},
		&db_models.CreditTransaction{},
		&db_models.NotificationPreference{},
		&db_models.PushToken{},
		&db_models.WhatsappConfig{},
		&db_models.EmailQueueItem{},
		&db_models.WhatsappQueueItem{},
		&db_models.AuditLog{},
		&db_models.EmailVerificationToken{},
		&db_models.PasswordResetToken{},
		&db_models.PayPalTransaction{},
	)
}
