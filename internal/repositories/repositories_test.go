package repositories

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/infra"
	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *db_models.User {
	t.Helper()

	user := &db_models.User{
		Name:          "Test User",
		Email:         email,
		Phone:         "(11) 98765-4321",
		CNPJ:          "cnpj-" + email,
		PasswordHash:  "x",
		EmailVerified: true,
		Role:          db_models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func ctxT() context.Context {
	return context.Background()
}
