package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/infra"
	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
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

func createUser(t *testing.T, db *gorm.DB, email string) *db_models.User {
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

func createVehicleFor(t *testing.T, db *gorm.DB, plate string, owner *db_models.User) *db_models.Vehicle {
	t.Helper()

	vehicle := &db_models.Vehicle{Plate: plate, Brand: "Fiat", Model: "Uno"}
	require.NoError(t, db.Create(vehicle).Error)
	require.NoError(t, db.Create(&db_models.VehicleUser{
		UserID:    owner.ID,
		VehicleID: vehicle.ID,
		Role:      db_models.VehicleRoleOwner,
	}).Error)
	return vehicle
}

func connectWhatsapp(t *testing.T, s *testStack, userID uint) {
	t.Helper()

	cfg, err := s.notificationRepo.GetWhatsappConfig(context.Background(), userID)
	require.NoError(t, err)
	cfg.State = db_models.WhatsappConnected
	require.NoError(t, s.notificationRepo.SaveWhatsappConfig(context.Background(), cfg))
}

// fakeMail records alert sends and can be told to fail.
type fakeMail struct {
	mu                sync.Mutex
	fail              bool
	alerts            []string
	verificationToken string
	resetToken        string
}

func (f *fakeMail) SendVerificationEmail(to, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verificationToken = token
	return nil
}

func (f *fakeMail) SendPasswordResetEmail(to, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetToken = token
	return nil
}

func (f *fakeMail) SendAlertEmail(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.alerts = append(f.alerts, to)
	return nil
}

type fakeWhatsapp struct {
	fail bool
	sent []string
}

func (f *fakeWhatsapp) SendMessage(_ context.Context, phone, _ string) error {
	if f.fail {
		return errors.New("gateway unavailable")
	}
	f.sent = append(f.sent, phone)
	return nil
}

func (f *fakeWhatsapp) Connect(context.Context, uint, string) (*db_models.WhatsappConfig, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeWhatsapp) Disconnect(context.Context, uint) error { return nil }
func (f *fakeWhatsapp) Status(context.Context, uint) (*db_models.WhatsappConfig, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeWhatsapp) ConfirmConnected(context.Context, uint, string) error { return nil }

type fakePush struct {
	fail bool
	sent []string
}

func (f *fakePush) SendToToken(_ context.Context, token, _, _ string, _ map[string]string) error {
	if f.fail {
		return errors.New("fcm unavailable")
	}
	f.sent = append(f.sent, token)
	return nil
}

type testStack struct {
	db       *gorm.DB
	mail     *fakeMail
	whatsapp *fakeWhatsapp
	push     *fakePush

	userRepo         repositories.UserRepository
	vehicleRepo      repositories.VehicleRepository
	fixedAlertRepo   repositories.FixedAlertRepository
	messageRepo      repositories.MessageRepository
	creditRepo       repositories.CreditRepository
	notificationRepo repositories.NotificationRepository

	notifications NotificationServiceInterface
	alerts        AlertServiceInterface
	messages      MessageServiceInterface
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db := newTestDB(t)
	log := zap.NewNop()

	s := &testStack{
		db:               db,
		mail:             &fakeMail{},
		whatsapp:         &fakeWhatsapp{},
		push:             &fakePush{},
		userRepo:         repositories.NewUserRepository(db),
		vehicleRepo:      repositories.NewVehicleRepository(db),
		fixedAlertRepo:   repositories.NewFixedAlertRepository(db),
		messageRepo:      repositories.NewMessageRepository(db),
		creditRepo:       repositories.NewCreditRepository(db),
		notificationRepo: repositories.NewNotificationRepository(db),
	}
	require.NoError(t, s.fixedAlertRepo.SeedDefaults(context.Background()))

	s.notifications = NewNotificationService(
		s.notificationRepo, repositories.NewQueueRepository(db),
		s.mail, s.whatsapp, s.push, log)
	s.alerts = NewAlertService(
		s.fixedAlertRepo, s.vehicleRepo, s.messageRepo, s.creditRepo, s.notifications, log)
	s.messages = NewMessageService(s.messageRepo, log)

	return s
}
