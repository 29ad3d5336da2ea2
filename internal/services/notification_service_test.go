package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
)

func boolPtr(b bool) *bool { return &b }

func TestPreferencesCreatedLazilyWithDefaults(t *testing.T) {
	s := newTestStack(t)
	user := createUser(t, s.db, "prefs@example.com")

	prefs, err := s.notifications.GetPreferences(context.Background(), user.ID)
	require.NoError(t, err)

	assert.True(t, prefs.EmailEnabled)
	assert.True(t, prefs.PushEnabled)
	assert.False(t, prefs.WhatsappEnabled)
}

func TestUpdatePreferencesPartial(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := createUser(t, s.db, "prefs@example.com")

	prefs, err := s.notifications.UpdatePreferences(ctx, user.ID, request_models.UpdatePreferencesRequest{
		WhatsappEnabled: boolPtr(true),
	})
	require.NoError(t, err)

	assert.True(t, prefs.WhatsappEnabled)
	assert.True(t, prefs.EmailEnabled, "untouched fields keep their value")

	prefs, err = s.notifications.UpdatePreferences(ctx, user.ID, request_models.UpdatePreferencesRequest{
		EmailEnabled: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, prefs.EmailEnabled)
	assert.True(t, prefs.WhatsappEnabled)
}

func TestDispatchHonorsChannelToggles(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	vehicle := createVehicleFor(t, s.db, "ABC1234", owner)

	_, err := s.notifications.UpdatePreferences(ctx, owner.ID, request_models.UpdatePreferencesRequest{
		WhatsappEnabled: boolPtr(true),
	})
	require.NoError(t, err)
	connectWhatsapp(t, s, owner.ID)
	require.NoError(t, s.notifications.RegisterPushToken(ctx, owner.ID, request_models.RegisterPushTokenRequest{
		Token:    "device-1",
		Platform: "android",
	}))

	message := &db_models.Message{VehicleID: vehicle.ID, MessageType: db_models.MessageTypePersonalized, Content: "Oi"}
	require.NoError(t, s.db.Create(message).Error)

	summary := s.notifications.Dispatch(ctx, message, vehicle, []db_models.User{*owner})

	assert.Equal(t, 1, summary.Recipients)
	assert.Equal(t, 1, summary.Emails)
	assert.Equal(t, 1, summary.Whatsapps)
	assert.Equal(t, 1, summary.Pushes)
	assert.Zero(t, summary.Failures)
	assert.Equal(t, []string{"device-1"}, s.push.sent)
}

func TestDispatchSkipsUnpairedWhatsapp(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	vehicle := createVehicleFor(t, s.db, "ABC1234", owner)

	// Whatsapp enabled in preferences but the session was never paired.
	_, err := s.notifications.UpdatePreferences(ctx, owner.ID, request_models.UpdatePreferencesRequest{
		WhatsappEnabled: boolPtr(true),
	})
	require.NoError(t, err)

	message := &db_models.Message{VehicleID: vehicle.ID, MessageType: db_models.MessageTypePersonalized, Content: "Oi"}
	require.NoError(t, s.db.Create(message).Error)

	summary := s.notifications.Dispatch(ctx, message, vehicle, []db_models.User{*owner})

	assert.Zero(t, summary.Whatsapps)
	assert.Zero(t, summary.Failures)
	assert.Empty(t, s.whatsapp.sent)

	// The skip leaves no queue row behind either.
	var count int64
	require.NoError(t, s.db.Model(&db_models.WhatsappQueueItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDispatchSwallowsChannelFailures(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	vehicle := createVehicleFor(t, s.db, "ABC1234", owner)
	s.mail.fail = true

	message := &db_models.Message{VehicleID: vehicle.ID, MessageType: db_models.MessageTypePersonalized, Content: "Oi"}
	require.NoError(t, s.db.Create(message).Error)

	summary := s.notifications.Dispatch(ctx, message, vehicle, []db_models.User{*owner})

	assert.Equal(t, 0, summary.Emails)
	assert.Equal(t, 1, summary.Failures)
	assert.False(t, summary.AnyDelivered())

	// The failed attempt is recorded for auditing.
	var item db_models.EmailQueueItem
	require.NoError(t, s.db.First(&item, "recipient_id = ?", owner.ID).Error)
	assert.Equal(t, db_models.QueueFailed, item.Status)
	assert.Equal(t, 1, item.Attempts)
	assert.NotEmpty(t, item.FailureReason)
}

func TestDispatchRecordsSentQueueItems(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	vehicle := createVehicleFor(t, s.db, "ABC1234", owner)

	message := &db_models.Message{VehicleID: vehicle.ID, MessageType: db_models.MessageTypePersonalized, Content: "Oi"}
	require.NoError(t, s.db.Create(message).Error)

	s.notifications.Dispatch(ctx, message, vehicle, []db_models.User{*owner})

	var item db_models.EmailQueueItem
	require.NoError(t, s.db.First(&item, "recipient_id = ?", owner.ID).Error)
	assert.Equal(t, db_models.QueueSent, item.Status)
	assert.NotNil(t, item.SentAt)
}

func TestPushTokenLifecycle(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := createUser(t, s.db, "push@example.com")

	require.NoError(t, s.notifications.RegisterPushToken(ctx, user.ID, request_models.RegisterPushTokenRequest{
		Token:    "device-1",
		Platform: "ios",
	}))
	// Re-registering the same token is an upsert, not a duplicate.
	require.NoError(t, s.notifications.RegisterPushToken(ctx, user.ID, request_models.RegisterPushTokenRequest{
		Token:    "device-1",
		Platform: "android",
	}))

	tokens, err := s.notifications.ListPushTokens(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, db_models.PushPlatformAndroid, tokens[0].Platform)

	// Removal deactivates rather than deletes.
	require.NoError(t, s.notifications.RemovePushToken(ctx, user.ID, "device-1"))
	tokens, err = s.notificationRepo.ListPushTokens(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, tokens)

	var row db_models.PushToken
	require.NoError(t, s.db.First(&row, "token = ?", "device-1").Error)
	assert.False(t, row.Active)

	// Registering the same token again reactivates it.
	require.NoError(t, s.notifications.RegisterPushToken(ctx, user.ID, request_models.RegisterPushTokenRequest{
		Token:      "device-1",
		Platform:   "android",
		DeviceName: "Pixel",
	}))
	tokens, err = s.notifications.ListPushTokens(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].Active)
	assert.Equal(t, "Pixel", tokens[0].DeviceName)
}
