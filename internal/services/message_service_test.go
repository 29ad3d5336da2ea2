package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

func sendTestAlert(t *testing.T, s *testStack, plate string) *db_models.Message {
	t.Helper()

	alerts, err := s.alerts.ListFixedAlerts(context.Background())
	require.NoError(t, err)

	message, _, err := s.alerts.SendFixed(context.Background(), nil, request_models.SendFixedAlertRequest{
		Plate:        plate,
		FixedAlertID: alerts[0].ID,
	})
	require.NoError(t, err)
	return message
}

func TestReactionToggle(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)
	message := sendTestAlert(t, s, "ABC1234")

	action, err := s.messages.React(ctx, owner.ID, message.ID, db_models.ReactionThankYou)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, action)

	// Same reaction again removes it.
	action, err = s.messages.React(ctx, owner.ID, message.ID, db_models.ReactionThankYou)
	require.NoError(t, err)
	assert.Equal(t, ReactionRemoved, action)

	reactions, err := s.messageRepo.ListReactions(ctx, message.ID)
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestSeenReactionMarksRead(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)
	message := sendTestAlert(t, s, "ABC1234")

	_, err := s.messages.React(ctx, owner.ID, message.ID, db_models.ReactionSeen)
	require.NoError(t, err)

	stored, err := s.messageRepo.FindByID(ctx, message.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.MessageStatusRead, stored.Status)
	assert.NotNil(t, stored.ReadAt)
}

func TestReactFromNonRecipientIsForbidden(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	stranger := createUser(t, s.db, "stranger@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)
	message := sendTestAlert(t, s, "ABC1234")

	_, err := s.messages.React(ctx, stranger.ID, message.ID, db_models.ReactionSeen)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestReactInvalidType(t *testing.T) {
	s := newTestStack(t)

	owner := createUser(t, s.db, "owner@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)
	message := sendTestAlert(t, s, "ABC1234")

	_, err := s.messages.React(context.Background(), owner.ID, message.ID, "applause")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestListReceivedAndSent(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	sender := createUser(t, s.db, "sender@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)

	_, err := s.creditRepo.EnsureAccount(ctx, sender.ID)
	require.NoError(t, err)
	_, err = s.creditRepo.Add(ctx, sender.ID, 1, db_models.CreditTxPurchase, nil, nil, "compra", "", "")
	require.NoError(t, err)

	_, _, _, err = s.alerts.SendPersonalized(ctx, sender.ID, request_models.SendPersonalizedAlertRequest{
		Plate:   "ABC1234",
		Content: "Farol aceso",
	})
	require.NoError(t, err)

	received, err := s.messages.ListReceived(ctx, owner.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "Farol aceso", received[0].Content)

	sent, err := s.messages.ListSent(ctx, sender.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, sent, 1)

	// The sender is not a recipient.
	receivedBySender, err := s.messages.ListReceived(ctx, sender.ID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, receivedBySender)
}

func TestGetDetailsAccess(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	sender := createUser(t, s.db, "sender@example.com")
	stranger := createUser(t, s.db, "stranger@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)

	_, err := s.creditRepo.EnsureAccount(ctx, sender.ID)
	require.NoError(t, err)
	_, err = s.creditRepo.Add(ctx, sender.ID, 1, db_models.CreditTxPurchase, nil, nil, "compra", "", "")
	require.NoError(t, err)

	message, _, _, err := s.alerts.SendPersonalized(ctx, sender.ID, request_models.SendPersonalizedAlertRequest{
		Plate:   "ABC1234",
		Content: "Porta aberta",
	})
	require.NoError(t, err)

	got, err := s.messages.GetDetails(ctx, owner.ID, message.ID)
	require.NoError(t, err)
	assert.Equal(t, "Porta aberta", got.Content)

	got, err = s.messages.GetDetails(ctx, sender.ID, message.ID)
	require.NoError(t, err)
	assert.Equal(t, message.ID, got.ID)

	_, err = s.messages.GetDetails(ctx, stranger.ID, message.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = s.messages.GetDetails(ctx, owner.ID, message.ID+1000)
	assert.ErrorIs(t, err, utils.ErrMessageNotFound)
}
