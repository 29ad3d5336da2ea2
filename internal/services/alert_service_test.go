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

func TestSendFixedIsFree(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)

	_, err := s.creditRepo.EnsureAccount(ctx, owner.ID)
	require.NoError(t, err)

	alerts, err := s.alerts.ListFixedAlerts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, alerts)

	// Anonymous sender.
	message, summary, err := s.alerts.SendFixed(ctx, nil, request_models.SendFixedAlertRequest{
		Plate:        "abc-1234",
		FixedAlertID: alerts[0].ID,
	})
	require.NoError(t, err)

	assert.Equal(t, db_models.MessageTypeFixed, message.MessageType)
	assert.Equal(t, 0, message.CreditsUsed)
	assert.Nil(t, message.SenderID)
	assert.Equal(t, 1, summary.Recipients)
	assert.Equal(t, 1, summary.Emails, "owner prefs default to email on")
	assert.Equal(t, 0, summary.Whatsapps, "whatsapp defaults to off")

	balance, err := s.creditRepo.GetBalance(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestSendFixedUnknownPlate(t *testing.T) {
	s := newTestStack(t)

	alerts, err := s.alerts.ListFixedAlerts(context.Background())
	require.NoError(t, err)

	_, _, err = s.alerts.SendFixed(context.Background(), nil, request_models.SendFixedAlertRequest{
		Plate:        "ZZZ9999",
		FixedAlertID: alerts[0].ID,
	})
	assert.ErrorIs(t, err, utils.ErrVehicleNotFound)
}

func TestSendPersonalizedDeductsOneCredit(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	sender := createUser(t, s.db, "sender@example.com")
	createVehicleFor(t, s.db, "ABC1D23", owner)

	_, err := s.creditRepo.EnsureAccount(ctx, sender.ID)
	require.NoError(t, err)
	_, err = s.creditRepo.Add(ctx, sender.ID, 3, db_models.CreditTxPurchase, nil, nil, "compra", "", "")
	require.NoError(t, err)

	message, summary, balance, err := s.alerts.SendPersonalized(ctx, sender.ID, request_models.SendPersonalizedAlertRequest{
		Plate:   "ABC1D23",
		Content: "Seu carro está bloqueando minha garagem",
	})
	require.NoError(t, err)

	assert.Equal(t, db_models.MessageTypePersonalized, message.MessageType)
	assert.Equal(t, PersonalizedAlertCost, message.CreditsUsed)
	assert.Equal(t, 2, balance)
	assert.True(t, summary.AnyDelivered())

	rows, err := s.creditRepo.ListTransactions(ctx, sender.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSendPersonalizedWithoutCredits(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	sender := createUser(t, s.db, "sender@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)

	_, err := s.creditRepo.EnsureAccount(ctx, sender.ID)
	require.NoError(t, err)

	_, _, _, err = s.alerts.SendPersonalized(ctx, sender.ID, request_models.SendPersonalizedAlertRequest{
		Plate:   "ABC1234",
		Content: "Oi",
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientCredits)

	// No message row may survive a rejected send.
	var count int64
	require.NoError(t, s.db.Model(&db_models.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSendPersonalizedRefundsOnTotalFailure(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	owner := createUser(t, s.db, "owner@example.com")
	sender := createUser(t, s.db, "sender@example.com")
	createVehicleFor(t, s.db, "ABC1234", owner)

	_, err := s.creditRepo.EnsureAccount(ctx, sender.ID)
	require.NoError(t, err)
	_, err = s.creditRepo.Add(ctx, sender.ID, 1, db_models.CreditTxPurchase, nil, nil, "compra", "", "")
	require.NoError(t, err)

	// Owner has defaults (email + push on, no push tokens registered), so a
	// failing mail sender means nothing is delivered.
	s.mail.fail = true
	s.push.fail = true

	message, summary, balance, err := s.alerts.SendPersonalized(ctx, sender.ID, request_models.SendPersonalizedAlertRequest{
		Plate:   "ABC1234",
		Content: "Alarme disparado",
	})
	require.NoError(t, err)

	assert.False(t, summary.AnyDelivered())
	assert.Equal(t, db_models.MessageStatusFailed, message.Status)
	assert.Equal(t, 1, balance, "credit refunded")

	rows, err := s.creditRepo.ListTransactions(ctx, sender.ID, 1, 10)
	require.NoError(t, err)

	var refunds int
	for _, row := range rows {
		if row.TransactionType == db_models.CreditTxRefund {
			refunds++
			require.NotNil(t, row.MessageID)
			assert.Equal(t, message.ID, *row.MessageID)
		}
	}
	assert.Equal(t, 1, refunds)
}

func TestFixedAlertAdminLifecycle(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	created, err := s.alerts.CreateFixedAlert(ctx, request_models.UpsertFixedAlertRequest{
		Title:   "Vidro Aberto",
		Message: "O veículo {{PLATE}} está com o vidro aberto.",
		Icon:    "window",
	})
	require.NoError(t, err)

	updated, err := s.alerts.UpdateFixedAlert(ctx, created.ID, request_models.UpsertFixedAlertRequest{
		Title:   "Vidro Aberto",
		Message: "O veículo {{PLATE}} está com um vidro aberto.",
		Icon:    "window",
	})
	require.NoError(t, err)
	assert.Contains(t, updated.Message, "um vidro")

	require.NoError(t, s.alerts.DeleteFixedAlert(ctx, created.ID))
	err = s.alerts.DeleteFixedAlert(ctx, created.ID)
	assert.ErrorIs(t, err, utils.ErrFixedAlertNotFound)
}
