package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

// PersonalizedAlertCost is the credit price of one custom message.
const PersonalizedAlertCost = 1

type AlertServiceInterface interface {
	ListFixedAlerts(ctx context.Context) ([]db_models.FixedAlert, error)
	// SendFixed delivers a catalog alert to the vehicle's users. senderID is
	// nil for anonymous senders. Fixed alerts are free.
	SendFixed(ctx context.Context, senderID *uint, req request_models.SendFixedAlertRequest) (*db_models.Message, DispatchSummary, error)
	// SendPersonalized delivers a custom message, deducting credits from the
	// sender. Credits are refunded when no channel reaches anyone.
	SendPersonalized(ctx context.Context, senderID uint, req request_models.SendPersonalizedAlertRequest) (*db_models.Message, DispatchSummary, int, error)

	CreateFixedAlert(ctx context.Context, req request_models.UpsertFixedAlertRequest) (*db_models.FixedAlert, error)
	UpdateFixedAlert(ctx context.Context, id uint, req request_models.UpsertFixedAlertRequest) (*db_models.FixedAlert, error)
	DeleteFixedAlert(ctx context.Context, id uint) error
}

type AlertService struct {
	fixedAlertRepo repositories.FixedAlertRepository
	vehicleRepo    repositories.VehicleRepository
	messageRepo    repositories.MessageRepository
	creditRepo     repositories.CreditRepository
	notifications  NotificationServiceInterface
	logger         *zap.Logger
}

func NewAlertService(
	fixedAlertRepo repositories.FixedAlertRepository,
	vehicleRepo repositories.VehicleRepository,
	messageRepo repositories.MessageRepository,
	creditRepo repositories.CreditRepository,
	notifications NotificationServiceInterface,
	logger *zap.Logger,
) AlertServiceInterface {
	return &AlertService{
		fixedAlertRepo: fixedAlertRepo,
		vehicleRepo:    vehicleRepo,
		messageRepo:    messageRepo,
		creditRepo:     creditRepo,
		notifications:  notifications,
		logger:         logger,
	}
}

func (a *AlertService) ListFixedAlerts(ctx context.Context) ([]db_models.FixedAlert, error) {
	alerts, err := a.fixedAlertRepo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return alerts, nil
}

func (a *AlertService) SendFixed(ctx context.Context, senderID *uint, req request_models.SendFixedAlertRequest) (*db_models.Message, DispatchSummary, error) {
	vehicle, recipients, err := a.resolveTarget(ctx, req.Plate)
	if err != nil {
		return nil, DispatchSummary{}, err
	}

	alert, err := a.fixedAlertRepo.FindByID(ctx, req.FixedAlertID)
	if err != nil {
		return nil, DispatchSummary{}, utils.ErrDatabaseError
	}
	if alert == nil {
		return nil, DispatchSummary{}, utils.ErrFixedAlertNotFound
	}

	alertID := alert.ID
	message := &db_models.Message{
		SenderID:     senderID,
		VehicleID:    vehicle.ID,
		MessageType:  db_models.MessageTypeFixed,
		FixedAlertID: &alertID,
		CreditsUsed:  0,
		Status:       db_models.MessageStatusSent,
	}
	if err := a.messageRepo.Insert(ctx, message); err != nil {
		return nil, DispatchSummary{}, utils.ErrDatabaseError
	}
	if err := a.addRecipients(ctx, message.ID, recipients); err != nil {
		return nil, DispatchSummary{}, err
	}

	message.FixedAlert = alert
	summary := a.notifications.Dispatch(ctx, message, vehicle, recipients)
	a.settleStatus(ctx, message, summary)

	return message, summary, nil
}

func (a *AlertService) SendPersonalized(ctx context.Context, senderID uint, req request_models.SendPersonalizedAlertRequest) (*db_models.Message, DispatchSummary, int, error) {
	vehicle, recipients, err := a.resolveTarget(ctx, req.Plate)
	if err != nil {
		return nil, DispatchSummary{}, 0, err
	}

	balance, err := a.creditRepo.GetBalance(ctx, senderID)
	if err != nil {
		return nil, DispatchSummary{}, 0, utils.ErrDatabaseError
	}
	if balance < PersonalizedAlertCost {
		return nil, DispatchSummary{}, balance, utils.ErrInsufficientCredits
	}

	sid := senderID
	message := &db_models.Message{
		SenderID:    &sid,
		VehicleID:   vehicle.ID,
		MessageType: db_models.MessageTypePersonalized,
		Content:     req.Content,
		CreditsUsed: PersonalizedAlertCost,
		Status:      db_models.MessageStatusSent,
	}
	if err := a.messageRepo.Insert(ctx, message); err != nil {
		return nil, DispatchSummary{}, balance, utils.ErrDatabaseError
	}

	// The conditional decrement settles races lost since the balance check.
	balanceAfter, err := a.creditRepo.Deduct(ctx, senderID, PersonalizedAlertCost, message.ID, "envio de mensagem personalizada")
	if err != nil {
		if delErr := a.messageRepo.Delete(ctx, message.ID); delErr != nil {
			a.logger.Error("rolling back unpaid message", zap.Uint("message_id", message.ID), zap.Error(delErr))
		}
		return nil, DispatchSummary{}, balance, err
	}

	if err := a.addRecipients(ctx, message.ID, recipients); err != nil {
		return nil, DispatchSummary{}, balanceAfter, err
	}

	summary := a.notifications.Dispatch(ctx, message, vehicle, recipients)
	balanceAfter = a.settlePersonalized(ctx, message, summary, senderID, balanceAfter)

	return message, summary, balanceAfter, nil
}

func (a *AlertService) resolveTarget(ctx context.Context, rawPlate string) (*db_models.Vehicle, []db_models.User, error) {
	plate := utils.NormalizePlate(rawPlate)
	if !utils.IsValidPlate(plate) {
		return nil, nil, utils.ErrInvalidInput
	}

	vehicle, err := a.vehicleRepo.FindByPlate(ctx, plate)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if vehicle == nil {
		return nil, nil, utils.ErrVehicleNotFound
	}

	links, err := a.vehicleRepo.ListUsers(ctx, vehicle.ID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	recipients := make([]db_models.User, 0, len(links))
	for _, link := range links {
		recipients = append(recipients, link.User)
	}
	return vehicle, recipients, nil
}

func (a *AlertService) addRecipients(ctx context.Context, messageID uint, recipients []db_models.User) error {
	rows := make([]db_models.MessageRecipient, 0, len(recipients))
	for _, r := range recipients {
		rows = append(rows, db_models.MessageRecipient{MessageID: messageID, RecipientID: r.ID})
	}
	if err := a.messageRepo.AddRecipients(ctx, rows); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AlertService) settleStatus(ctx context.Context, message *db_models.Message, summary DispatchSummary) {
	if summary.Recipients == 0 || summary.AnyDelivered() {
		return
	}
	message.Status = db_models.MessageStatusFailed
	if err := a.messageRepo.UpdateStatus(ctx, message.ID, db_models.MessageStatusFailed); err != nil {
		a.logger.Error("marking message failed", zap.Uint("message_id", message.ID), zap.Error(err))
	}
}

// settlePersonalized refunds the sender when every channel failed for every
// recipient, returning the balance after settlement.
func (a *AlertService) settlePersonalized(ctx context.Context, message *db_models.Message, summary DispatchSummary, senderID uint, balance int) int {
	if summary.Recipients == 0 || summary.AnyDelivered() {
		return balance
	}

	a.settleStatus(ctx, message, summary)

	mid := message.ID
	refunded, err := a.creditRepo.Add(ctx, senderID, message.CreditsUsed, db_models.CreditTxRefund, &mid, nil, "estorno por falha de entrega", "", "")
	if err != nil {
		a.logger.Error("refunding credits", zap.Uint("message_id", message.ID), zap.Error(err))
		return balance
	}
	return refunded
}

func (a *AlertService) CreateFixedAlert(ctx context.Context, req request_models.UpsertFixedAlertRequest) (*db_models.FixedAlert, error) {
	alert := &db_models.FixedAlert{
		Title:   req.Title,
		Message: req.Message,
		Icon:    req.Icon,
	}
	if err := a.fixedAlertRepo.Insert(ctx, alert); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return alert, nil
}

func (a *AlertService) UpdateFixedAlert(ctx context.Context, id uint, req request_models.UpsertFixedAlertRequest) (*db_models.FixedAlert, error) {
	alert, err := a.fixedAlertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if alert == nil {
		return nil, utils.ErrFixedAlertNotFound
	}

	alert.Title = req.Title
	alert.Message = req.Message
	alert.Icon = req.Icon
	if err := a.fixedAlertRepo.Update(ctx, alert); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return alert, nil
}

func (a *AlertService) DeleteFixedAlert(ctx context.Context, id uint) error {
	alert, err := a.fixedAlertRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if alert == nil {
		return utils.ErrFixedAlertNotFound
	}
	if err := a.fixedAlertRepo.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
