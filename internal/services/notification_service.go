package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

// DispatchSummary reports per-channel delivery counts for one message.
type DispatchSummary struct {
	Recipients int
	Emails     int
	Whatsapps  int
	Pushes     int
	Failures   int
}

// AnyDelivered reports whether at least one channel reached one recipient.
func (d DispatchSummary) AnyDelivered() bool {
	return d.Emails+d.Whatsapps+d.Pushes > 0
}

type NotificationServiceInterface interface {
	// Dispatch fans a message out to every recipient over their enabled
	// channels. Channel failures are recorded and swallowed, dispatch never
	// aborts halfway.
	Dispatch(ctx context.Context, message *db_models.Message, vehicle *db_models.Vehicle, recipients []db_models.User) DispatchSummary

	GetPreferences(ctx context.Context, userID uint) (*db_models.NotificationPreference, error)
	UpdatePreferences(ctx context.Context, userID uint, req request_models.UpdatePreferencesRequest) (*db_models.NotificationPreference, error)
	RegisterPushToken(ctx context.Context, userID uint, req request_models.RegisterPushTokenRequest) error
	ListPushTokens(ctx context.Context, userID uint) ([]db_models.PushToken, error)
	RemovePushToken(ctx context.Context, userID uint, token string) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	queueRepo        repositories.QueueRepository
	mailService      MailServiceInterface
	whatsappService  WhatsappServiceInterface
	pushService      PushServiceInterface
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	queueRepo repositories.QueueRepository,
	mailService MailServiceInterface,
	whatsappService WhatsappServiceInterface,
	pushService PushServiceInterface,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
		queueRepo:        queueRepo,
		mailService:      mailService,
		whatsappService:  whatsappService,
		pushService:      pushService,
		logger:           logger,
	}
}

func (n *NotificationService) Dispatch(ctx context.Context, message *db_models.Message, vehicle *db_models.Vehicle, recipients []db_models.User) DispatchSummary {
	summary := DispatchSummary{Recipients: len(recipients)}

	subject := "Alerta sobre seu veículo " + utils.FormatPlate(vehicle.Plate)
	body := message.Content
	if message.FixedAlert != nil {
		subject = message.FixedAlert.Title
		body = utils.RenderPlate(message.FixedAlert.Message, vehicle.Plate)
	}

	for _, recipient := range recipients {
		prefs, err := n.notificationRepo.GetPreferences(ctx, recipient.ID)
		if err != nil {
			n.logger.Error("loading notification preferences",
				zap.Uint("user_id", recipient.ID), zap.Error(err))
			summary.Failures++
			continue
		}

		if prefs.EmailEnabled {
			n.dispatchEmail(ctx, &summary, recipient, subject, body)
		}
		if prefs.WhatsappEnabled && n.whatsappConnected(ctx, recipient.ID) {
			n.dispatchWhatsapp(ctx, &summary, recipient, subject, body)
		}
		if prefs.PushEnabled {
			n.dispatchPush(ctx, &summary, recipient, message, subject, body)
		}
	}
	return summary
}

func (n *NotificationService) dispatchEmail(ctx context.Context, summary *DispatchSummary, recipient db_models.User, subject, body string) {
	item := db_models.EmailQueueItem{
		RecipientID: recipient.ID,
		ToAddress:   recipient.Email,
		Subject:     subject,
		Body:        body,
		Status:      db_models.QueuePending,
	}
	if err := n.queueRepo.InsertEmail(ctx, &item); err != nil {
		n.logger.Error("enqueueing email", zap.Error(err))
	}

	if err := n.mailService.SendAlertEmail(recipient.Email, subject, body); err != nil {
		n.logger.Warn("email delivery failed",
			zap.Uint("user_id", recipient.ID), zap.Error(err))
		summary.Failures++
		_ = n.queueRepo.MarkEmailFailed(ctx, item.ID, err.Error())
		return
	}
	summary.Emails++
	_ = n.queueRepo.MarkEmailSent(ctx, item.ID)
}

// whatsappConnected reports whether the recipient has a paired session.
// Sends to unpaired users are skipped silently, not counted as failures.
func (n *NotificationService) whatsappConnected(ctx context.Context, userID uint) bool {
	cfg, err := n.notificationRepo.GetWhatsappConfig(ctx, userID)
	if err != nil {
		n.logger.Error("loading whatsapp config", zap.Uint("user_id", userID), zap.Error(err))
		return false
	}
	return cfg.State == db_models.WhatsappConnected
}

func (n *NotificationService) dispatchWhatsapp(ctx context.Context, summary *DispatchSummary, recipient db_models.User, subject, body string) {
	text := subject + "\n\n" + body
	item := db_models.WhatsappQueueItem{
		RecipientID: recipient.ID,
		ToPhone:     recipient.Phone,
		Body:        text,
		Status:      db_models.QueuePending,
	}
	if err := n.queueRepo.InsertWhatsapp(ctx, &item); err != nil {
		n.logger.Error("enqueueing whatsapp message", zap.Error(err))
	}

	if err := n.whatsappService.SendMessage(ctx, recipient.Phone, text); err != nil {
		n.logger.Warn("whatsapp delivery failed",
			zap.Uint("user_id", recipient.ID), zap.Error(err))
		summary.Failures++
		_ = n.queueRepo.MarkWhatsappFailed(ctx, item.ID, err.Error())
		return
	}
	summary.Whatsapps++
	_ = n.queueRepo.MarkWhatsappSent(ctx, item.ID)
}

func (n *NotificationService) dispatchPush(ctx context.Context, summary *DispatchSummary, recipient db_models.User, message *db_models.Message, subject, body string) {
	tokens, err := n.notificationRepo.ListPushTokens(ctx, recipient.ID)
	if err != nil {
		n.logger.Error("listing push tokens",
			zap.Uint("user_id", recipient.ID), zap.Error(err))
		summary.Failures++
		return
	}
	if len(tokens) == 0 {
		return
	}

	data := map[string]string{
		"message_id": utils.UintToString(message.ID),
		"type":       string(message.MessageType),
	}

	delivered := false
	for _, token := range tokens {
		if err := n.pushService.SendToToken(ctx, token.Token, subject, body, data); err != nil {
			continue
		}
		delivered = true
	}
	if delivered {
		summary.Pushes++
	} else {
		summary.Failures++
	}
}

func (n *NotificationService) GetPreferences(ctx context.Context, userID uint) (*db_models.NotificationPreference, error) {
	prefs, err := n.notificationRepo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return prefs, nil
}

func (n *NotificationService) UpdatePreferences(ctx context.Context, userID uint, req request_models.UpdatePreferencesRequest) (*db_models.NotificationPreference, error) {
	prefs, err := n.notificationRepo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if req.EmailEnabled != nil {
		prefs.EmailEnabled = *req.EmailEnabled
	}
	if req.WhatsappEnabled != nil {
		prefs.WhatsappEnabled = *req.WhatsappEnabled
	}
	if req.PushEnabled != nil {
		prefs.PushEnabled = *req.PushEnabled
	}

	if err := n.notificationRepo.UpdatePreferences(ctx, prefs); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return prefs, nil
}

func (n *NotificationService) RegisterPushToken(ctx context.Context, userID uint, req request_models.RegisterPushTokenRequest) error {
	token := db_models.PushToken{
		UserID:     userID,
		Token:      req.Token,
		Platform:   db_models.PushPlatform(req.Platform),
		DeviceName: req.DeviceName,
	}
	if err := n.notificationRepo.UpsertPushToken(ctx, &token); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (n *NotificationService) ListPushTokens(ctx context.Context, userID uint) ([]db_models.PushToken, error) {
	tokens, err := n.notificationRepo.ListPushTokens(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return tokens, nil
}

func (n *NotificationService) RemovePushToken(ctx context.Context, userID uint, token string) error {
	if err := n.notificationRepo.DeactivatePushToken(ctx, userID, token); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
