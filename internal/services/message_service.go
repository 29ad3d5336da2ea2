package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

const (
	ReactionAdded   = "added"
	ReactionRemoved = "removed"
)

type MessageServiceInterface interface {
	ListReceived(ctx context.Context, userID uint, page, pageSize int) ([]db_models.Message, error)
	ListSent(ctx context.Context, userID uint, page, pageSize int) ([]db_models.Message, error)
	// React toggles a reaction: present removes it, absent adds it. The seen
	// reaction also marks the message read for this recipient.
	React(ctx context.Context, userID, messageID uint, reaction db_models.ReactionType) (string, error)
	MarkRead(ctx context.Context, userID, messageID uint) error
	// GetDetails returns a single message with its reactions. Only the sender
	// or a recipient may read it.
	GetDetails(ctx context.Context, userID, messageID uint) (*db_models.Message, error)
}

type MessageService struct {
	messageRepo repositories.MessageRepository
	logger      *zap.Logger
}

func NewMessageService(messageRepo repositories.MessageRepository, logger *zap.Logger) MessageServiceInterface {
	return &MessageService{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (m *MessageService) ListReceived(ctx context.Context, userID uint, page, pageSize int) ([]db_models.Message, error) {
	messages, err := m.messageRepo.ListReceived(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return messages, nil
}

func (m *MessageService) ListSent(ctx context.Context, userID uint, page, pageSize int) ([]db_models.Message, error) {
	messages, err := m.messageRepo.ListSent(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return messages, nil
}

func (m *MessageService) React(ctx context.Context, userID, messageID uint, reaction db_models.ReactionType) (string, error) {
	if !db_models.ValidReaction(reaction) {
		return "", utils.ErrInvalidInput
	}

	if err := m.requireRecipient(ctx, userID, messageID); err != nil {
		return "", err
	}

	existing, err := m.messageRepo.FindReaction(ctx, messageID, userID, reaction)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if existing != nil {
		if err := m.messageRepo.DeleteReaction(ctx, existing.ID); err != nil {
			return "", utils.ErrDatabaseError
		}
		return ReactionRemoved, nil
	}

	row := &db_models.MessageReaction{
		MessageID:    messageID,
		UserID:       userID,
		ReactionType: reaction,
	}
	if err := m.messageRepo.InsertReaction(ctx, row); err != nil {
		return "", utils.ErrDatabaseError
	}

	if reaction == db_models.ReactionSeen {
		if err := m.messageRepo.MarkRead(ctx, messageID, userID); err != nil {
			m.logger.Warn("marking message read",
				zap.Uint("message_id", messageID), zap.Error(err))
		}
	}
	return ReactionAdded, nil
}

func (m *MessageService) MarkRead(ctx context.Context, userID, messageID uint) error {
	if err := m.requireRecipient(ctx, userID, messageID); err != nil {
		return err
	}
	if err := m.messageRepo.MarkRead(ctx, messageID, userID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (m *MessageService) GetDetails(ctx context.Context, userID, messageID uint) (*db_models.Message, error) {
	message, err := m.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if message == nil {
		return nil, utils.ErrMessageNotFound
	}

	if message.SenderID != nil && *message.SenderID == userID {
		return message, nil
	}
	isRecipient, err := m.messageRepo.IsRecipient(ctx, messageID, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !isRecipient {
		return nil, utils.ErrForbidden
	}
	return message, nil
}

func (m *MessageService) requireRecipient(ctx context.Context, userID, messageID uint) error {
	message, err := m.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if message == nil {
		return utils.ErrMessageNotFound
	}

	isRecipient, err := m.messageRepo.IsRecipient(ctx, messageID, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !isRecipient {
		return utils.ErrForbidden
	}
	return nil
}
