package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
)

type MessageRepository interface {
	Insert(ctx context.Context, message *db_models.Message) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*db_models.Message, error)
	UpdateStatus(ctx context.Context, messageID uint, status db_models.MessageStatus) error
	MarkRead(ctx context.Context, messageID, recipientID uint) error
	ListReceived(ctx context.Context, userID uint, page, pageSize int) ([]db_models.Message, error)
	ListSent(ctx context.Context, userID uint, page, pageSize int) ([]db_models.Message, error)
	AddRecipients(ctx context.Context, recipients []db_models.MessageRecipient) error
	IsRecipient(ctx context.Context, messageID, userID uint) (bool, error)

	FindReaction(ctx context.Context, messageID, userID uint, reaction db_models.ReactionType) (*db_models.MessageReaction, error)
	InsertReaction(ctx context.Context, reaction *db_models.MessageReaction) error
	DeleteReaction(ctx context.Context, id uint) error
	ListReactions(ctx context.Context, messageID uint) ([]db_models.MessageReaction, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Insert(ctx context.Context, message *db_models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&db_models.MessageRecipient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Message{}, id).Error
	})
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*db_models.Message, error) {
	var message db_models.Message
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("FixedAlert").
		Preload("Reactions").
		First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) UpdateStatus(ctx context.Context, messageID uint, status db_models.MessageStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Message{}).
		Where("id = ?", messageID).
		Update("status", status).Error
}

// MarkRead stamps both the per-recipient row and the message itself.
func (r *messageRepository) MarkRead(ctx context.Context, messageID, recipientID uint) error {
	now := time.Now().Unix()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.MessageRecipient{}).
			Where("message_id = ? AND recipient_id = ? AND read_at IS NULL", messageID, recipientID).
			Update("read_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.Message{}).
			Where("id = ? AND status <> ?", messageID, db_models.MessageStatusFailed).
			Updates(map[string]interface{}{"status": db_models.MessageStatusRead, "read_at": now}).Error
	})
}

func (r *messageRepository) ListReceived(ctx context.Context, userID uint, page, pageSize int) ([]db_models.Message, error) {
	var messages []db_models.Message
	err := r.db.WithContext(ctx).
		Joins("JOIN message_recipients ON message_recipients.message_id = messages.id").
		Where("message_recipients.recipient_id = ?", userID).
		Preload("Vehicle").
		Preload("FixedAlert").
		Preload("Reactions").
		Order("messages.created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) ListSent(ctx context.Context, userID uint, page, pageSize int) ([]db_models.Message, error) {
	var messages []db_models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", userID).
		Preload("Vehicle").
		Preload("FixedAlert").
		Preload("Reactions").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) AddRecipients(ctx context.Context, recipients []db_models.MessageRecipient) error {
	if len(recipients) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&recipients).Error
}

func (r *messageRepository) IsRecipient(ctx context.Context, messageID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.MessageRecipient{}).
		Where("message_id = ? AND recipient_id = ?", messageID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *messageRepository) FindReaction(ctx context.Context, messageID, userID uint, reaction db_models.ReactionType) (*db_models.MessageReaction, error) {
	var row db_models.MessageReaction
	err := r.db.WithContext(ctx).
		First(&row, "message_id = ? AND user_id = ? AND reaction_type = ?", messageID, userID, reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *messageRepository) InsertReaction(ctx context.Context, reaction *db_models.MessageReaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *messageRepository) DeleteReaction(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&db_models.MessageReaction{}, id).Error
}

func (r *messageRepository) ListReactions(ctx context.Context, messageID uint) ([]db_models.MessageReaction, error) {
	var rows []db_models.MessageReaction
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
