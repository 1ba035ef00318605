package repository

import (
	"context"
	"time"

	"hanapbahay/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationRepository defines data access for message threads.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *models.Conversation) error
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	FindByPropertyAndRenter(ctx context.Context, propertyID uint, renterID uuid.UUID) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error)
	AddMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error)
	MarkRead(ctx context.Context, conversationID int64, readerID uuid.UUID) error
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *models.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *conversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Property").
		First(&conversation, id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByPropertyAndRenter returns the thread for a (listing, renter) pair, or
// gorm.ErrRecordNotFound when none exists yet.
func (r *conversationRepository) FindByPropertyAndRenter(ctx context.Context, propertyID uint, renterID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND renter_id = ?", propertyID, renterID).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListByUser returns every thread the user participates in, on either side,
// most recently active first.
func (r *conversationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("landlord_id = ? OR renter_id = ?", userID, userID).
		Order("last_message_at DESC, id DESC").
		Find(&conversations).Error
	return conversations, err
}

// AddMessage appends a message and bumps the thread's activity timestamp in
// one transaction.
func (r *conversationRepository) AddMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("last_message_at", time.Now().UTC()).Error
	})
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// MarkRead flags every message the reader received as read. The reader's own
// messages are untouched.
func (r *conversationRepository) MarkRead(ctx context.Context, conversationID int64, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}
