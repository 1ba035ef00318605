package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService handles conversations between renters and landlords.
type ChatService struct {
	conversations repository.ConversationRepository
	properties    repository.PropertyRepository
	logger        *slog.Logger
}

// NewChatService creates a new chat service.
func NewChatService(
	conversations repository.ConversationRepository,
	properties repository.PropertyRepository,
	logger *slog.Logger,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		properties:    properties,
		logger:        logger,
	}
}

// Start opens a conversation about a listing, or returns the existing one for
// this renter. Landlords cannot start threads on their own listings.
func (s *ChatService) Start(ctx context.Context, renterID uuid.UUID, propertyID uint) (*models.Conversation, *models.AppError) {
	property, err := s.properties.GetDetails(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Property not found.")
		}
		return nil, models.NewInternalError(err)
	}
	if property.LandlordID == renterID {
		return nil, models.NewValidationError("You cannot start a conversation on your own listing.")
	}

	existing, err := s.conversations.FindByPropertyAndRenter(ctx, propertyID, renterID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	conversation := models.Conversation{
		PropertyID: propertyID,
		LandlordID: property.LandlordID,
		RenterID:   renterID,
	}
	if err := s.conversations.Create(ctx, &conversation); err != nil {
		s.logger.ErrorContext(ctx, "conversation create failed", "property_id", propertyID, "error", err)
		return nil, models.NewInternalError(err)
	}
	return &conversation, nil
}

// ListForUser returns every thread the caller participates in.
func (s *ChatService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Conversation, *models.AppError) {
	conversations, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return conversations, nil
}

// Messages returns a thread's messages for a participant and marks the other
// side's messages as read.
func (s *ChatService) Messages(ctx context.Context, requesterID uuid.UUID, conversationID int64) ([]models.Message, *models.AppError) {
	conversation, appErr := s.loadForParticipant(ctx, requesterID, conversationID)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.conversations.MarkRead(ctx, conversation.ID, requesterID); err != nil {
		s.logger.WarnContext(ctx, "mark-read failed", "conversation_id", conversationID, "error", err)
	}

	messages, err := s.conversations.ListMessages(ctx, conversation.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Send appends a message to a thread the caller participates in.
func (s *ChatService) Send(ctx context.Context, senderID uuid.UUID, conversationID int64, body string) (*models.Message, *models.AppError) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Message body is required.")
	}

	conversation, appErr := s.loadForParticipant(ctx, senderID, conversationID)
	if appErr != nil {
		return nil, appErr
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.conversations.AddMessage(ctx, &message); err != nil {
		s.logger.ErrorContext(ctx, "message send failed", "conversation_id", conversationID, "error", err)
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (s *ChatService) loadForParticipant(ctx context.Context, userID uuid.UUID, conversationID int64) (*models.Conversation, *models.AppError) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation not found.")
		}
		return nil, models.NewInternalError(err)
	}
	if conversation.LandlordID != userID && conversation.RenterID != userID {
		return nil, models.NewForbiddenError("You are not part of this conversation.")
	}
	return conversation, nil
}
