package server

import (
	"hanapbahay/internal/models"

	"github.com/gofiber/fiber/v2"
)

type sendMessageRequest struct {
	Body string `json:"body"`
}

// StartConversation opens (or reuses) a conversation about a listing.
func (s *Server) StartConversation(c *fiber.Ctx) error {
	propertyID, err := s.parseID(c, "id", "property ID")
	if err != nil {
		return nil
	}

	conversation, appErr := s.chatService.Start(c.UserContext(), requesterID(c), propertyID)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(conversation)
}

// GetConversations lists the caller's conversations.
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, appErr := s.chatService.ListForUser(c.UserContext(), requesterID(c))
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(conversations)
}

// GetMessages lists a conversation's messages and marks the other side's
// messages as read.
func (s *Server) GetMessages(c *fiber.Ctx) error {
	conversationID, err := s.parseID64(c, "id", "conversation ID")
	if err != nil {
		return nil
	}

	messages, appErr := s.chatService.Messages(c.UserContext(), requesterID(c), conversationID)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(messages)
}

// SendMessage appends a message to a conversation.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	conversationID, err := s.parseID64(c, "id", "conversation ID")
	if err != nil {
		return nil
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body."))
	}

	message, appErr := s.chatService.Send(c.UserContext(), requesterID(c), conversationID, req.Body)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}
