package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a message thread between a renter and the landlord of one
// listing. At most one conversation exists per (property, renter) pair.
type Conversation struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	PropertyID    uint       `gorm:"not null;index;uniqueIndex:idx_property_renter,priority:1" json:"property_id"`
	Property      Property   `gorm:"foreignKey:PropertyID" json:"-"`
	LandlordID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"landlord_id"`
	RenterID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_property_renter,priority:2" json:"renter_id"`
	CreatedAt     time.Time  `json:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`

	Messages []Message `gorm:"foreignKey:ConversationID" json:"-"`
}

// Message is one message inside a conversation.
type Message struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	ConversationID int64     `gorm:"not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Body           string    `gorm:"size:2000;not null" json:"body"`
	SentAt         time.Time `gorm:"autoCreateTime" json:"sent_at"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
}
