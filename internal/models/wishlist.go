package models

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist marks a listing as saved by a user.
type Wishlist struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	PropertyID uint      `gorm:"primaryKey;autoIncrement:false" json:"property_id"`
	Property   Property  `gorm:"foreignKey:PropertyID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
