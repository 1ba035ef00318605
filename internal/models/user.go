// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole identifies what a user can do on the platform.
type UserRole string

// User roles.
const (
	RoleRenter   UserRole = "Renter"
	RoleLandlord UserRole = "Landlord"
	RoleAdmin    UserRole = "Admin"
)

func (r UserRole) String() string { return string(r) }

// User is a platform account. Identity issuance lives in an external
// provider; this row only backs display names and role lookups.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"size:80;not null" json:"display_name"`
	Email       string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Phone       string    `gorm:"size:32" json:"phone,omitempty"`
	Role        UserRole  `gorm:"size:16;not null;default:Renter" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
