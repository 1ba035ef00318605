package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

// Reservation statuses.
const (
	ReservationProposed  ReservationStatus = "Proposed"
	ReservationAccepted  ReservationStatus = "Accepted"
	ReservationDeclined  ReservationStatus = "Declined"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationCompleted ReservationStatus = "Completed"
)

// Reservation is a renter's proposal to rent a listing.
type Reservation struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	PropertyID uint              `gorm:"not null;index" json:"property_id"`
	Property   Property          `gorm:"foreignKey:PropertyID" json:"-"`
	RenterID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"renter_id"`
	Renter     User              `gorm:"foreignKey:RenterID" json:"-"`
	Status     ReservationStatus `gorm:"size:16;not null;default:Proposed" json:"status"`
	Note       string            `gorm:"size:500" json:"note,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  *time.Time        `json:"updated_at,omitempty"`
}
