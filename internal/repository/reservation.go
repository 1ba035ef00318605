package repository

import (
	"context"

	"hanapbahay/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationRepository defines data access for reservation requests.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	Save(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	ListByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]models.Reservation, error)
	HasOpenReservation(ctx context.Context, propertyID uint, renterID uuid.UUID) (bool, error)
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) Save(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// GetByID loads one reservation with its listing, which callers need for
// ownership checks.
func (r *reservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Property").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) ListByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC, id DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("renter_id = ?", renterID).
		Order("created_at DESC, id DESC").
		Find(&reservations).Error
	return reservations, err
}

// HasOpenReservation reports whether the renter already has a proposed or
// accepted reservation on the listing.
func (r *reservationRepository) HasOpenReservation(ctx context.Context, propertyID uint, renterID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("property_id = ? AND renter_id = ? AND status IN ?",
			propertyID, renterID,
			[]models.ReservationStatus{models.ReservationProposed, models.ReservationAccepted}).
		Count(&count).Error
	return count > 0, err
}
