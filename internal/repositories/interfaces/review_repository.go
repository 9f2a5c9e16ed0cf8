package interfaces

import (
	"context"

	"vehicle-rental/internal/models"
)

type ReviewFilter struct {
	VehicleID *uint64
	BookingID *uint64
}

// ReviewRepository has no update operation. Reviews are immutable once written.
type ReviewRepository interface {
	// Create assigns the next id. ErrDuplicate when the booking already has a review.
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint64) (*models.Review, error)
	GetByBookingID(ctx context.Context, bookingID uint64) (*models.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]*models.Review, error)
}
