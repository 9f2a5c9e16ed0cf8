package interfaces

import (
	"context"
	"time"

	"vehicle-rental/internal/models"
)

type BookingFilter struct {
	CustomerID *uint64
	VehicleID  *uint64
	// VehicleIDs restricts the result when non-nil. An empty non-nil slice matches nothing.
	VehicleIDs []uint64
	Statuses   []models.BookingStatus
}

type BookingUpdate struct {
	Status        *models.BookingStatus
	PaymentStatus *models.PaymentStatus
}

func (u *BookingUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{"updated_at": time.Now().UTC()}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.PaymentStatus != nil {
		fields["payment_status"] = *u.PaymentStatus
	}
	return fields
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint64) (*models.Booking, error)
	// List returns matching bookings, newest first.
	List(ctx context.Context, filter BookingFilter) ([]*models.Booking, error)
	Update(ctx context.Context, id uint64, update *BookingUpdate) (*models.Booking, error)
}
