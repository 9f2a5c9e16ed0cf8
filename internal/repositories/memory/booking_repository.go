package memory

import (
	"context"
	"time"

	"github.com/samber/lo"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type bookingRepository struct {
	table *table[models.Booking]
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	created, err := r.table.insert(*booking, func(_ []models.Booking, row *models.Booking, id uint64) error {
		now := time.Now().UTC()
		row.ID = id
		row.CreatedAt = now
		row.UpdatedAt = now
		return nil
	})
	if err != nil {
		return err
	}

	*booking = created
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint64) (*models.Booking, error) {
	booking, ok := r.table.get(id)
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter interfaces.BookingFilter) ([]*models.Booking, error) {
	bookings := r.table.list(func(b *models.Booking) bool {
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			return false
		}
		if filter.VehicleID != nil && b.VehicleID != *filter.VehicleID {
			return false
		}
		if filter.VehicleIDs != nil && !containsID(filter.VehicleIDs, b.VehicleID) {
			return false
		}
		if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, b.Status) {
			return false
		}
		return true
	})

	return lo.Reverse(bookings), nil
}

func (r *bookingRepository) Update(ctx context.Context, id uint64, update *interfaces.BookingUpdate) (*models.Booking, error) {
	booking, err := r.table.update(id, func(b *models.Booking) error {
		if update.Status != nil {
			b.Status = *update.Status
		}
		if update.PaymentStatus != nil {
			b.PaymentStatus = *update.PaymentStatus
		}
		b.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
