package memory

import (
	"context"
	"time"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type reviewRepository struct {
	table *table[models.Review]
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	created, err := r.table.insert(*review, func(existing []models.Review, row *models.Review, id uint64) error {
		for i := range existing {
			if existing[i].BookingID == row.BookingID {
				return interfaces.ErrDuplicate
			}
		}
		row.ID = id
		row.CreatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return err
	}

	*review = created
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint64) (*models.Review, error) {
	review, ok := r.table.get(id)
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &review, nil
}

func (r *reviewRepository) GetByBookingID(ctx context.Context, bookingID uint64) (*models.Review, error) {
	review, ok := r.table.find(func(rv *models.Review) bool {
		return rv.BookingID == bookingID
	})
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, filter interfaces.ReviewFilter) ([]*models.Review, error) {
	return r.table.list(func(rv *models.Review) bool {
		if filter.VehicleID != nil && rv.VehicleID != *filter.VehicleID {
			return false
		}
		if filter.BookingID != nil && rv.BookingID != *filter.BookingID {
			return false
		}
		return true
	}), nil
}
