package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type bookingRepository struct {
	db *gorm.DB
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = 0
	return translate(r.db.WithContext(ctx).Create(booking).Error, "create booking")
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint64) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, translate(err, "get booking")
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter interfaces.BookingFilter) ([]*models.Booking, error) {
	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.VehicleIDs != nil {
		query = query.Where("vehicle_id IN ?", filter.VehicleIDs)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	bookings := make([]*models.Booking, 0)
	if err := query.Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, translate(err, "list bookings")
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, id uint64, update *interfaces.BookingUpdate) (*models.Booking, error) {
	var booking models.Booking
	result := r.db.WithContext(ctx).Model(&booking).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(update.Fields())
	if result.Error != nil {
		return nil, translate(result.Error, "update booking")
	}
	if result.RowsAffected == 0 {
		return nil, interfaces.ErrNotFound
	}
	return &booking, nil
}
