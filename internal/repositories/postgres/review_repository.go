package postgres

import (
	"context"

	"gorm.io/gorm"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type reviewRepository struct {
	db *gorm.DB
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = 0
	return translate(r.db.WithContext(ctx).Create(review).Error, "create review")
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, translate(err, "get review")
	}
	return &review, nil
}

func (r *reviewRepository) GetByBookingID(ctx context.Context, bookingID uint64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&review).Error; err != nil {
		return nil, translate(err, "get review by booking")
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, filter interfaces.ReviewFilter) ([]*models.Review, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{})
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.BookingID != nil {
		query = query.Where("booking_id = ?", *filter.BookingID)
	}

	reviews := make([]*models.Review, 0)
	if err := query.Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, translate(err, "list reviews")
	}
	return reviews, nil
}
