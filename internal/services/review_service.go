package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
)

type ReviewService interface {
	Create(ctx context.Context, callerID, bookingID uint64, rating int, comment *string) (*models.Review, error)
	ListForVehicle(ctx context.Context, vehicleID uint64) ([]*models.Review, error)
}

type reviewService struct {
	store  interfaces.Store
	logger *logger.Logger
}

func NewReviewService(store interfaces.Store, logger *logger.Logger) ReviewService {
	return &reviewService{
		store:  store,
		logger: logger,
	}
}

func (s *reviewService) Create(ctx context.Context, callerID, bookingID uint64, rating int, comment *string) (*models.Review, error) {
	booking, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.CustomerID != callerID {
		return nil, ErrUnauthorized
	}

	if rating < models.MinRating || rating > models.MaxRating {
		return nil, ErrInvalidRating
	}

	if booking.Status != models.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	_, err = s.store.Reviews().GetByBookingID(ctx, bookingID)
	switch {
	case err == nil:
		return nil, ErrAlreadyReviewed
	case !errors.Is(err, interfaces.ErrNotFound):
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	review := &models.Review{
		BookingID: bookingID,
		VehicleID: booking.VehicleID,
		Rating:    rating,
		Comment:   normalizeComment(comment),
	}
	if err := s.store.Reviews().Create(ctx, review); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.LogUserAction(callerID, utils.EventReviewCreated, map[string]interface{}{
		"booking_id": bookingID,
		"vehicle_id": booking.VehicleID,
		"rating":     rating,
	})

	return review, nil
}

func (s *reviewService) ListForVehicle(ctx context.Context, vehicleID uint64) ([]*models.Review, error) {
	reviews, err := s.store.Reviews().List(ctx, interfaces.ReviewFilter{VehicleID: &vehicleID})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
