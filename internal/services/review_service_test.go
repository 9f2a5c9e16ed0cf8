package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental/internal/models"
)

func completedBooking(t *testing.T, f *fixture) *models.Booking {
	t.Helper()
	ctx := context.Background()
	bookings := NewBookingService(f.store, nil, nil, nopLogger())

	booking, err := bookings.Create(ctx, f.customer.ID, f.vehicle.ID, date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)
	booking, err = bookings.UpdateStatus(ctx, booking.ID, models.BookingStatusCompleted)
	require.NoError(t, err)
	return booking
}

func TestCreateReview(t *testing.T) {
	f := newFixture(t)
	booking := completedBooking(t, f)
	svc := NewReviewService(f.store, nopLogger())
	ctx := context.Background()

	comment := "  smooth ride  "
	review, err := svc.Create(ctx, f.customer.ID, booking.ID, 5, &comment)
	require.NoError(t, err)
	assert.Equal(t, f.vehicle.ID, review.VehicleID)
	assert.Equal(t, 5, review.Rating)
	require.NotNil(t, review.Comment)
	assert.Equal(t, "smooth ride", *review.Comment)

	_, err = svc.Create(ctx, f.customer.ID, booking.ID, 4, nil)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	reviews, err := svc.ListForVehicle(ctx, f.vehicle.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestCreateReviewBlankCommentIsNil(t *testing.T) {
	f := newFixture(t)
	booking := completedBooking(t, f)
	svc := NewReviewService(f.store, nopLogger())

	blank := "   "
	review, err := svc.Create(context.Background(), f.customer.ID, booking.ID, 3, &blank)
	require.NoError(t, err)
	assert.Nil(t, review.Comment)
}

func TestCreateReviewCheckOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewReviewService(f.store, nopLogger())
	bookings := NewBookingService(f.store, nil, nil, nopLogger())

	_, err := svc.Create(ctx, f.customer.ID, 77, 9, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	pending, err := bookings.Create(ctx, f.customer.ID, f.vehicle.ID, date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)

	// ownership is checked before the rating
	_, err = svc.Create(ctx, f.provider.ID, pending.ID, 9, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// rating is checked before the booking status
	_, err = svc.Create(ctx, f.customer.ID, pending.ID, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Create(ctx, f.customer.ID, pending.ID, 6, nil)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(ctx, f.customer.ID, pending.ID, 4, nil)
	assert.ErrorIs(t, err, ErrBookingNotCompleted)
}
