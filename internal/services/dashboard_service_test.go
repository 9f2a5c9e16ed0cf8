package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental/internal/models"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	bike := f.addVehicle(t, "Pune", 20, models.VehicleTypeBike)
	ctx := context.Background()

	bookings := NewBookingService(f.store, nil, nil, nopLogger())
	first, err := bookings.Create(ctx, f.customer.ID, f.vehicle.ID, date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)
	_, err = bookings.UpdateStatus(ctx, first.ID, models.BookingStatusCompleted)
	require.NoError(t, err)

	second, err := bookings.Create(ctx, f.customer.ID, bike.ID, date("2025-01-05"), date("2025-01-06"))
	require.NoError(t, err)

	third, err := bookings.Create(ctx, f.customer.ID, f.vehicle.ID, date("2025-02-01"), date("2025-02-02"))
	require.NoError(t, err)
	_, err = bookings.UpdateStatus(ctx, third.ID, models.BookingStatusCancelled)
	require.NoError(t, err)

	svc := NewDashboardService(f.store, nopLogger())

	customer, err := svc.Stats(ctx, f.customerPrincipal())
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCustomer, customer.Role)
	assert.Equal(t, 3, customer.TotalBookings)
	assert.Equal(t, 1, customer.ActiveBookings)
	assert.Equal(t, 1, customer.BookingsByStatus[models.BookingStatusCompleted])
	assert.Equal(t, 1, customer.BookingsByStatus[models.BookingStatusPending])
	assert.Equal(t, 1, customer.BookingsByStatus[models.BookingStatusCancelled])
	assert.Equal(t, 0, customer.BookingsByStatus[models.BookingStatusConfirmed])
	assert.Contains(t, customer.BookingsByStatus, models.BookingStatusConfirmed)
	assert.EqualValues(t, 100+second.TotalAmount, customer.TotalSpent)
	assert.Zero(t, customer.TotalEarned)
	assert.Equal(t, 1, customer.VehiclesByType[models.VehicleTypeCar])
	assert.Equal(t, 1, customer.VehiclesByType[models.VehicleTypeBike])

	provider, err := svc.Stats(ctx, f.providerPrincipal())
	require.NoError(t, err)
	assert.Equal(t, 3, provider.TotalBookings)
	assert.EqualValues(t, customer.TotalSpent, provider.TotalEarned)
	assert.Zero(t, provider.TotalSpent)

	_, err = svc.Stats(ctx, Principal{UserID: 999})
	assert.ErrorIs(t, err, ErrNotFound)
}
