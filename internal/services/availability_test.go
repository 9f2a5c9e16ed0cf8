package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental/internal/models"
)

func TestRentalDays(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int64
	}{
		{"two whole days", start.Add(48 * time.Hour), 2},
		{"exactly one day", start.Add(24 * time.Hour), 1},
		{"one hour rounds up to a day", start.Add(time.Hour), 1},
		{"partial second day", start.Add(25 * time.Hour), 2},
		{"one second over", start.Add(72*time.Hour + time.Second), 4},
		{"one nanosecond over", start.Add(24*time.Hour + time.Nanosecond), 2},
		{"end before start", start.Add(-48 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(start, tt.end))
		})
	}
}

func TestRentalDaysBeyondDurationRange(t *testing.T) {
	start := time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.EqualValues(t, 146097, RentalDays(start, end))
	assert.EqualValues(t, 146098, RentalDays(start, end.Add(time.Hour)))
}

func TestTotalAmount(t *testing.T) {
	total, err := TotalAmount(50, date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)
	assert.EqualValues(t, 100, total)

	total, err = TotalAmount(30, date("2025-01-01"), date("2025-01-01").Add(time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 30, total)

	_, err = TotalAmount(math.MaxInt64/2+1, date("2025-01-01"), date("2025-01-03"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	total, err = TotalAmount(math.MaxInt64/2, date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)
	assert.EqualValues(t, math.MaxInt64-1, total)
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, IsActive(models.BookingStatusPending))
	assert.True(t, IsActive(models.BookingStatusConfirmed))
	assert.False(t, IsActive(models.BookingStatusCompleted))
	assert.False(t, IsActive(models.BookingStatusCancelled))

	assert.True(t, ReleasesVehicle(models.BookingStatusCompleted))
	assert.True(t, ReleasesVehicle(models.BookingStatusCancelled))
	assert.False(t, ReleasesVehicle(models.BookingStatusConfirmed))
	assert.False(t, ReleasesVehicle(models.BookingStatusPending))

	assert.True(t, IsBookable(&models.Vehicle{Available: true}))
	assert.False(t, IsBookable(&models.Vehicle{}))
	assert.False(t, IsBookable(nil))
}
