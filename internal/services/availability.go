package services

import (
	"math"
	"time"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/utils"
)

// IsBookable reports whether a vehicle can take a new booking. A single flag, not a calendar.
func IsBookable(v *models.Vehicle) bool {
	return v != nil && v.Available
}

// ReleasesVehicle reports whether moving a booking into status frees its vehicle.
func ReleasesVehicle(status models.BookingStatus) bool {
	return status == models.BookingStatusCompleted || status == models.BookingStatusCancelled
}

// IsActive reports whether a booking in status holds its vehicle.
func IsActive(status models.BookingStatus) bool {
	return status == models.BookingStatusPending || status == models.BookingStatusConfirmed
}

// RentalDays counts started days, with a minimum of one. Counted from Unix seconds since a
// time.Duration saturates at about 292 years.
func RentalDays(start, end time.Time) int64 {
	secs := end.Unix() - start.Unix()
	nanos := end.Nanosecond() - start.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}

	daySecs := int64(utils.RentalDay / time.Second)
	days := secs / daySecs
	if secs%daySecs > 0 || nanos > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// TotalAmount is price per day times started days. ErrInvalidAmount if the product does not fit.
func TotalAmount(pricePerDay int64, start, end time.Time) (int64, error) {
	days := RentalDays(start, end)
	if pricePerDay < 0 || (pricePerDay > 0 && days > math.MaxInt64/pricePerDay) {
		return 0, ErrInvalidAmount
	}
	return pricePerDay * days, nil
}
