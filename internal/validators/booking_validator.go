package validators

import (
	"time"

	"vehicle-rental/internal/utils"
)

// BookingCreateRequest carries dates as strings so both plain dates and RFC 3339 timestamps
// are accepted. Ordering of the two dates is checked by the booking service.
type BookingCreateRequest struct {
	VehicleID uint64 `json:"vehicle_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required,date_value"`
	EndDate   string `json:"end_date" validate:"required,date_value"`
}

// Dates parses StartDate and EndDate. Call it after a successful validation.
func (r *BookingCreateRequest) Dates() (time.Time, time.Time, error) {
	start, err := utils.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := utils.ParseDate(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

type BookingStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

func ValidateBookingCreate(req *BookingCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateBookingStatusUpdate(req *BookingStatusUpdateRequest) ValidationErrors {
	req.Status = SanitizeInput(req.Status)
	return ValidateStruct(req)
}
