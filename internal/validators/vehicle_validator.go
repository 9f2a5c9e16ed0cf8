package validators

import (
	"strings"
)

// Price bounds match utils.MaxVehiclePrice.
type VehicleCreateRequest struct {
	Make     string `json:"make" validate:"required,max=64"`
	Model    string `json:"model" validate:"required,max=64"`
	Year     int    `json:"year" validate:"required,vehicle_year"`
	Price    int64  `json:"price" validate:"required,gt=0,lte=1000000"`
	City     string `json:"city" validate:"required,max=128"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Type     string `json:"type" validate:"required,vehicle_type"`
	FuelType string `json:"fuel_type" validate:"required,fuel_type"`
}

// VehicleUpdateRequest is a partial update; nil fields are left as they are.
type VehicleUpdateRequest struct {
	Price    *int64  `json:"price" validate:"omitempty,gt=0,lte=1000000"`
	City     *string `json:"city" validate:"omitempty,min=1,max=128"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

func ValidateVehicleCreate(req *VehicleCreateRequest) ValidationErrors {
	req.Make = SanitizeInput(req.Make)
	req.Model = SanitizeInput(req.Model)
	req.City = SanitizeInput(req.City)
	req.Type = strings.ToLower(SanitizeInput(req.Type))
	req.FuelType = strings.ToLower(SanitizeInput(req.FuelType))

	return ValidateStruct(req)
}

func ValidateVehicleUpdate(req *VehicleUpdateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.Price == nil && req.City == nil && req.ImageURL == nil {
		errors = append(errors, ValidationError{
			Field:   "request",
			Message: "At least one of price, city, image_url is required",
		})
	}

	return errors
}
