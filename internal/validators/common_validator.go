package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	validate.RegisterValidation("vehicle_type", validateVehicleType)
	validate.RegisterValidation("fuel_type", validateFuelType)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("booking_status", validateBookingStatus)
	validate.RegisterValidation("vehicle_year", validateVehicleYear)
	validate.RegisterValidation("date_value", validateDateValue)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Details flattens the errors into a field to message map for the response envelope.
// The first message per field wins.
func (v ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(v))
	for _, err := range v {
		if _, ok := details[err.Field]; !ok {
			details[err.Field] = err.Message
		}
	}
	return details
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{Field: "request", Message: err.Error()}}
	}

	for _, fe := range fieldErrors {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
			Message: getErrorMessage(fe),
		})
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		}
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		}
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "alphanum":
		return fmt.Sprintf("%s may only contain letters and digits", err.Field())
	case "vehicle_type":
		return "Vehicle type must be one of car, suv, bike"
	case "fuel_type":
		return "Fuel type must be one of petrol, diesel, electric"
	case "user_role":
		return "Role must be provider or customer"
	case "booking_status":
		return "Status must be one of pending, confirmed, completed, cancelled"
	case "vehicle_year":
		return fmt.Sprintf("Year must be between %d and %d", minVehicleYear, time.Now().Year()+1)
	case "date_value":
		return "Date must be YYYY-MM-DD or RFC 3339"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

const minVehicleYear = 1900

func validateVehicleType(fl validator.FieldLevel) bool {
	return models.VehicleType(fl.Field().String()).IsValid()
}

func validateFuelType(fl validator.FieldLevel) bool {
	return models.FuelType(fl.Field().String()).IsValid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.UserRole(fl.Field().String()).IsValid()
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return models.BookingStatus(fl.Field().String()).IsValid()
}

func validateVehicleYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= minVehicleYear && year <= int64(time.Now().Year()+1)
}

func validateDateValue(fl validator.FieldLevel) bool {
	_, err := utils.ParseDate(fl.Field().String())
	return err == nil
}

func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}
