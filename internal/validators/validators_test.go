package validators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental/internal/utils"
)

func fields(errs ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestUserRegistration(t *testing.T) {
	req := &UserRegistrationRequest{Username: " alice ", Password: "secret1", Role: "Provider", City: " Pune "}
	assert.Empty(t, ValidateUserRegistration(req))
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "provider", req.Role)
	assert.Equal(t, "Pune", req.City)

	errs := ValidateUserRegistration(&UserRegistrationRequest{Username: "al", Password: "123", Role: "admin"})
	assert.ElementsMatch(t, []string{"username", "password", "role"}, fields(errs))

	errs = ValidateUserRegistration(&UserRegistrationRequest{Username: "bad name", Password: "secret1", Role: "customer"})
	assert.Equal(t, []string{"username"}, fields(errs))
}

func TestPasswordChange(t *testing.T) {
	assert.Empty(t, ValidatePasswordChange(&PasswordChangeRequest{CurrentPassword: "old-one", NewPassword: "new-one"}))

	errs := ValidatePasswordChange(&PasswordChangeRequest{CurrentPassword: "same-one", NewPassword: "same-one"})
	assert.Equal(t, []string{"new_password"}, fields(errs))
}

func TestVehicleCreate(t *testing.T) {
	req := &VehicleCreateRequest{
		Make: "Honda", Model: "City", Year: 2022, Price: 50, City: "Pune", Type: "CAR", FuelType: "petrol",
	}
	assert.Empty(t, ValidateVehicleCreate(req))
	assert.Equal(t, "car", req.Type)

	errs := ValidateVehicleCreate(&VehicleCreateRequest{
		Make: "Honda", Model: "City", Year: time.Now().Year() + 2, Price: -1, City: "Pune", Type: "truck", FuelType: "steam",
	})
	assert.ElementsMatch(t, []string{"year", "price", "type", "fuel_type"}, fields(errs))

	details := errs.Details()
	assert.Contains(t, details["type"], "car, suv, bike")
}

func TestVehicleUpdate(t *testing.T) {
	price := int64(10)
	assert.Empty(t, ValidateVehicleUpdate(&VehicleUpdateRequest{Price: &price}))

	zero := int64(0)
	assert.Equal(t, []string{"price"}, fields(ValidateVehicleUpdate(&VehicleUpdateRequest{Price: &zero})))
	assert.Equal(t, []string{"request"}, fields(ValidateVehicleUpdate(&VehicleUpdateRequest{})))

	huge := int64(math.MaxInt64/2 + 1)
	assert.Equal(t, []string{"price"}, fields(ValidateVehicleUpdate(&VehicleUpdateRequest{Price: &huge})))
}

func TestVehiclePriceUpperBound(t *testing.T) {
	req := &VehicleCreateRequest{
		Make: "Honda", Model: "City", Year: 2022, Price: utils.MaxVehiclePrice, City: "Pune", Type: "car", FuelType: "petrol",
	}
	assert.Empty(t, ValidateVehicleCreate(req))

	req.Price = utils.MaxVehiclePrice + 1
	errs := ValidateVehicleCreate(req)
	assert.Equal(t, []string{"price"}, fields(errs))
	assert.Contains(t, errs.Details()["price"], "at most 1000000")
}

func TestBookingCreate(t *testing.T) {
	req := &BookingCreateRequest{VehicleID: 1, StartDate: "2025-01-01", EndDate: "2025-01-03T12:00:00Z"}
	require.Empty(t, ValidateBookingCreate(req))

	start, end, err := req.Dates()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC), end)

	// reversed dates are the service's concern
	assert.Empty(t, ValidateBookingCreate(&BookingCreateRequest{VehicleID: 1, StartDate: "2025-01-03", EndDate: "2025-01-01"}))

	errs := ValidateBookingCreate(&BookingCreateRequest{StartDate: "tomorrow", EndDate: "2025-01-01"})
	assert.ElementsMatch(t, []string{"vehicle_id", "start_date"}, fields(errs))
}

func TestBookingStatusUpdate(t *testing.T) {
	assert.Empty(t, ValidateBookingStatusUpdate(&BookingStatusUpdateRequest{Status: "completed"}))
	assert.Equal(t, []string{"status"}, fields(ValidateBookingStatusUpdate(&BookingStatusUpdateRequest{Status: "returned"})))
}

func TestReviewCreate(t *testing.T) {
	rating := 9
	assert.Empty(t, ValidateReviewCreate(&ReviewCreateRequest{BookingID: 1, Rating: &rating}))

	errs := ValidateReviewCreate(&ReviewCreateRequest{})
	assert.ElementsMatch(t, []string{"booking_id", "rating"}, fields(errs))
}

func TestValidationErrorsString(t *testing.T) {
	errs := ValidationErrors{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}
	assert.Equal(t, "a: bad; b: worse", errs.Error())
}

func TestTopUpAmountUpperBound(t *testing.T) {
	assert.Empty(t, ValidatePaymentIntent(&PaymentIntentRequest{Amount: utils.MaxTopUpAmount}))
	assert.Empty(t, ValidateWalletTopUp(&WalletTopUpRequest{Amount: -5}))

	assert.Equal(t, []string{"amount"}, fields(ValidatePaymentIntent(&PaymentIntentRequest{Amount: math.MaxInt64})))
	assert.Equal(t, []string{"amount"}, fields(ValidateWalletTopUp(&WalletTopUpRequest{Amount: utils.MaxTopUpAmount + 1})))
}
