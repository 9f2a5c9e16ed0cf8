package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/middleware"
	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/internal/validators"
	"vehicle-rental/pkg/logger"
)

// errorStatus maps service errors to HTTP statuses and error codes.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{services.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{services.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{services.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{services.ErrInvalidRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
	{services.ErrVehicleUnavailable, http.StatusBadRequest, "VEHICLE_UNAVAILABLE"},
	{services.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{services.ErrInvalidRating, http.StatusBadRequest, "INVALID_RATING"},
	{services.ErrInvalidVehicle, http.StatusBadRequest, "INVALID_VEHICLE"},
	{services.ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{services.ErrWeakPassword, http.StatusBadRequest, "WEAK_PASSWORD"},
	{services.ErrBookingNotCompleted, http.StatusBadRequest, "BOOKING_NOT_COMPLETED"},
	{services.ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
	{services.ErrAlreadyReviewed, http.StatusConflict, "ALREADY_REVIEWED"},
	{services.ErrDuplicatePayment, http.StatusConflict, "DUPLICATE_PAYMENT"},
	{services.ErrPaymentFailed, http.StatusPaymentRequired, "PAYMENT_FAILED"},
	{services.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
}

// handleServiceError writes the error envelope for err. Unknown errors are logged and
// reported as a bare 500.
func handleServiceError(c *gin.Context, log *logger.Logger, err error) {
	var validationErrors validators.ValidationErrors
	if errors.As(err, &validationErrors) {
		utils.ValidationErrorResponse(c, validationErrors.Details())
		return
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			utils.ErrorResponse(c, m.status, m.code, publicMessage(err, m.err))
			return
		}
	}

	log.WithContext(c.Request.Context()).WithError(err).
		WithField("path", c.Request.URL.Path).
		Error("Request failed")
	utils.InternalServerErrorResponse(c)
}

// publicMessage keeps the detail added to vehicle and payment errors. Everything else is
// reported by its sentinel text.
func publicMessage(err, sentinel error) string {
	switch sentinel {
	case services.ErrInvalidVehicle, services.ErrPaymentFailed:
		return err.Error()
	default:
		return sentinel.Error()
	}
}

// bindJSON decodes the body into req and runs validate over it. It writes the 400 response
// itself and reports whether the handler should continue.
func bindJSON[T any](c *gin.Context, req *T, validate func(*T) validators.ValidationErrors) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return false
	}
	if errs := validate(req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return false
	}
	return true
}

func parseID(c *gin.Context, names ...string) (uint64, bool) {
	var raw string
	for _, name := range names {
		if raw = c.Param(name); raw != "" {
			break
		}
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

func principal(c *gin.Context) (services.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return services.Principal{}, false
	}
	return p, true
}
