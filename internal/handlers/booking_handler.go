package handlers

import (
	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/internal/validators"
	"vehicle-rental/pkg/logger"
)

type BookingHandler struct {
	bookingService services.BookingService
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req validators.BookingCreateRequest
	if !bindJSON(c, &req, validators.ValidateBookingCreate) {
		return
	}

	start, end, err := req.Dates()
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), p.UserID, req.VehicleID, start, end)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) ListForUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListForUser(c.Request.Context(), p)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{Count: len(bookings)})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.BookingStatusUpdateRequest
	if !bindJSON(c, &req, validators.ValidateBookingStatusUpdate) {
		return
	}

	booking, err := h.bookingService.UpdateStatusAs(c.Request.Context(), p, id, models.BookingStatus(req.Status))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Booking status updated successfully", booking)
}
