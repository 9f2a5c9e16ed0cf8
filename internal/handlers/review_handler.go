package handlers

import (
	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/internal/validators"
	"vehicle-rental/pkg/logger"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	logger        *logger.Logger
}

func NewReviewHandler(reviewService services.ReviewService, logger *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req validators.ReviewCreateRequest
	if !bindJSON(c, &req, validators.ValidateReviewCreate) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), p.UserID, req.BookingID, *req.Rating, req.Comment)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Review created successfully", review)
}

// ListForVehicle serves both /reviews/vehicle/:vehicleId and /vehicles/:id/reviews.
func (h *ReviewHandler) ListForVehicle(c *gin.Context) {
	vehicleID, ok := parseID(c, "vehicleId", "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListForVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reviews retrieved successfully", reviews, &utils.Meta{Count: len(reviews)})
}
