package handlers

import (
	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	logger           *logger.Logger
}

func NewDashboardHandler(dashboardService services.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), p)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard stats retrieved successfully", stats)
}
