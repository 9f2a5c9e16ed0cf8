package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/services"
	"vehicle-rental/internal/utils"
	"vehicle-rental/internal/validators"
	"vehicle-rental/pkg/logger"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
	logger         *logger.Logger
}

func NewVehicleHandler(vehicleService services.VehicleService, logger *logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
	}
}

func (h *VehicleHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req validators.VehicleCreateRequest
	if !bindJSON(c, &req, validators.ValidateVehicleCreate) {
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), p.UserID, &services.CreateVehicleRequest{
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Price:    req.Price,
		City:     req.City,
		ImageURL: req.ImageURL,
		Type:     models.VehicleType(req.Type),
		FuelType: models.FuelType(req.FuelType),
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle created successfully", vehicle)
}

func (h *VehicleHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle retrieved successfully", vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.VehicleUpdateRequest
	if !bindJSON(c, &req, validators.ValidateVehicleUpdate) {
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), p, id, &services.UpdateVehicleRequest{
		Price:    req.Price,
		City:     req.City,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle updated successfully", vehicle)
}

// ListByCity lists available vehicles in a city; "all" lists every city.
func (h *VehicleHandler) ListByCity(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.vehicleService.ListByCity(c.Request.Context(), c.Param("city"), params)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, page.Total),
		Total:      page.Total,
		Count:      len(page.Vehicles),
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved successfully", page.Vehicles, meta)
}

func (h *VehicleHandler) ListMine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	vehicles, err := h.vehicleService.ListByProvider(c.Request.Context(), p.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved successfully", vehicles, &utils.Meta{Count: len(vehicles)})
}

// UploadImage stores a multipart "image" file and returns its URL for use as image_url.
func (h *VehicleHandler) UploadImage(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxImageSize+1<<20)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "image file is required")
		return
	}
	if fileHeader.Size > utils.MaxImageSize {
		utils.BadRequestResponse(c, "image exceeds the maximum size")
		return
	}
	if !utils.IsValidImageFormat(fileHeader.Filename) {
		utils.BadRequestResponse(c, "image must be one of "+strings.Join(utils.AllowedImageTypes, ", "))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "unable to read image")
		return
	}
	defer file.Close()

	result, err := h.vehicleService.UploadImage(c.Request.Context(), p.UserID, fileHeader.Filename, file)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Image uploaded successfully", result)
}
