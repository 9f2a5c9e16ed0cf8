package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/cache"
	"vehicle-rental/pkg/logger"
	"vehicle-rental/pkg/storage"
)

// CityAll lists vehicles in every city.
const CityAll = "all"

type VehicleService interface {
	Create(ctx context.Context, providerID uint64, request *CreateVehicleRequest) (*models.Vehicle, error)
	GetByID(ctx context.Context, vehicleID uint64) (*models.Vehicle, error)
	Update(ctx context.Context, principal Principal, vehicleID uint64, request *UpdateVehicleRequest) (*models.Vehicle, error)
	ListByCity(ctx context.Context, city string, params *utils.PaginationParams) (*VehiclePage, error)
	ListByProvider(ctx context.Context, providerID uint64) ([]*models.Vehicle, error)
	UploadImage(ctx context.Context, providerID uint64, filename string, r io.Reader) (*ImageUploadResult, error)
}

type CreateVehicleRequest struct {
	Make     string
	Model    string
	Year     int
	Price    int64
	City     string
	ImageURL string
	Type     models.VehicleType
	FuelType models.FuelType
}

type UpdateVehicleRequest struct {
	Price    *int64
	City     *string
	ImageURL *string
}

type VehiclePage struct {
	Vehicles []*models.Vehicle `json:"vehicles"`
	Total    int64             `json:"total"`
}

type ImageUploadResult struct {
	URL    string `json:"url"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type VehicleServiceOptions struct {
	CacheTTL      time.Duration
	MaxImageWidth uint
}

type vehicleService struct {
	store   interfaces.Store
	cache   CacheService
	storage storage.StorageProvider
	opts    VehicleServiceOptions
	logger  *logger.Logger
}

func NewVehicleService(
	store interfaces.Store,
	cache CacheService,
	fileStorage storage.StorageProvider,
	opts VehicleServiceOptions,
	logger *logger.Logger,
) VehicleService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	return &vehicleService{
		store:   store,
		cache:   cache,
		storage: fileStorage,
		opts:    opts,
		logger:  logger,
	}
}

func (s *vehicleService) Create(ctx context.Context, providerID uint64, request *CreateVehicleRequest) (*models.Vehicle, error) {
	if err := s.requireProvider(ctx, providerID); err != nil {
		return nil, err
	}

	if err := checkVehicle(request); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		ProviderID: providerID,
		Make:       strings.TrimSpace(request.Make),
		Model:      strings.TrimSpace(request.Model),
		Year:       request.Year,
		Price:      request.Price,
		City:       strings.TrimSpace(request.City),
		Available:  true,
		ImageURL:   request.ImageURL,
		Type:       request.Type,
		FuelType:   request.FuelType,
	}

	if err := s.store.Vehicles().Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	invalidateVehicle(ctx, s.cache, s.logger, vehicle.ID)

	s.logger.LogUserAction(providerID, utils.EventVehicleCreated, map[string]interface{}{
		"vehicle_id": vehicle.ID,
		"city":       vehicle.City,
		"price":      vehicle.Price,
	})

	return vehicle, nil
}

func (s *vehicleService) GetByID(ctx context.Context, vehicleID uint64) (*models.Vehicle, error) {
	key := ""
	if s.cache != nil {
		version, err := s.cache.GetInt(ctx, utils.CacheVehicleVersion)
		if err != nil {
			s.logger.WithError(err).Debug("Vehicle cache version read failed")
		} else {
			key = vehicleKey(version, vehicleID)
			var cached models.Vehicle
			if err := s.cache.Get(ctx, key, &cached); err == nil {
				return &cached, nil
			} else if !errors.Is(err, cache.ErrCacheMiss) {
				s.logger.WithError(err).Debug("Vehicle cache read failed")
			}
		}
	}

	vehicle, err := s.store.Vehicles().GetByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, vehicle, s.opts.CacheTTL); err != nil {
			s.logger.WithError(err).Debug("Vehicle cache write failed")
		}
	}

	return vehicle, nil
}

func (s *vehicleService) Update(ctx context.Context, principal Principal, vehicleID uint64, request *UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.store.Vehicles().GetByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ProviderID != principal.UserID {
		return nil, ErrUnauthorized
	}

	if request.Price != nil && (*request.Price <= 0 || *request.Price > utils.MaxVehiclePrice) {
		return nil, fmt.Errorf("%w: price must be between 1 and %d", ErrInvalidVehicle, utils.MaxVehiclePrice)
	}
	if request.City != nil {
		city := strings.TrimSpace(*request.City)
		request.City = &city
	}

	updated, err := s.store.Vehicles().Update(ctx, vehicleID, &interfaces.VehicleUpdate{
		Price:    request.Price,
		City:     request.City,
		ImageURL: request.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	invalidateVehicle(ctx, s.cache, s.logger, vehicleID)

	return updated, nil
}

// ListByCity returns available vehicles whose city contains city, ignoring case. "all" or an
// empty city lists every available vehicle.
func (s *vehicleService) ListByCity(ctx context.Context, city string, params *utils.PaginationParams) (*VehiclePage, error) {
	city = strings.TrimSpace(city)
	if strings.EqualFold(city, CityAll) {
		city = ""
	}
	if params == nil {
		params = utils.DefaultPaginationParams()
	}
	params.Normalize()

	key := ""
	if s.cache != nil {
		version, err := s.cache.GetInt(ctx, utils.CacheVehicleVersion)
		if err != nil {
			s.logger.WithError(err).Debug("Vehicle list version read failed")
		} else {
			key = vehicleListKey(version, city, params)
			var cached VehiclePage
			if err := s.cache.Get(ctx, key, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	vehicles, total, err := s.store.Vehicles().List(ctx, interfaces.VehicleFilter{
		City:          city,
		AvailableOnly: true,
	}, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	page := &VehiclePage{Vehicles: vehicles, Total: total}

	if key != "" {
		if err := s.cache.Set(ctx, key, page, s.opts.CacheTTL); err != nil {
			s.logger.WithError(err).Debug("Vehicle list cache write failed")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"city":  city,
		"count": len(vehicles),
		"total": total,
	}).Debug("Listed vehicles by city")

	return page, nil
}

func (s *vehicleService) ListByProvider(ctx context.Context, providerID uint64) ([]*models.Vehicle, error) {
	vehicles, _, err := s.store.Vehicles().List(ctx, interfaces.VehicleFilter{ProviderID: &providerID}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *vehicleService) UploadImage(ctx context.Context, providerID uint64, filename string, r io.Reader) (*ImageUploadResult, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	if err := s.requireProvider(ctx, providerID); err != nil {
		return nil, err
	}

	img, err := utils.ResizeToWidth(r, filename, s.opts.MaxImageWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVehicle, err)
	}

	key := storage.ObjectKey("vehicles", img.Extension, time.Now().UTC())
	resp, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:          key,
		Reader:       bytes.NewReader(img.Data),
		ContentType:  img.ContentType,
		Size:         int64(len(img.Data)),
		CacheControl: "public, max-age=31536000",
		Metadata: map[string]string{
			"provider_id": fmt.Sprintf("%d", providerID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.LogUserAction(providerID, "vehicle.image_uploaded", map[string]interface{}{
		"key":  resp.Key,
		"size": resp.Size,
	})

	return &ImageUploadResult{
		URL:    resp.URL,
		Key:    resp.Key,
		Size:   int64(len(img.Data)),
		Width:  img.Dimensions.Width,
		Height: img.Dimensions.Height,
	}, nil
}

func (s *vehicleService) requireProvider(ctx context.Context, userID uint64) error {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsProvider() {
		return ErrUnauthorized
	}
	return nil
}

func checkVehicle(request *CreateVehicleRequest) error {
	maxYear := time.Now().Year() + 1
	switch {
	case strings.TrimSpace(request.Make) == "":
		return fmt.Errorf("%w: make is required", ErrInvalidVehicle)
	case strings.TrimSpace(request.Model) == "":
		return fmt.Errorf("%w: model is required", ErrInvalidVehicle)
	case request.Year < 1900 || request.Year > maxYear:
		return fmt.Errorf("%w: year must be between 1900 and %d", ErrInvalidVehicle, maxYear)
	case request.Price <= 0 || request.Price > utils.MaxVehiclePrice:
		return fmt.Errorf("%w: price must be between 1 and %d", ErrInvalidVehicle, utils.MaxVehiclePrice)
	case !request.Type.IsValid():
		return fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidVehicle, request.Type)
	case !request.FuelType.IsValid():
		return fmt.Errorf("%w: unknown fuel type %q", ErrInvalidVehicle, request.FuelType)
	}
	return nil
}
