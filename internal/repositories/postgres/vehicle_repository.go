package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
)

type vehicleRepository struct {
	db *gorm.DB
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = 0
	return translate(r.db.WithContext(ctx).Create(vehicle).Error, "create vehicle")
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint64) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return nil, translate(err, "get vehicle")
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter interfaces.VehicleFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Vehicle{})
	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("LOWER(city) LIKE ?", containsPattern(city))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count vehicles")
	}

	if params != nil {
		direction := "ASC"
		if params.Descending() {
			direction = "DESC"
		}
		query = query.
			Order(fmt.Sprintf("%s %s, id %s", params.SortField(), direction, direction)).
			Offset(params.GetSkip()).
			Limit(params.GetLimit())
	} else {
		query = query.Order("id ASC")
	}

	vehicles := make([]*models.Vehicle, 0)
	if err := query.Find(&vehicles).Error; err != nil {
		return nil, 0, translate(err, "list vehicles")
	}
	return vehicles, total, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id uint64, update *interfaces.VehicleUpdate) (*models.Vehicle, error) {
	fields := update.Fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	var vehicle models.Vehicle
	result := r.db.WithContext(ctx).Model(&vehicle).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, translate(result.Error, "update vehicle")
	}
	if result.RowsAffected == 0 {
		return nil, interfaces.ErrNotFound
	}
	return &vehicle, nil
}

func (r *vehicleRepository) SetAvailability(ctx context.Context, id uint64, from, to bool) error {
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ? AND available = ?", id, from).
		Update("available", to)
	if result.Error != nil {
		return translate(result.Error, "set vehicle availability")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	found, err := exists(ctx, r.db, &models.Vehicle{}, id)
	if err != nil {
		return err
	}
	if !found {
		return interfaces.ErrNotFound
	}
	return interfaces.ErrVehicleUnavailable
}
