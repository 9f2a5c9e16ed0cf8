package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
)

type vehicleRepository struct {
	table *table[models.Vehicle]
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	created, err := r.table.insert(*vehicle, func(_ []models.Vehicle, row *models.Vehicle, id uint64) error {
		row.ID = id
		row.CreatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return err
	}

	*vehicle = created
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint64) (*models.Vehicle, error) {
	vehicle, ok := r.table.get(id)
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter interfaces.VehicleFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	city := strings.ToLower(strings.TrimSpace(filter.City))

	vehicles := r.table.list(func(v *models.Vehicle) bool {
		if filter.ProviderID != nil && v.ProviderID != *filter.ProviderID {
			return false
		}
		if filter.AvailableOnly && !v.Available {
			return false
		}
		if filter.Type != nil && v.Type != *filter.Type {
			return false
		}
		if filter.IDs != nil && !containsID(filter.IDs, v.ID) {
			return false
		}
		if city != "" && !strings.Contains(strings.ToLower(v.City), city) {
			return false
		}
		return true
	})

	total := int64(len(vehicles))
	if params == nil {
		return vehicles, total, nil
	}

	sortVehicles(vehicles, params)
	start, end := params.Bounds(len(vehicles))
	return vehicles[start:end], total, nil
}

func sortVehicles(vehicles []*models.Vehicle, params *utils.PaginationParams) {
	less := func(a, b *models.Vehicle) bool {
		switch params.SortField() {
		case "price":
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case "year":
			if a.Year != b.Year {
				return a.Year < b.Year
			}
		}
		// created_at and id share the insertion order
		return a.ID < b.ID
	}

	sort.SliceStable(vehicles, func(i, j int) bool {
		if params.Descending() {
			return less(vehicles[j], vehicles[i])
		}
		return less(vehicles[i], vehicles[j])
	})
}

func (r *vehicleRepository) Update(ctx context.Context, id uint64, update *interfaces.VehicleUpdate) (*models.Vehicle, error) {
	vehicle, err := r.table.update(id, func(v *models.Vehicle) error {
		if update.Price != nil {
			v.Price = *update.Price
		}
		if update.City != nil {
			v.City = *update.City
		}
		if update.ImageURL != nil {
			v.ImageURL = *update.ImageURL
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) SetAvailability(ctx context.Context, id uint64, from, to bool) error {
	_, err := r.table.update(id, func(v *models.Vehicle) error {
		if v.Available != from {
			return interfaces.ErrVehicleUnavailable
		}
		v.Available = to
		return nil
	})
	return err
}
