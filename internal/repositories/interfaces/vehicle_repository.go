package interfaces

import (
	"context"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/utils"
)

// VehicleFilter narrows List. City matches case-insensitively as a substring and empty means
// any city. IDs restricts the result when non-nil, so an empty non-nil slice matches nothing.
type VehicleFilter struct {
	ProviderID    *uint64
	City          string
	AvailableOnly bool
	Type          *models.VehicleType
	IDs           []uint64
}

type VehicleUpdate struct {
	Price    *int64
	City     *string
	ImageURL *string
}

func (u *VehicleUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.City != nil {
		fields["city"] = *u.City
	}
	if u.ImageURL != nil {
		fields["image_url"] = *u.ImageURL
	}
	return fields
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uint64) (*models.Vehicle, error)

	// List returns matching vehicles and the total match count. A nil params returns everything in id order.
	List(ctx context.Context, filter VehicleFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	Update(ctx context.Context, id uint64, update *VehicleUpdate) (*models.Vehicle, error)

	// SetAvailability flips the availability flag from one value to another in a single step.
	// ErrVehicleUnavailable when the current value is not from, ErrNotFound when the vehicle is absent.
	SetAvailability(ctx context.Context, id uint64, from, to bool) error
}
