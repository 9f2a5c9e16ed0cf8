package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
)

type vehicleRepository struct {
	collection *mongo.Collection
	seq        *sequence
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	id, err := r.seq.next(ctx, vehiclesCollection)
	if err != nil {
		return err
	}

	vehicle.ID = id
	vehicle.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, vehicle); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", insertError(err))
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint64) (*models.Vehicle, error) {
	return findOne[models.Vehicle](ctx, r.collection, bson.M{"_id": id})
}

func (r *vehicleRepository) List(ctx context.Context, filter interfaces.VehicleFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	query := bson.M{}
	if filter.ProviderID != nil {
		query["provider_id"] = *filter.ProviderID
	}
	if filter.AvailableOnly {
		query["available"] = true
	}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if filter.IDs != nil {
		query["_id"] = bson.M{"$in": filter.IDs}
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query["city"] = bson.M{"$regex": regexp.QuoteMeta(city), "$options": "i"}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if params != nil {
		order := 1
		if params.Descending() {
			order = -1
		}
		sortField := params.SortField()
		if sortField == "id" {
			sortField = "_id"
		}
		opts.SetSort(bson.D{{Key: sortField, Value: order}, {Key: "_id", Value: order}}).
			SetSkip(int64(params.GetSkip())).
			SetLimit(int64(params.GetLimit()))
	}

	vehicles, err := findAll[models.Vehicle](ctx, r.collection, query, opts)
	if err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id uint64, update *interfaces.VehicleUpdate) (*models.Vehicle, error) {
	fields := update.Fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}
	return updateOne[models.Vehicle](ctx, r.collection, id, fields)
}

func (r *vehicleRepository) SetAvailability(ctx context.Context, id uint64, from, to bool) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "available": from},
		bson.M{"$set": bson.M{"available": to}},
	)
	if err != nil {
		return fmt.Errorf("failed to set vehicle availability: %w", err)
	}
	if result.MatchedCount == 1 {
		return nil
	}

	found, err := exists(ctx, r.collection, id)
	if err != nil {
		return err
	}
	if !found {
		return interfaces.ErrNotFound
	}
	return interfaces.ErrVehicleUnavailable
}
