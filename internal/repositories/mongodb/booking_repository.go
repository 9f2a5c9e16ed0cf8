package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type bookingRepository struct {
	collection *mongo.Collection
	seq        *sequence
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	id, err := r.seq.next(ctx, bookingsCollection)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", insertError(err))
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint64) (*models.Booking, error) {
	return findOne[models.Booking](ctx, r.collection, bson.M{"_id": id})
}

func (r *bookingRepository) List(ctx context.Context, filter interfaces.BookingFilter) ([]*models.Booking, error) {
	query := bson.M{}
	if filter.CustomerID != nil {
		query["customer_id"] = *filter.CustomerID
	}
	if filter.VehicleID != nil {
		query["vehicle_id"] = *filter.VehicleID
	} else if filter.VehicleIDs != nil {
		query["vehicle_id"] = bson.M{"$in": filter.VehicleIDs}
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}

	return findAll[models.Booking](ctx, r.collection, query, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
}

func (r *bookingRepository) Update(ctx context.Context, id uint64, update *interfaces.BookingUpdate) (*models.Booking, error) {
	return updateOne[models.Booking](ctx, r.collection, id, update.Fields())
}
