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

type reviewRepository struct {
	collection *mongo.Collection
	seq        *sequence
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	id, err := r.seq.next(ctx, reviewsCollection)
	if err != nil {
		return err
	}

	review.ID = id
	review.CreatedAt = time.Now().UTC()

	// booking_id carries a unique index, so a second review for the same booking fails here.
	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", insertError(err))
	}

	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint64) (*models.Review, error) {
	return findOne[models.Review](ctx, r.collection, bson.M{"_id": id})
}

func (r *reviewRepository) GetByBookingID(ctx context.Context, bookingID uint64) (*models.Review, error) {
	return findOne[models.Review](ctx, r.collection, bson.M{"booking_id": bookingID})
}

func (r *reviewRepository) List(ctx context.Context, filter interfaces.ReviewFilter) ([]*models.Review, error) {
	query := bson.M{}
	if filter.VehicleID != nil {
		query["vehicle_id"] = *filter.VehicleID
	}
	if filter.BookingID != nil {
		query["booking_id"] = *filter.BookingID
	}

	return findAll[models.Review](ctx, r.collection, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}
