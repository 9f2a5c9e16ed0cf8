package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/pkg/database"
)

const (
	usersCollection        = "users"
	vehiclesCollection     = "vehicles"
	bookingsCollection     = "bookings"
	reviewsCollection      = "reviews"
	transactionsCollection = "transactions"
	countersCollection     = "counters"
)

// Store is the MongoDB-backed entity store.
type Store struct {
	db  *database.MongoDB
	seq *sequence
}

var _ interfaces.Store = (*Store)(nil)

func NewStore(db *database.MongoDB) *Store {
	return &Store{
		db:  db,
		seq: &sequence{collection: db.Collection(countersCollection)},
	}
}

func (s *Store) Users() interfaces.UserRepository {
	return &userRepository{collection: s.db.Collection(usersCollection), seq: s.seq}
}

func (s *Store) Vehicles() interfaces.VehicleRepository {
	return &vehicleRepository{collection: s.db.Collection(vehiclesCollection), seq: s.seq}
}

func (s *Store) Bookings() interfaces.BookingRepository {
	return &bookingRepository{collection: s.db.Collection(bookingsCollection), seq: s.seq}
}

func (s *Store) Reviews() interfaces.ReviewRepository {
	return &reviewRepository{collection: s.db.Collection(reviewsCollection), seq: s.seq}
}

func (s *Store) Transactions() interfaces.TransactionRepository {
	return &transactionRepository{collection: s.db.Collection(transactionsCollection), seq: s.seq}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}

// sequence hands out per-collection ids from the counters collection. An id taken by a
// failed insert is skipped, never reused.
type sequence struct {
	collection *mongo.Collection
}

func (s *sequence) next(ctx context.Context, name string) (uint64, error) {
	var counter struct {
		Seq uint64 `bson:"seq"`
	}

	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", name, err)
	}

	return counter.Seq, nil
}

func findOne[T any](ctx context.Context, collection *mongo.Collection, filter interface{}) (*T, error) {
	var doc T
	if err := collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s: %w", collection.Name(), err)
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", collection.Name(), err)
		}
		docs = append(docs, &doc)
	}

	return docs, cursor.Err()
}

// updateOne applies $set and returns the updated document.
func updateOne[T any](ctx context.Context, collection *mongo.Collection, id uint64, fields map[string]interface{}) (*T, error) {
	var doc T
	err := collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update %s: %w", collection.Name(), err)
	}
	return &doc, nil
}

func exists(ctx context.Context, collection *mongo.Collection, id uint64) (bool, error) {
	n, err := collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", collection.Name(), err)
	}
	return n > 0, nil
}

func insertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return interfaces.ErrDuplicate
	}
	return err
}
