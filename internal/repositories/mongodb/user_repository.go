package mongodb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type userRepository struct {
	collection *mongo.Collection
	seq        *sequence
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	id, err := r.seq.next(ctx, usersCollection)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", insertError(err))
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, bson.M{"_id": id})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, bson.M{"username": username})
}

func (r *userRepository) List(ctx context.Context, filter interfaces.UserFilter) ([]*models.User, error) {
	query := bson.M{}
	if filter.Role != nil {
		query["role"] = *filter.Role
	}
	if filter.IDs != nil {
		query["_id"] = bson.M{"$in": filter.IDs}
	}

	return findAll[models.User](ctx, r.collection, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *userRepository) Update(ctx context.Context, id uint64, update *interfaces.UserUpdate) (*models.User, error) {
	return updateOne[models.User](ctx, r.collection, id, update.Fields())
}

func (r *userRepository) AdjustWalletBalance(ctx context.Context, id uint64, delta int64) (int64, error) {
	filter := bson.M{"_id": id}
	switch {
	case delta < 0:
		filter["wallet_balance"] = bson.M{"$gte": -delta}
	case delta > 0:
		filter["wallet_balance"] = bson.M{"$lte": math.MaxInt64 - delta}
	}

	var user models.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{
			"$inc": bson.M{"wallet_balance": delta},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == nil {
		return user.WalletBalance, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("failed to adjust wallet balance: %w", err)
	}

	found, err := exists(ctx, r.collection, id)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, interfaces.ErrNotFound
	}
	if delta > 0 {
		return 0, interfaces.ErrBalanceOverflow
	}
	return 0, interfaces.ErrInsufficientBalance
}
