package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental/internal/models"
)

type transactionRepository struct {
	collection *mongo.Collection
	seq        *sequence
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	id, err := r.seq.next(ctx, transactionsCollection)
	if err != nil {
		return err
	}

	tx.ID = id
	tx.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("failed to create transaction: %w", insertError(err))
	}

	return nil
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	return findOne[models.Transaction](ctx, r.collection, bson.M{"reference": reference})
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uint64) ([]*models.Transaction, error) {
	return findAll[models.Transaction](ctx, r.collection, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
}
