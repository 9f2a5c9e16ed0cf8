package postgres

import (
	"context"

	"gorm.io/gorm"

	"vehicle-rental/internal/models"
)

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	tx.ID = 0
	return translate(r.db.WithContext(ctx).Create(tx).Error, "create transaction")
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&tx).Error; err != nil {
		return nil, translate(err, "get transaction by reference")
	}
	return &tx, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uint64) ([]*models.Transaction, error) {
	txs := make([]*models.Transaction, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&txs).Error; err != nil {
		return nil, translate(err, "list transactions")
	}
	return txs, nil
}
