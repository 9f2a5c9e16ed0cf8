package memory

import (
	"context"
	"time"

	"github.com/samber/lo"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type transactionRepository struct {
	table *table[models.Transaction]
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	created, err := r.table.insert(*tx, func(existing []models.Transaction, row *models.Transaction, id uint64) error {
		for i := range existing {
			if existing[i].Reference == row.Reference {
				return interfaces.ErrDuplicate
			}
		}
		row.ID = id
		row.CreatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return err
	}

	*tx = created
	return nil
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	tx, ok := r.table.find(func(t *models.Transaction) bool {
		return t.Reference == reference
	})
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &tx, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uint64) ([]*models.Transaction, error) {
	txs := r.table.list(func(t *models.Transaction) bool {
		return t.UserID == userID
	})
	return lo.Reverse(txs), nil
}
