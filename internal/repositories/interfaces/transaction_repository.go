package interfaces

import (
	"context"

	"vehicle-rental/internal/models"
)

type TransactionRepository interface {
	// Create appends a ledger row. ErrDuplicate when the reference was already recorded.
	Create(ctx context.Context, tx *models.Transaction) error
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	// ListByUser returns the user's rows, newest first.
	ListByUser(ctx context.Context, userID uint64) ([]*models.Transaction, error)
}
