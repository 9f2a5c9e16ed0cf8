package memory

import (
	"context"
	"math"
	"time"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type userRepository struct {
	table *table[models.User]
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	created, err := r.table.insert(*user, func(existing []models.User, row *models.User, id uint64) error {
		for i := range existing {
			if existing[i].Username == row.Username {
				return interfaces.ErrDuplicate
			}
		}
		now := time.Now().UTC()
		row.ID = id
		row.CreatedAt = now
		row.UpdatedAt = now
		return nil
	})
	if err != nil {
		return err
	}

	*user = created
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	user, ok := r.table.get(id)
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := r.table.find(func(u *models.User) bool {
		return u.Username == username
	})
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter interfaces.UserFilter) ([]*models.User, error) {
	return r.table.list(func(u *models.User) bool {
		if filter.Role != nil && u.Role != *filter.Role {
			return false
		}
		if filter.IDs != nil && !containsID(filter.IDs, u.ID) {
			return false
		}
		return true
	}), nil
}

func (r *userRepository) Update(ctx context.Context, id uint64, update *interfaces.UserUpdate) (*models.User, error) {
	user, err := r.table.update(id, func(u *models.User) error {
		if update.City != nil {
			u.City = *update.City
		}
		if update.IsVerified != nil {
			u.IsVerified = *update.IsVerified
		}
		if update.Password != nil {
			u.Password = *update.Password
		}
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AdjustWalletBalance(ctx context.Context, id uint64, delta int64) (int64, error) {
	user, err := r.table.update(id, func(u *models.User) error {
		if delta > 0 && u.WalletBalance > math.MaxInt64-delta {
			return interfaces.ErrBalanceOverflow
		}
		if u.WalletBalance+delta < 0 {
			return interfaces.ErrInsufficientBalance
		}
		u.WalletBalance += delta
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return user.WalletBalance, nil
}
