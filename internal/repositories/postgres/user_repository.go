package postgres

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = 0
	return translate(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *userRepository) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "get user by username")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter interfaces.UserFilter) ([]*models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}

	users := make([]*models.User, 0)
	if err := query.Order("id ASC").Find(&users).Error; err != nil {
		return nil, translate(err, "list users")
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id uint64, update *interfaces.UserUpdate) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Model(&user).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(update.Fields())
	if result.Error != nil {
		return nil, translate(result.Error, "update user")
	}
	if result.RowsAffected == 0 {
		return nil, interfaces.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) AdjustWalletBalance(ctx context.Context, id uint64, delta int64) (int64, error) {
	var user models.User
	query := r.db.WithContext(ctx).Model(&user).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "wallet_balance"}}}).
		Where("id = ?", id)
	switch {
	case delta < 0:
		query = query.Where("wallet_balance >= ?", -delta)
	case delta > 0:
		query = query.Where("wallet_balance <= ?", int64(math.MaxInt64)-delta)
	}

	result := query.Updates(map[string]interface{}{
		"wallet_balance": gorm.Expr("wallet_balance + ?", delta),
		"updated_at":     time.Now().UTC(),
	})
	if result.Error != nil {
		return 0, translate(result.Error, "adjust wallet balance")
	}
	if result.RowsAffected == 1 {
		return user.WalletBalance, nil
	}

	found, err := exists(ctx, r.db, &models.User{}, id)
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
