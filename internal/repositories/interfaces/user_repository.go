package interfaces

import (
	"context"
	"time"

	"vehicle-rental/internal/models"
)

type UserFilter struct {
	Role *models.UserRole
	IDs  []uint64 // restricts when non-nil
}

type UserUpdate struct {
	City       *string
	IsVerified *bool
	Password   *string
}

func (u *UserUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{"updated_at": time.Now().UTC()}
	if u.City != nil {
		fields["city"] = *u.City
	}
	if u.IsVerified != nil {
		fields["is_verified"] = *u.IsVerified
	}
	if u.Password != nil {
		fields["password"] = *u.Password
	}
	return fields
}

type UserRepository interface {
	// Create assigns the next id. ErrDuplicate when the username is taken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]*models.User, error)
	Update(ctx context.Context, id uint64, update *UserUpdate) (*models.User, error)

	// AdjustWalletBalance atomically adds delta and returns the new balance.
	// ErrInsufficientBalance when the result would be negative, ErrBalanceOverflow when it would not fit.
	AdjustWalletBalance(ctx context.Context, id uint64, delta int64) (int64, error)
}
