package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/pkg/database"
)

// Store is the PostgreSQL-backed entity store. Ids come from bigserial columns.
type Store struct {
	pg *database.Postgres
}

var _ interfaces.Store = (*Store)(nil)

func NewStore(pg *database.Postgres) *Store {
	return &Store{pg: pg}
}

// Migrate creates the tables with the same columns and checks the in-memory store enforces.
func (s *Store) Migrate() error {
	return s.pg.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Booking{},
		&models.Review{},
		&models.Transaction{},
	)
}

func (s *Store) Users() interfaces.UserRepository {
	return &userRepository{db: s.pg.DB}
}

func (s *Store) Vehicles() interfaces.VehicleRepository {
	return &vehicleRepository{db: s.pg.DB}
}

func (s *Store) Bookings() interfaces.BookingRepository {
	return &bookingRepository{db: s.pg.DB}
}

func (s *Store) Reviews() interfaces.ReviewRepository {
	return &reviewRepository{db: s.pg.DB}
}

func (s *Store) Transactions() interfaces.TransactionRepository {
	return &transactionRepository{db: s.pg.DB}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pg.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.pg.Close()
}

func translate(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return interfaces.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return interfaces.ErrDuplicate
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, id uint64) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Limit(1).Count(&n).Error; err != nil {
		return false, translate(err, "check record")
	}
	return n > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
