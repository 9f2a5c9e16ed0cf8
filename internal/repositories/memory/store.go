package memory

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
)

// table is one entity kind. Ids are sequential from 1 and rows are never removed,
// so row id-1 is its index.
type table[T any] struct {
	mu   sync.RWMutex
	rows []T
}

// insert runs prepare under the write lock with the id the row will get. A prepare
// error aborts the insert without consuming the id.
func (t *table[T]) insert(row T, prepare func(existing []T, row *T, id uint64) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := uint64(len(t.rows)) + 1
	if err := prepare(t.rows, &row, id); err != nil {
		var zero T
		return zero, err
	}
	t.rows = append(t.rows, row)
	return row, nil
}

func (t *table[T]) get(id uint64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if id == 0 || id > uint64(len(t.rows)) {
		var zero T
		return zero, false
	}
	return t.rows[id-1], true
}

func (t *table[T]) find(match func(row *T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.rows {
		if match(&t.rows[i]) {
			return t.rows[i], true
		}
	}
	var zero T
	return zero, false
}

// list returns copies of matching rows in id order.
func (t *table[T]) list(match func(row *T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	matched := lo.Filter(t.rows, func(row T, _ int) bool {
		return match(&row)
	})
	return lo.Map(matched, func(row T, _ int) *T {
		return &row
	})
}

// update applies patch to the stored row under the write lock and returns the result.
func (t *table[T]) update(id uint64, patch func(row *T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	if id == 0 || id > uint64(len(t.rows)) {
		return zero, interfaces.ErrNotFound
	}

	row := t.rows[id-1]
	if err := patch(&row); err != nil {
		return zero, err
	}
	t.rows[id-1] = row
	return row, nil
}

func (t *table[T]) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = nil
}

// Store is the in-memory entity store. Each Store is independent; create one per process
// or per test.
type Store struct {
	users        table[models.User]
	vehicles     table[models.Vehicle]
	bookings     table[models.Booking]
	reviews      table[models.Review]
	transactions table[models.Transaction]
}

var _ interfaces.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Users() interfaces.UserRepository {
	return &userRepository{table: &s.users}
}

func (s *Store) Vehicles() interfaces.VehicleRepository {
	return &vehicleRepository{table: &s.vehicles}
}

func (s *Store) Bookings() interfaces.BookingRepository {
	return &bookingRepository{table: &s.bookings}
}

func (s *Store) Reviews() interfaces.ReviewRepository {
	return &reviewRepository{table: &s.reviews}
}

func (s *Store) Transactions() interfaces.TransactionRepository {
	return &transactionRepository{table: &s.transactions}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

// Reset drops every row and restarts all id sequences at 1.
func (s *Store) Reset() {
	s.users.reset()
	s.vehicles.reset()
	s.bookings.reset()
	s.reviews.reset()
	s.transactions.reset()
}

func containsID(ids []uint64, id uint64) bool {
	return lo.Contains(ids, id)
}
