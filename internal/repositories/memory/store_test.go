package memory

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
)

func newVehicle(providerID uint64, city string, price int64) *models.Vehicle {
	return &models.Vehicle{
		ProviderID: providerID,
		Make:       "Toyota",
		Model:      "Corolla",
		Year:       2022,
		Price:      price,
		City:       city,
		Available:  true,
		Type:       models.VehicleTypeCar,
		FuelType:   models.FuelTypePetrol,
	}
}

func TestSequentialIDsPerKind(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	u1 := &models.User{Username: "alice", Role: models.UserRoleProvider}
	u2 := &models.User{Username: "bob", Role: models.UserRoleCustomer}
	require.NoError(t, store.Users().Create(ctx, u1))
	require.NoError(t, store.Users().Create(ctx, u2))
	assert.EqualValues(t, 1, u1.ID)
	assert.EqualValues(t, 2, u2.ID)
	assert.False(t, u1.CreatedAt.IsZero())

	v := newVehicle(u1.ID, "Pune", 50)
	require.NoError(t, store.Vehicles().Create(ctx, v))
	assert.EqualValues(t, 1, v.ID, "vehicles have their own sequence")
}

func TestFailedInsertDoesNotConsumeID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Users().Create(ctx, &models.User{Username: "alice"}))
	err := store.Users().Create(ctx, &models.User{Username: "alice"})
	assert.ErrorIs(t, err, interfaces.ErrDuplicate)

	u := &models.User{Username: "carol"}
	require.NoError(t, store.Users().Create(ctx, u))
	assert.EqualValues(t, 2, u.ID)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Users().GetByID(ctx, 1)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	_, err = store.Vehicles().GetByID(ctx, 0)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	_, err = store.Bookings().GetByID(ctx, 99)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	_, err = store.Reviews().GetByBookingID(ctx, 1)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	_, err = store.Transactions().GetByReference(ctx, "x")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	v := newVehicle(1, "Pune", 50)
	require.NoError(t, store.Vehicles().Create(ctx, v))

	got, err := store.Vehicles().GetByID(ctx, v.ID)
	require.NoError(t, err)
	got.Available = false
	got.Price = 1

	again, err := store.Vehicles().GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, again.Available)
	assert.EqualValues(t, 50, again.Price)
}

func TestUpdateAppliesPatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	u := &models.User{Username: "alice", City: "Pune"}
	require.NoError(t, store.Users().Create(ctx, u))

	verified := true
	updated, err := store.Users().Update(ctx, u.ID, &interfaces.UserUpdate{IsVerified: &verified})
	require.NoError(t, err)
	assert.True(t, updated.IsVerified)
	assert.Equal(t, "Pune", updated.City, "unset patch fields are untouched")

	_, err = store.Users().Update(ctx, 42, &interfaces.UserUpdate{IsVerified: &verified})
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestVehicleListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Vehicles()

	require.NoError(t, repo.Create(ctx, newVehicle(1, "New Delhi", 30)))
	require.NoError(t, repo.Create(ctx, newVehicle(1, "Delhi", 80)))
	require.NoError(t, repo.Create(ctx, newVehicle(2, "Mumbai", 50)))
	require.NoError(t, repo.SetAvailability(ctx, 2, true, false))

	all, total, err := repo.List(ctx, interfaces.VehicleFilter{}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	delhi, _, err := repo.List(ctx, interfaces.VehicleFilter{City: "DELHI"}, nil)
	require.NoError(t, err)
	assert.Len(t, delhi, 2)

	availableDelhi, _, err := repo.List(ctx, interfaces.VehicleFilter{City: "delhi", AvailableOnly: true}, nil)
	require.NoError(t, err)
	require.Len(t, availableDelhi, 1)
	assert.EqualValues(t, 1, availableDelhi[0].ID)

	provider := uint64(2)
	mine, _, err := repo.List(ctx, interfaces.VehicleFilter{ProviderID: &provider}, nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mumbai", mine[0].City)

	none, _, err := repo.List(ctx, interfaces.VehicleFilter{IDs: []uint64{}}, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVehicleListPaginatesAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Vehicles()

	for _, price := range []int64{40, 10, 30, 20, 50} {
		require.NoError(t, repo.Create(ctx, newVehicle(1, "Pune", price)))
	}

	params := &utils.PaginationParams{Page: 1, PageSize: 2, Sort: "price", Order: "asc"}
	page, total, err := repo.List(ctx, interfaces.VehicleFilter{}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.EqualValues(t, 10, page[0].Price)
	assert.EqualValues(t, 20, page[1].Price)

	params = &utils.PaginationParams{Page: 1, PageSize: 10, Sort: "created_at", Order: "desc"}
	page, _, err = repo.List(ctx, interfaces.VehicleFilter{}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page[0].ID)
}

func TestSetAvailabilityIsCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Vehicles()

	v := newVehicle(1, "Pune", 50)
	require.NoError(t, repo.Create(ctx, v))

	require.NoError(t, repo.SetAvailability(ctx, v.ID, true, false))
	assert.ErrorIs(t, repo.SetAvailability(ctx, v.ID, true, false), interfaces.ErrVehicleUnavailable)
	assert.ErrorIs(t, repo.SetAvailability(ctx, 99, true, false), interfaces.ErrNotFound)
	require.NoError(t, repo.SetAvailability(ctx, v.ID, false, true))
}

func TestSetAvailabilityConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Vehicles()

	v := newVehicle(1, "Pune", 50)
	require.NoError(t, repo.Create(ctx, v))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.SetAvailability(ctx, v.ID, true, false) == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, wins)
}

func TestAdjustWalletBalanceNeverNegative(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	u := &models.User{Username: "bob"}
	require.NoError(t, users.Create(ctx, u))

	balance, err := users.AdjustWalletBalance(ctx, u.ID, 25)
	require.NoError(t, err)
	assert.EqualValues(t, 25, balance)

	_, err = users.AdjustWalletBalance(ctx, u.ID, -30)
	assert.ErrorIs(t, err, interfaces.ErrInsufficientBalance)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 25, got.WalletBalance)

	_, err = users.AdjustWalletBalance(ctx, 7, 10)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestAdjustWalletBalanceRejectsOverflow(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	u := &models.User{Username: "carol"}
	require.NoError(t, users.Create(ctx, u))

	balance, err := users.AdjustWalletBalance(ctx, u.ID, math.MaxInt64)
	require.NoError(t, err)
	assert.EqualValues(t, int64(math.MaxInt64), balance)

	_, err = users.AdjustWalletBalance(ctx, u.ID, 1)
	assert.ErrorIs(t, err, interfaces.ErrBalanceOverflow)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, int64(math.MaxInt64), got.WalletBalance)
}

func TestBookingListFiltersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	for _, b := range []*models.Booking{
		{VehicleID: 1, CustomerID: 10, Status: models.BookingStatusCompleted},
		{VehicleID: 2, CustomerID: 10, Status: models.BookingStatusPending},
		{VehicleID: 1, CustomerID: 11, Status: models.BookingStatusPending},
	} {
		require.NoError(t, repo.Create(ctx, b))
	}

	customer := uint64(10)
	mine, err := repo.List(ctx, interfaces.BookingFilter{CustomerID: &customer})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.EqualValues(t, 2, mine[0].ID)

	active, err := repo.List(ctx, interfaces.BookingFilter{
		VehicleIDs: []uint64{1},
		Statuses:   []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed},
	})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.EqualValues(t, 3, active[0].ID)

	status := models.BookingStatusCancelled
	updated, err := repo.Update(ctx, 3, &interfaces.BookingUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)
}

func TestReviewOncePerBooking(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Reviews()

	require.NoError(t, repo.Create(ctx, &models.Review{BookingID: 1, VehicleID: 3, Rating: 5}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Review{BookingID: 1, VehicleID: 3, Rating: 4}), interfaces.ErrDuplicate)

	vehicleID := uint64(3)
	reviews, err := repo.List(ctx, interfaces.ReviewFilter{VehicleID: &vehicleID})
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestTransactionReferenceUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()

	require.NoError(t, repo.Create(ctx, &models.Transaction{UserID: 1, Amount: 10, Reference: "pi_1"}))
	require.NoError(t, repo.Create(ctx, &models.Transaction{UserID: 1, Amount: 20, Reference: "pi_2"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Transaction{UserID: 1, Amount: 10, Reference: "pi_1"}), interfaces.ErrDuplicate)

	txs, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "pi_2", txs[0].Reference)
}

func TestResetRestartsSequences(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Users().Create(ctx, &models.User{Username: "alice"}))
	store.Reset()

	u := &models.User{Username: "alice"}
	require.NoError(t, store.Users().Create(ctx, u))
	assert.EqualValues(t, 1, u.ID)
}
