package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/repositories/memory"
	"vehicle-rental/pkg/cache"
	"vehicle-rental/pkg/logger"
	"vehicle-rental/pkg/payment"
	"vehicle-rental/pkg/websocket"
)

type fixture struct {
	store    *memory.Store
	provider *models.User
	customer *models.User
	vehicle  *models.Vehicle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	provider := &models.User{Username: "provider", Role: models.UserRoleProvider, City: "Pune"}
	customer := &models.User{Username: "customer", Role: models.UserRoleCustomer, City: "Pune"}
	require.NoError(t, store.Users().Create(ctx, provider))
	require.NoError(t, store.Users().Create(ctx, customer))

	vehicle := &models.Vehicle{
		ProviderID: provider.ID,
		Make:       "Honda",
		Model:      "City",
		Year:       2022,
		Price:      50,
		City:       "Pune",
		Available:  true,
		Type:       models.VehicleTypeCar,
		FuelType:   models.FuelTypePetrol,
	}
	require.NoError(t, store.Vehicles().Create(ctx, vehicle))

	return &fixture{store: store, provider: provider, customer: customer, vehicle: vehicle}
}

func (f *fixture) addVehicle(t *testing.T, city string, price int64, vehicleType models.VehicleType) *models.Vehicle {
	t.Helper()
	v := &models.Vehicle{
		ProviderID: f.provider.ID,
		Make:       "Maruti",
		Model:      "Swift",
		Year:       2021,
		Price:      price,
		City:       city,
		Available:  true,
		Type:       vehicleType,
		FuelType:   models.FuelTypePetrol,
	}
	require.NoError(t, f.store.Vehicles().Create(context.Background(), v))
	return v
}

func (f *fixture) vehicleAvailable(t *testing.T, id uint64) bool {
	t.Helper()
	v, err := f.store.Vehicles().GetByID(context.Background(), id)
	require.NoError(t, err)
	return v.Available
}

func (f *fixture) customerPrincipal() Principal {
	return Principal{UserID: f.customer.ID, Role: models.UserRoleCustomer}
}

func (f *fixture) providerPrincipal() Principal {
	return Principal{UserID: f.provider.ID, Role: models.UserRoleProvider}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type sentNotification struct {
	event      string
	bookingID  uint64
	status     models.BookingStatus
	recipients []uint64
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) NotifyBooking(ctx context.Context, event string, booking *models.Booking, vehicle *models.Vehicle, recipients ...uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{event: event, bookingID: booking.ID, status: booking.Status, recipients: recipients})
	return nil
}

func (n *recordingNotifier) events() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

type recordingRealtime struct {
	mu       sync.Mutex
	messages map[uint64][]*websocket.Message
}

func (r *recordingRealtime) SendToUser(userID uint64, msg *websocket.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.messages == nil {
		r.messages = make(map[uint64][]*websocket.Message)
	}
	r.messages[userID] = append(r.messages[userID], msg)
	return nil
}

// memoryCache stands in for Redis.
type memoryCache struct {
	mu        sync.Mutex
	values    map[string][]byte
	counters  map[string]int64
	published map[string][][]byte
	hits      int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		values:    make(map[string][]byte),
		counters:  make(map[string]int64),
		published: make(map[string][][]byte),
	}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.values[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	c.hits++
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = data
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *memoryCache) Increment(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

func (c *memoryCache) GetInt(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[key], nil
}

func (c *memoryCache) Publish(ctx context.Context, channel string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published[channel] = append(c.published[channel], data)
	return nil
}

// interleavingCache runs beforeSet once, just ahead of the first Set, to land a write between
// a store read and the cache fill that follows it.
type interleavingCache struct {
	*memoryCache
	once      sync.Once
	beforeSet func()
}

func (c *interleavingCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.once.Do(c.beforeSet)
	return c.memoryCache.Set(ctx, key, value, expiration)
}

// failingPayments declines everything.
type failingPayments struct{}

func (failingPayments) Name() string { return "failing" }

func (failingPayments) CreateIntent(ctx context.Context, request *payment.IntentRequest) (*payment.Intent, error) {
	return nil, errors.New("card declined")
}

func (failingPayments) Confirm(ctx context.Context, intentID string) (*payment.Confirmation, error) {
	return nil, errors.New("card declined")
}

// failingBookingStore rejects every booking insert.
type failingBookingStore struct {
	*memory.Store
}

func (s failingBookingStore) Bookings() interfaces.BookingRepository {
	return failingBookings{s.Store.Bookings()}
}

type failingBookings struct {
	interfaces.BookingRepository
}

func (failingBookings) Create(ctx context.Context, booking *models.Booking) error {
	return errors.New("disk full")
}

func nopLogger() *logger.Logger {
	return logger.NewNopLogger()
}
