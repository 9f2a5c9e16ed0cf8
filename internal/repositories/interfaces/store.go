package interfaces

import "context"

// Store bundles the repositories of one backend so services can be wired from a single value.
type Store interface {
	Users() UserRepository
	Vehicles() VehicleRepository
	Bookings() BookingRepository
	Reviews() ReviewRepository
	Transactions() TransactionRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
