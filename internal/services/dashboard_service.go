package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/pkg/logger"
)

type DashboardService interface {
	Stats(ctx context.Context, principal Principal) (*DashboardStats, error)
}

// DashboardStats summarises the bookings visible to the caller. TotalSpent is set for customers,
// TotalEarned for providers; both skip cancelled bookings.
type DashboardStats struct {
	Role             models.UserRole              `json:"role"`
	TotalBookings    int                          `json:"total_bookings"`
	ActiveBookings   int                          `json:"active_bookings"`
	BookingsByStatus map[models.BookingStatus]int `json:"bookings_by_status"`
	VehiclesByType   map[models.VehicleType]int   `json:"vehicles_by_type"`
	TotalSpent       int64                        `json:"total_spent"`
	TotalEarned      int64                        `json:"total_earned"`
	WalletBalance    int64                        `json:"wallet_balance"`
}

type dashboardService struct {
	store    interfaces.Store
	bookings *bookingService
	logger   *logger.Logger
}

func NewDashboardService(store interfaces.Store, logger *logger.Logger) DashboardService {
	return &dashboardService{
		store:    store,
		bookings: &bookingService{store: store, logger: logger},
		logger:   logger,
	}
}

func (s *dashboardService) Stats(ctx context.Context, principal Principal) (*DashboardStats, error) {
	user, err := s.store.Users().GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	bookings, err := s.bookings.ListForUser(ctx, Principal{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, err
	}

	vehicles, err := s.relevantVehicles(ctx, user, bookings)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Role:             user.Role,
		TotalBookings:    len(bookings),
		BookingsByStatus: make(map[models.BookingStatus]int, len(models.BookingStatuses)),
		VehiclesByType:   make(map[models.VehicleType]int, len(models.VehicleTypes)),
		WalletBalance:    user.WalletBalance,
	}

	for _, status := range models.BookingStatuses {
		stats.BookingsByStatus[status] = 0
	}
	for status, group := range lo.GroupBy(bookings, func(b *models.Booking) models.BookingStatus { return b.Status }) {
		stats.BookingsByStatus[status] = len(group)
	}

	stats.ActiveBookings = lo.CountBy(bookings, func(b *models.Booking) bool { return IsActive(b.Status) })

	for vehicleType, group := range lo.GroupBy(vehicles, func(v *models.Vehicle) models.VehicleType { return v.Type }) {
		stats.VehiclesByType[vehicleType] = len(group)
	}

	billable := lo.SumBy(
		lo.Filter(bookings, func(b *models.Booking, _ int) bool { return b.Status != models.BookingStatusCancelled }),
		func(b *models.Booking) int64 { return b.TotalAmount },
	)
	if user.IsProvider() {
		stats.TotalEarned = billable
	} else {
		stats.TotalSpent = billable
	}

	return stats, nil
}

// relevantVehicles is the provider's fleet, or the distinct vehicles a customer has booked.
func (s *dashboardService) relevantVehicles(ctx context.Context, user *models.User, bookings []*models.Booking) ([]*models.Vehicle, error) {
	filter := interfaces.VehicleFilter{}
	if user.IsProvider() {
		filter.ProviderID = &user.ID
	} else {
		filter.IDs = lo.Uniq(lo.Map(bookings, func(b *models.Booking, _ int) uint64 { return b.VehicleID }))
	}

	vehicles, _, err := s.store.Vehicles().List(ctx, filter, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}
