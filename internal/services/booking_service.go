package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, customerID, vehicleID uint64, startDate, endDate time.Time) (*models.Booking, error)
	GetByID(ctx context.Context, principal Principal, bookingID uint64) (*models.Booking, error)
	ListForUser(ctx context.Context, principal Principal) ([]*models.Booking, error)

	// UpdateStatus writes any of the four statuses; completed and cancelled free the vehicle.
	UpdateStatus(ctx context.Context, bookingID uint64, status models.BookingStatus) (*models.Booking, error)
	UpdateStatusAs(ctx context.Context, principal Principal, bookingID uint64, status models.BookingStatus) (*models.Booking, error)
}

type bookingService struct {
	store    interfaces.Store
	notifier NotificationService
	cache    CacheService
	logger   *logger.Logger
}

func NewBookingService(
	store interfaces.Store,
	notifier NotificationService,
	cache CacheService,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		store:    store,
		notifier: notifier,
		cache:    cache,
		logger:   logger,
	}
}

func (s *bookingService) Create(ctx context.Context, customerID, vehicleID uint64, startDate, endDate time.Time) (*models.Booking, error) {
	vehicle, err := s.store.Vehicles().GetByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if !IsBookable(vehicle) {
		return nil, ErrVehicleUnavailable
	}

	if !endDate.After(startDate) {
		return nil, ErrInvalidRange
	}

	total, err := TotalAmount(vehicle.Price, startDate, endDate)
	if err != nil {
		return nil, err
	}

	// Reserve first: only one concurrent request can flip the flag.
	if err := s.store.Vehicles().SetAvailability(ctx, vehicleID, true, false); err != nil {
		if errors.Is(err, interfaces.ErrVehicleUnavailable) {
			return nil, ErrVehicleUnavailable
		}
		return nil, fmt.Errorf("failed to reserve vehicle: %w", err)
	}

	booking := &models.Booking{
		VehicleID:     vehicleID,
		CustomerID:    customerID,
		StartDate:     startDate.UTC(),
		EndDate:       endDate.UTC(),
		Status:        models.BookingStatusPending,
		TotalAmount:   total,
		PaymentStatus: models.PaymentStatusCompleted,
	}

	if err := s.store.Bookings().Create(ctx, booking); err != nil {
		s.release(context.WithoutCancel(ctx), vehicleID)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	invalidateVehicle(ctx, s.cache, s.logger, vehicleID)

	s.logger.LogBookingEvent(booking.ID, utils.EventBookingCreated, map[string]interface{}{
		"vehicle_id":   vehicleID,
		"customer_id":  customerID,
		"total_amount": booking.TotalAmount,
		"days":         RentalDays(startDate, endDate),
	})
	s.notify(ctx, utils.EventBookingCreated, booking, vehicle, vehicle.ProviderID)

	return booking, nil
}

// release undoes a reservation whose booking insert failed.
func (s *bookingService) release(ctx context.Context, vehicleID uint64) {
	if err := s.store.Vehicles().SetAvailability(ctx, vehicleID, false, true); err != nil {
		s.logger.WithError(err).WithField("vehicle_id", vehicleID).Error("Failed to release vehicle after booking failure")
	}
}

func (s *bookingService) GetByID(ctx context.Context, principal Principal, bookingID uint64) (*models.Booking, error) {
	booking, vehicle, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !canAccessBooking(principal, booking, vehicle) {
		return nil, ErrUnauthorized
	}

	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, principal Principal) ([]*models.Booking, error) {
	filter, err := s.visibleBookings(ctx, principal)
	if err != nil {
		return nil, err
	}

	bookings, err := s.store.Bookings().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// visibleBookings scopes bookings to the caller: customers see their own, providers see those on their fleet.
func (s *bookingService) visibleBookings(ctx context.Context, principal Principal) (interfaces.BookingFilter, error) {
	switch principal.Role {
	case models.UserRoleCustomer:
		return interfaces.BookingFilter{CustomerID: &principal.UserID}, nil
	case models.UserRoleProvider:
		ids, err := providerVehicleIDs(ctx, s.store, principal.UserID)
		if err != nil {
			return interfaces.BookingFilter{}, err
		}
		return interfaces.BookingFilter{VehicleIDs: ids}, nil
	default:
		return interfaces.BookingFilter{VehicleIDs: []uint64{}}, nil
	}
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID uint64, status models.BookingStatus) (*models.Booking, error) {
	booking, vehicle, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.updateStatus(ctx, booking, vehicle, status)
}

func (s *bookingService) UpdateStatusAs(ctx context.Context, principal Principal, bookingID uint64, status models.BookingStatus) (*models.Booking, error) {
	booking, vehicle, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !canAccessBooking(principal, booking, vehicle) {
		s.logger.LogSecurityEvent("booking_status_denied", "low", map[string]interface{}{
			"user_id":    principal.UserID,
			"booking_id": bookingID,
			"status":     status,
		})
		return nil, ErrUnauthorized
	}

	return s.updateStatus(ctx, booking, vehicle, status)
}

func (s *bookingService) updateStatus(ctx context.Context, booking *models.Booking, vehicle *models.Vehicle, status models.BookingStatus) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	previous := booking.Status
	updated, err := s.store.Bookings().Update(ctx, booking.ID, &interfaces.BookingUpdate{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if ReleasesVehicle(status) {
		err := s.store.Vehicles().SetAvailability(ctx, booking.VehicleID, false, true)
		switch {
		case err == nil:
			invalidateVehicle(ctx, s.cache, s.logger, booking.VehicleID)
		case errors.Is(err, interfaces.ErrVehicleUnavailable):
			// already available
		default:
			return nil, fmt.Errorf("failed to release vehicle: %w", err)
		}
	}

	s.logger.LogBookingEvent(updated.ID, utils.EventBookingStatusChanged, map[string]interface{}{
		"from": previous,
		"to":   status,
	})

	recipients := []uint64{updated.CustomerID}
	if vehicle != nil {
		recipients = append(recipients, vehicle.ProviderID)
	}
	s.notify(ctx, utils.EventBookingStatusChanged, updated, vehicle, recipients...)

	return updated, nil
}

// load fetches a booking and its vehicle. The vehicle is nil if it has since gone missing.
func (s *bookingService) load(ctx context.Context, bookingID uint64) (*models.Booking, *models.Vehicle, error) {
	booking, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get booking: %w", err)
	}

	vehicle, err := s.store.Vehicles().GetByID(ctx, booking.VehicleID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return booking, vehicle, nil
}

func (s *bookingService) notify(ctx context.Context, event string, booking *models.Booking, vehicle *models.Vehicle, recipients ...uint64) {
	if s.notifier == nil {
		return
	}
	// errors are logged by the notifier
	_ = s.notifier.NotifyBooking(ctx, event, booking, vehicle, recipients...)
}

func canAccessBooking(principal Principal, booking *models.Booking, vehicle *models.Vehicle) bool {
	if principal.UserID == booking.CustomerID {
		return true
	}
	return vehicle != nil && principal.UserID == vehicle.ProviderID
}

func providerVehicleIDs(ctx context.Context, store interfaces.Store, providerID uint64) ([]uint64, error) {
	vehicles, _, err := store.Vehicles().List(ctx, interfaces.VehicleFilter{ProviderID: &providerID}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider vehicles: %w", err)
	}

	ids := make([]uint64, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.ID)
	}
	return ids, nil
}
