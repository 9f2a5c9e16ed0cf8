package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
	"vehicle-rental/pkg/push"
	"vehicle-rental/pkg/websocket"
)

type NotificationService interface {
	// NotifyBooking fans a booking event out to each recipient. Failures are logged and returned
	// aggregated; callers treat them as non-fatal.
	NotifyBooking(ctx context.Context, event string, booking *models.Booking, vehicle *models.Vehicle, recipients ...uint64) error
}

// RealtimeSender delivers a frame to every open connection of a user.
type RealtimeSender interface {
	SendToUser(userID uint64, msg *websocket.Message) error
}

// BookingEvent is the payload published on the booking events channel.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  uint64 `json:"booking_id"`
	VehicleID  uint64 `json:"vehicle_id"`
	CustomerID uint64 `json:"customer_id"`
	ProviderID uint64 `json:"provider_id"`
	Status     string `json:"status"`
	Timestamp  int64  `json:"timestamp"`
}

type notificationService struct {
	realtime    RealtimeSender
	cache       CacheService
	push        push.PushProvider
	topicPrefix string
	logger      *logger.Logger
}

// NewNotificationService wires the optional channels. Any of realtime, cache and pushProvider may be nil.
func NewNotificationService(
	realtime RealtimeSender,
	cache CacheService,
	pushProvider push.PushProvider,
	topicPrefix string,
	logger *logger.Logger,
) NotificationService {
	return &notificationService{
		realtime:    realtime,
		cache:       cache,
		push:        pushProvider,
		topicPrefix: topicPrefix,
		logger:      logger,
	}
}

func (s *notificationService) NotifyBooking(ctx context.Context, event string, booking *models.Booking, vehicle *models.Vehicle, recipients ...uint64) error {
	now := time.Now().Unix()
	var result *multierror.Error

	payload := BookingEvent{
		Type:       event,
		BookingID:  booking.ID,
		VehicleID:  booking.VehicleID,
		CustomerID: booking.CustomerID,
		Status:     string(booking.Status),
		Timestamp:  now,
	}
	if vehicle != nil {
		payload.ProviderID = vehicle.ProviderID
	}

	if s.cache != nil {
		if err := s.cache.Publish(ctx, utils.ChannelBookingEvents, payload); err != nil {
			result = multierror.Append(result, fmt.Errorf("publish %s: %w", event, err))
		}
	}

	for _, userID := range lo.Uniq(recipients) {
		if s.realtime != nil {
			err := s.realtime.SendToUser(userID, &websocket.Message{
				Type:      event,
				BookingID: booking.ID,
				VehicleID: booking.VehicleID,
				Status:    string(booking.Status),
				Timestamp: now,
			})
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("websocket to user %d: %w", userID, err))
			}
		}

		if s.push != nil {
			_, err := s.push.SendNotification(ctx, &push.NotificationRequest{
				Topic:       s.topicPrefix + strconv.FormatUint(userID, 10),
				Title:       bookingTitle(event),
				Body:        fmt.Sprintf("Booking #%d is %s", booking.ID, booking.Status),
				CollapseKey: fmt.Sprintf("booking_%d", booking.ID),
				Data: map[string]string{
					"type":       event,
					"booking_id": strconv.FormatUint(booking.ID, 10),
					"vehicle_id": strconv.FormatUint(booking.VehicleID, 10),
					"status":     string(booking.Status),
				},
			})
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("push to user %d: %w", userID, err))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).WithField("event", event).Warn("Booking notification partially failed")
		return err
	}
	return nil
}

func bookingTitle(event string) string {
	switch event {
	case utils.EventBookingCreated:
		return "New booking request"
	case utils.EventBookingStatusChanged:
		return "Booking updated"
	default:
		return "Booking"
	}
}
