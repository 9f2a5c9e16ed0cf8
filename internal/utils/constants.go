package utils

import "time"

// Application Constants
const (
	AppName    = "vehicle-rental"
	AppVersion = "1.0.0"

	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 6
	PasswordMaxLength  = 128

	// Booking
	RentalDay       = 24 * time.Hour
	MaxVehiclePrice = 1_000_000

	// Wallet
	MaxTopUpAmount = 1_000_000

	// File Upload
	MaxImageSize = 10 * 1024 * 1024
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials  = "invalid credentials"
	ErrUserNotFound        = "user not found"
	ErrUserExists          = "username already exists"
	ErrInvalidToken        = "invalid token"
	ErrTokenExpired        = "token expired"
	ErrInvalidInput        = "invalid input"
	ErrInternalServer      = "internal server error"
	ErrUnauthorized        = "unauthorized"
	ErrForbidden           = "forbidden"
	ErrNotFound            = "not found"
	ErrConflict            = "conflict"
	ErrValidationFailed    = "validation failed"
	ErrFileUploadFailed    = "file upload failed"
	ErrPaymentFailed       = "payment failed"
	ErrVehicleNotAvailable = "vehicle not available"
	ErrInvalidDateRange    = "end date must be after start date"
	ErrInvalidAmount       = "amount must be greater than zero"
)

// Context keys set by middleware
const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextRequestID = "request_id"
)

// Cache Keys
const (
	CacheVehiclePrefix      = "vehicle:"
	CacheVehicleListPrefix  = "vehicles:list:"
	CacheVehicleVersion     = "vehicles:version"
)

// Event Types
const (
	EventUserRegistered       = "user.registered"
	EventUserLogin            = "user.login"
	EventVehicleCreated       = "vehicle.created"
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventWalletTopUp          = "wallet.topup"
	EventPaymentIntentCreated = "payment.intent_created"
	EventReviewCreated        = "review.created"
)

// Pub/Sub channels
const (
	ChannelBookingEvents = "booking_events"
)

var AllowedImageTypes = []string{"jpg", "jpeg", "png"}
