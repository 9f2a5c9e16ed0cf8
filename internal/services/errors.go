package services

import (
	"errors"

	"vehicle-rental/internal/repositories/interfaces"
)

var (
	ErrNotFound           = interfaces.ErrNotFound
	ErrVehicleUnavailable = interfaces.ErrVehicleUnavailable

	ErrUnauthorized        = errors.New("not authorized for this resource")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrWeakPassword        = errors.New("password too short")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidRange        = errors.New("end date must be after start date")
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidVehicle      = errors.New("invalid vehicle data")
	ErrInvalidRole         = errors.New("invalid user role")
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrAlreadyReviewed     = errors.New("booking already reviewed")
	ErrDuplicatePayment    = errors.New("payment already recorded")
	ErrPaymentFailed       = errors.New("payment failed")
	ErrStorageUnavailable  = errors.New("file storage not configured")
)
