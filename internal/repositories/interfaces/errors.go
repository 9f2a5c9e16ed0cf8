package interfaces

import "errors"

var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique field (username, review booking, payment reference) is taken.
	ErrDuplicate = errors.New("duplicate record")

	// ErrVehicleUnavailable is returned by SetAvailability when the flag does not hold the expected value.
	ErrVehicleUnavailable = errors.New("vehicle availability changed")

	// ErrInsufficientBalance is returned when a balance adjustment would go below zero.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// ErrBalanceOverflow is returned when a credit would take the balance past the int64 range.
	ErrBalanceOverflow = errors.New("wallet balance overflow")
)
