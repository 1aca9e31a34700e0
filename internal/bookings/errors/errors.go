package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrDuplicate is a unique index violation on (treatment, date, patient).
	ErrDuplicate = errors.New("booking already exists for treatment, date and patient")

	// ErrLockHeld means another request is creating the same booking.
	ErrLockHeld = errors.New("booking lock is held")
)
