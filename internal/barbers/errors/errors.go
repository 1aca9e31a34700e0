package errors

import "errors"

var (
	ErrNotFound = errors.New("barber not found")

	ErrDuplicate = errors.New("barber email already exists")
)
