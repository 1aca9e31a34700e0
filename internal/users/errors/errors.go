package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrDuplicate = errors.New("user email already exists")
)
