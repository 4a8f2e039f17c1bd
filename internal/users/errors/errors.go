package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrInvalidID = errors.New("invalid user ID format")

	// ErrEmailTaken maps the unique index violation on email.
	ErrEmailTaken = errors.New("email already registered")
)
