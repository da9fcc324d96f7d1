package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound = errors.New("resource not found")

	// Input errors
	ErrNilRows     = errors.New("rows argument is nil")
	ErrNilHeaders  = errors.New("headers argument is nil")
	ErrEmptyHeader = errors.New("header name is empty")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrNilRows) ||
		errors.Is(err, ErrNilHeaders) ||
		errors.Is(err, ErrEmptyHeader)
}
