package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation targets a recipe or user
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned on a duplicate favorite/cart/follow
	// create, or on removal of an edge that was never created.
	ErrAlreadyExists = errors.New("already exists")

	// ErrSelfFollow is returned when a user tries to subscribe to themselves.
	ErrSelfFollow = errors.New("cannot subscribe to yourself")

	// ErrInvalidToken is returned for malformed or expired JWT tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials is returned when login email/password don't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports malformed user input with a field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
