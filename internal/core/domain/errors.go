package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
)

// ErrTransient marks storage/infrastructure faults that are safe to retry.
// Decision outcomes (not found, forbidden, ...) are never wrapped with it.
var ErrTransient = errors.New("transient storage failure")

// Transient wraps an unexpected storage error so callers can distinguish it
// from decision outcomes without seeing the underlying driver detail.
func Transient(err error) error {
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
