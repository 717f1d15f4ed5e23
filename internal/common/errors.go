// Package common defines shared constants and sentinel errors used across
// the storage, service and presentation layers of moviedb. Callers should
// use errors.Is / errors.As to match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Storage errors.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotInitialized     = errors.New("not initialized")

	// Registration / lookup conflicts. Concrete values are *ConflictError.
	ErrConflict = errors.New("already exists")

	// Auth errors. The messages are shown to the user as they are.
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrLoginFailed        = errors.New("Login failed. Please try again.")
	ErrRegistrationFailed = errors.New("Registration failed. Please try again.")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Watchlist errors.
	ErrWatchlistSave = errors.New("failed to save watchlist")

	// Remote catalog errors. Concrete values are *omdb.ProviderError.
	ErrProvider = errors.New("movie provider error")

	// Input errors. Concrete values are *ValidationError.
	ErrValidation = errors.New("validation error")
)

// ConflictError reports that a unique field is already taken.
type ConflictError struct {
	// Field is "username" or "email".
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "Already exists"
	}
	return strings.ToUpper(e.Field[:1]) + e.Field[1:] + " already exists"
}

// Is makes errors.Is(err, ErrConflict) hold for every *ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError describes malformed user input caught before any storage
// or network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
