// Package common defines shared constants and sentinel errors used across
// client and server layers of todokeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors are raised before any store interaction.
	ErrorValidation = errors.New("validation error")

	// Store-level errors (persistence unavailable or a write failed).
	ErrorStore = errors.New("store error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
