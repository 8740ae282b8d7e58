// Package common defines shared constants and sentinel errors used across
// the TruthLens client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// Transport-level errors (real backend or simulated failure).
	ErrUnavailable = errors.New("server error, please try again")

	// Auth errors.
	ErrUnauthorized     = errors.New("session expired")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Validation errors carry a field-specific message wrapped around this
	// sentinel, e.g. fmt.Errorf("%w: Username must be at least 3 characters", ErrValidation).
	ErrValidation = errors.New("validation error")

	// Email-change challenge errors.
	ErrChallengeNotFound = errors.New("session not found")
	ErrChallengeExpired  = errors.New("verification code expired")
	ErrTooManyAttempts   = errors.New("too many attempts")
	ErrCodeMismatch      = errors.New("incorrect verification code")
)
