// Package common defines shared constants and sentinel errors used across
// client and server layers of ProjectHub. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid credentials")

	// Validation errors. Returned before any persistence call.
	ErrInvalidInput = errors.New("invalid input")

	// Auth gate errors.
	ErrUnauthenticated = errors.New("please authenticate")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrTokenRevoked    = errors.New("token is revoked, please log in again")

	// Membership errors.
	ErrDuplicateName = errors.New("project name must be unique")
	ErrInvalidUser   = errors.New("one or more users do not exist")
	ErrEmailTaken    = errors.New("email already registered")

	// Downstream dependency failure (database, revocation store, timeout).
	ErrStoreUnavailable = errors.New("store unavailable")
)
