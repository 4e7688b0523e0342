// Package common defines shared constants and sentinel errors used across
// client and server layers of ledgersync. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// Remote-side errors as seen by the client.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidDocument is returned when a document carries values that are not
	// flat primitives (string, number, bool).
	ErrInvalidDocument = errors.New("invalid document")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Banking errors raised by client commands.
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountInactive   = errors.New("account is not active")
	ErrUnknownCollection = errors.New("unknown collection")
)
