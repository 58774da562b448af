// Package common defines shared constants and sentinel errors used across
// the Sentinel client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Session lifecycle.
	ErrSessionMissing = errors.New("no active session")
	ErrSessionEvicted = errors.New("session evicted")
)
