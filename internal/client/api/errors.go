package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the request never produced an HTTP response:
	// connection refused, DNS failure, timeout.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized maps any HTTP 401. The caller is expected to evict
	// the local session and send the user back to login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound maps HTTP 404.
	ErrNotFound = errors.New("not found")
)

// Error carries a non-401 HTTP failure. Detail is the server's "detail"
// field verbatim when present, so validation messages can be shown inline
// next to the action that triggered them.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// IsValidation reports whether the failure is a client-side input problem
// (HTTP 400 or 422) that should be surfaced verbatim and not retried
// automatically.
func (e *Error) IsValidation() bool {
	return e.Status == 400 || e.Status == 422
}
