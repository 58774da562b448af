// Package view implements the page lifecycle shared by every protected
// screen: a load that ends in exactly one of loading/failed/empty/ready,
// with 401 singled out so the caller can evict the session, and the
// dashboard's typed sub-view switch.
package view

import (
	"context"
	"errors"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
)

// LoadState is the render state of a page. A page is always in exactly one
// state; the enum makes rendering two states at once unrepresentable.
type LoadState int

const (
	StateLoading LoadState = iota
	StateFailed
	StateEmpty
	StateReady
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFailed:
		return "failed"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Result is the classified outcome of a page load.
type Result[T any] struct {
	State LoadState
	Items []T

	// Message is the human-readable failure text when State is StateFailed.
	Message string

	// Unauthorized marks a 401: the caller must evict the session and
	// route to login instead of offering a retry.
	Unauthorized bool
}

// LoadList runs fetch and classifies its outcome.
//
// Failure policy mirrors the page loaders of the original client: a 401 is
// the global logout signal; transport failures and server errors produce a
// retryable failed state with a readable message; zero items is its own
// state so pages can render an empty panel instead of a blank list.
func LoadList[T any](ctx context.Context, fetch func(context.Context) ([]T, error)) Result[T] {
	items, err := fetch(ctx)

	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return Result[T]{State: StateFailed, Unauthorized: true, Message: "session expired, please sign in again"}
	case errors.Is(err, api.ErrUnavailable):
		return Result[T]{State: StateFailed, Message: "server unreachable, try again"}
	case err != nil:
		return Result[T]{State: StateFailed, Message: failureMessage(err)}
	case len(items) == 0:
		return Result[T]{State: StateEmpty, Items: []T{}}
	default:
		return Result[T]{State: StateReady, Items: items}
	}
}

// failureMessage prefers the server's own detail text for validation-class
// errors and falls back to the generic error string.
func failureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
