package cli

import (
	"context"
	"fmt"

	"github.com/sentinelai/sentinel-cli/internal/client/view"
)

// guarded runs fn only when a session token is stored locally. Without one
// no network call is issued at all: the command line is remembered, the
// login flow runs, and a successful login replays the remembered command.
func (a *App) guarded(ctx context.Context, command string, fn func(context.Context) error) error {
	if !a.session.Active(ctx) {
		a.pending = command
		fmt.Fprintln(a.out, "Please sign in first.")
		return a.Login(ctx)
	}
	return fn(ctx)
}

// replayPending re-dispatches the command a guard intercepted, if any.
// Called exactly once after a successful login.
func (a *App) replayPending(ctx context.Context) error {
	if a.pending == "" {
		return nil
	}
	line := a.pending
	a.pending = ""
	_, err := a.dispatch(ctx, line)
	return err
}

// evict clears the stored token and profile after the server rejected the
// credentials, and tells the user to sign in again.
func (a *App) evict(ctx context.Context) {
	if err := a.session.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing session", "error", err)
	}
	fmt.Fprintln(a.out, "Session expired. Please sign in again.")
}

// renderList prints a loaded list according to its state. It returns true
// only when the list is ready and rows were printed. On an expired session
// the caller's stored credentials are evicted.
func renderList[T any](ctx context.Context, a *App, res view.Result[T], empty string, row func(T) string) bool {
	if res.Unauthorized {
		a.evict(ctx)
		return false
	}
	switch res.State {
	case view.StateFailed:
		fmt.Fprintln(a.out, "Error:", res.Message)
		return false
	case view.StateEmpty:
		fmt.Fprintln(a.out, empty)
		return false
	default:
		for _, item := range res.Items {
			fmt.Fprintln(a.out, row(item))
		}
		return true
	}
}
