// Package session provides the persisted key/value store backing the client
// session: the bearer token and the cached profile, the local analog of the
// original browser-storage keys.
package session

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
