// Package session implements the client-side key-value store that holds
// the session token, the cached user and profile objects, the pending
// email-change challenge, and UI preferences.
package session

import (
	"context"
)

// Repository is a minimal key-value store. Both the SQLite and the
// in-memory implementations satisfy it; services receive it by reference
// so tests can substitute the in-memory one.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// DeleteKeys removes the given keys atomically: either all of them
	// are gone afterwards or none.
	DeleteKeys(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
