// Package storage defines the persistent key-value store that backs the
// cart, favorites and cache layers. Values are opaque byte payloads; the
// callers own the serialization format.
package storage

import "context"

// Store is the persistence abstraction over the platform's local storage.
type Store interface {
	// Get retrieves the value stored under key. Returns pkg/errors.ErrNotFound
	// (wrapped) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns every stored key starting with prefix. An empty prefix
	// matches all keys.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}
