// Package storage provides the key-value stores the persistence layer runs
// on. The store is always an explicit dependency of its callers, never an
// ambient global, so tests can substitute the in-memory implementation.
package storage

import "context"

// KV is a flat, durable key-value store. Implementations must be safe for
// concurrent use.
type KV interface {
	// Get returns the value stored under key. The second return value is
	// false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys returns all stored keys beginning with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
