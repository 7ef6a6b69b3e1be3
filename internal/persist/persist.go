// Package persist implements the namespaced persistence adapter between the
// task-list model and the key-value store.
//
// The adapter is fire-and-forget: serialization and storage failures are
// logged and swallowed, so callers never observe an error and cannot
// distinguish a durable write from a silently failed one. The model treats
// every write as if it succeeded and keeps serving from memory.
package persist

import (
	"context"
	"encoding/json"
	"log/slog"

	"tasklist/internal/storage"
)

type Adapter struct {
	store     storage.KV
	namespace string
	logger    *slog.Logger
}

// New creates an adapter that prefixes every key with namespace.
func New(store storage.KV, namespace string, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{store: store, namespace: namespace, logger: logger}
}

func (a *Adapter) key(key string) string {
	return a.namespace + key
}

// Save serializes value as JSON and writes it under the namespaced key.
func (a *Adapter) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		a.logger.ErrorContext(ctx, "persist: marshal failed", "key", key, "error", err)
		return
	}
	if err := a.store.Set(ctx, a.key(key), data); err != nil {
		a.logger.ErrorContext(ctx, "persist: save failed", "key", key, "error", err)
	}
}

// Load reads the namespaced key into dest. It returns false when the key is
// absent or the read/decode failed; dest is left untouched in that case.
func (a *Adapter) Load(ctx context.Context, key string, dest any) bool {
	data, ok, err := a.store.Get(ctx, a.key(key))
	if err != nil {
		a.logger.ErrorContext(ctx, "persist: load failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		a.logger.ErrorContext(ctx, "persist: unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}

// Remove deletes the namespaced key.
func (a *Adapter) Remove(ctx context.Context, key string) {
	if err := a.store.Delete(ctx, a.key(key)); err != nil {
		a.logger.ErrorContext(ctx, "persist: remove failed", "key", key, "error", err)
	}
}

// Clear removes every key under this adapter's namespace.
func (a *Adapter) Clear(ctx context.Context) {
	keys, err := a.store.Keys(ctx, a.namespace)
	if err != nil {
		a.logger.ErrorContext(ctx, "persist: clear failed", "error", err)
		return
	}
	for _, k := range keys {
		if err := a.store.Delete(ctx, k); err != nil {
			a.logger.ErrorContext(ctx, "persist: clear failed", "key", k, "error", err)
		}
	}
}
