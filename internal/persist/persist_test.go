package persist_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"tasklist/internal/persist"
	"tasklist/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingKV implements storage.KV and fails every operation.
type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, fmt.Errorf("store unavailable")
}
func (failingKV) Set(ctx context.Context, key string, value []byte) error {
	return fmt.Errorf("store unavailable")
}
func (failingKV) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("store unavailable")
}
func (failingKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	return nil, fmt.Errorf("store unavailable")
}

func TestAdapter_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	a := persist.New(store, "app:", discardLogger())

	a.Save(ctx, "items", []string{"a", "b"})

	var got []string
	if !a.Load(ctx, "items", &got) {
		t.Fatal("expected load to succeed")
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected value: %v", got)
	}

	// The write lands under the namespaced key.
	if _, ok, _ := store.Get(ctx, "app:items"); !ok {
		t.Error("expected key app:items in the store")
	}
}

func TestAdapter_LoadMissing(t *testing.T) {
	ctx := context.Background()
	a := persist.New(storage.NewMemory(), "app:", discardLogger())

	got := 42
	if a.Load(ctx, "counter", &got) {
		t.Fatal("expected load of a missing key to report false")
	}
	if got != 42 {
		t.Errorf("dest must be untouched on a miss, got %d", got)
	}
}

func TestAdapter_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	store.Set(ctx, "app:counter", []byte("not json"))
	a := persist.New(store, "app:", discardLogger())

	var got int
	if a.Load(ctx, "counter", &got) {
		t.Fatal("expected load of a corrupt value to report false")
	}
}

func TestAdapter_SwallowsStoreFailures(t *testing.T) {
	ctx := context.Background()
	a := persist.New(failingKV{}, "app:", discardLogger())

	// None of these may panic or surface an error.
	a.Save(ctx, "items", []int{1})
	a.Remove(ctx, "items")
	a.Clear(ctx)

	var got []int
	if a.Load(ctx, "items", &got) {
		t.Error("expected load to report false when the store fails")
	}
}

func TestAdapter_SwallowsMarshalFailure(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	a := persist.New(store, "app:", discardLogger())

	a.Save(ctx, "bad", func() {}) // functions have no JSON encoding

	if _, ok, _ := store.Get(ctx, "app:bad"); ok {
		t.Error("expected nothing to be written for an unmarshalable value")
	}
}

func TestAdapter_Remove(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	a := persist.New(store, "app:", discardLogger())

	a.Save(ctx, "theme", "dark")
	a.Remove(ctx, "theme")

	var got string
	if a.Load(ctx, "theme", &got) {
		t.Error("expected key to be gone after remove")
	}
}

func TestAdapter_ClearOnlyNamespace(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	store.Set(ctx, "other:keep", []byte(`1`))

	a := persist.New(store, "app:", discardLogger())
	a.Save(ctx, "items", []int{1})
	a.Save(ctx, "nextId", 2)

	a.Clear(ctx)

	keys, _ := store.Keys(ctx, "")
	if len(keys) != 1 || keys[0] != "other:keep" {
		t.Errorf("expected only other:keep to survive, got %v", keys)
	}
}
