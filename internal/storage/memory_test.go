package storage_test

import (
	"context"
	"reflect"
	"testing"

	"tasklist/internal/storage"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	v, ok, err := s.Get(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(v) != "1" {
		t.Errorf("expected value 1, got %s", v)
	}

	// Overwrite
	if err := s.Set(ctx, "a", []byte("2")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	v, _, _ = s.Get(ctx, "a")
	if string(v) != "2" {
		t.Errorf("expected value 2 after overwrite, got %s", v)
	}
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()

	if err := s.Delete(ctx, "absent"); err != nil {
		t.Errorf("deleting an absent key should not error: %v", err)
	}

	s.Set(ctx, "a", []byte("1"))
	s.Delete(ctx, "a")
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("expected key to be gone after delete")
	}
}

func TestMemory_KeysPrefix(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	s.Set(ctx, "app:b", []byte("1"))
	s.Set(ctx, "app:a", []byte("1"))
	s.Set(ctx, "other:c", []byte("1"))

	keys, err := s.Keys(ctx, "app:")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	want := []string{"app:a", "app:b"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("expected keys %v, got %v", want, keys)
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	s.Set(ctx, "a", []byte("abc"))

	v, _, _ := s.Get(ctx, "a")
	v[0] = 'x'

	v2, _, _ := s.Get(ctx, "a")
	if string(v2) != "abc" {
		t.Errorf("mutating a returned value must not affect the store, got %s", v2)
	}
}
