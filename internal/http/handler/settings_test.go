package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"tasklist/internal/http/handler"
	"tasklist/internal/persist"
	"tasklist/internal/settings"
	"tasklist/internal/storage"
)

func newSettingsHandler(t *testing.T) (*handler.SettingsHandler, *settings.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := settings.New(persist.New(storage.NewMemory(), "tasklist:", logger))
	return handler.NewSettingsHandler(store), store
}

func TestSettingsHandler_GetTheme(t *testing.T) {
	h, _ := newSettingsHandler(t)

	w := doJSON(t, h, http.MethodGet, "/api/v1/settings/theme", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result map[string]string
	json.NewDecoder(w.Body).Decode(&result)
	if result["theme"] != "light" {
		t.Errorf("expected default theme light, got %s", result["theme"])
	}
}

func TestSettingsHandler_PutTheme(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"dark", `{"theme":"dark"}`, http.StatusOK},
		{"light", `{"theme":"light"}`, http.StatusOK},
		{"invalid theme", `{"theme":"sepia"}`, http.StatusBadRequest},
		{"invalid json", `{invalid`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newSettingsHandler(t)

			w := doJSON(t, h, http.MethodPut, "/api/v1/settings/theme", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body: %s)", tt.wantStatus, w.Code, w.Body.String())
			}

			if tt.name == "dark" {
				if got := store.Theme(context.Background()); got != "dark" {
					t.Errorf("expected stored theme dark, got %s", got)
				}
			}
		})
	}
}

func TestSettingsHandler_UnknownPath(t *testing.T) {
	h, _ := newSettingsHandler(t)

	w := doJSON(t, h, http.MethodGet, "/api/v1/settings/language", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newSettingsHandler(t)

	w := doJSON(t, h, http.MethodDelete, "/api/v1/settings/theme", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
