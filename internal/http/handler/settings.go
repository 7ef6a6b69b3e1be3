package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"tasklist/internal/model"
	"tasklist/internal/settings"
)

// SettingsHandler serves /api/v1/settings/theme.
type SettingsHandler struct {
	settings *settings.Store
}

func NewSettingsHandler(s *settings.Store) *SettingsHandler {
	return &SettingsHandler{settings: s}
}

type themeResponse struct {
	Theme model.Theme `json:"theme"`
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/settings/theme" {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, themeResponse{Theme: h.settings.Theme(r.Context())})
	case http.MethodPut:
		var req themeResponse
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
			return
		}
		if err := h.settings.SetTheme(r.Context(), req.Theme); err != nil {
			if errors.Is(err, settings.ErrInvalidTheme) {
				WriteError(w, http.StatusBadRequest, "INVALID_THEME", "theme must be 'light' or 'dark'")
				return
			}
			WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, themeResponse{Theme: req.Theme})
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}
