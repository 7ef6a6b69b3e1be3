package http

import (
	"net/http"

	"tasklist/internal/http/handler"
	"tasklist/internal/settings"
	"tasklist/internal/tasklist"
)

func NewRouter(list *tasklist.List, settingsStore *settings.Store) http.Handler {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for probe compatibility
	mux.Handle("/health", handler.NewHealthHandler())

	taskHandler := handler.NewTaskHandler(list)
	mux.Handle("/api/v1/tasks", taskHandler)
	mux.Handle("/api/v1/tasks/", taskHandler)

	mux.Handle("/api/v1/export", handler.NewExportHandler(list))
	mux.Handle("/api/v1/import", handler.NewImportHandler(list))
	mux.Handle("/api/v1/events", handler.NewEventsHandler(list))
	mux.Handle("/api/v1/settings/", handler.NewSettingsHandler(settingsStore))

	return mux
}
