package handler

import (
	"encoding/json"
	"net/http"

	"tasklist/internal/export"
	"tasklist/internal/model"
	"tasklist/internal/tasklist"
)

// ExportHandler serves GET /api/v1/export?format=json|csv|pdf
type ExportHandler struct {
	list *tasklist.List
}

func NewExportHandler(list *tasklist.List) *ExportHandler {
	return &ExportHandler{list: list}
}

func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatJSON
	}

	data, contentType, err := export.Render(format, h.list.Tasks())
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_FORMAT", "format must be 'json', 'csv' or 'pdf'")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="tasks.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ImportHandler serves POST /api/v1/import. The request body must be a JSON
// array of tasks; parse and shape validation happens here, the model applies
// none and replaces its whole collection with the payload.
type ImportHandler struct {
	list *tasklist.List
}

func NewImportHandler(list *tasklist.List) *ImportHandler {
	return &ImportHandler{list: list}
}

func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is allowed")
		return
	}

	var tasks []model.Task
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tasks); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be a JSON array of tasks")
		return
	}

	imported := h.list.Replace(r.Context(), tasks)
	WriteJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
