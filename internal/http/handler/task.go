package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"tasklist/internal/model"
	"tasklist/internal/tasklist"
)

// TaskHandler is the coordinating layer for task intents: it receives them
// over HTTP, forwards them to the list model, and reports the outcome. The
// model itself never raises errors; a rejected intent (unknown id, blank
// text) is reported here.
type TaskHandler struct {
	list *tasklist.List
}

func NewTaskHandler(list *tasklist.List) *TaskHandler {
	return &TaskHandler{list: list}
}

// ServeHTTP routes /api/v1/tasks and /api/v1/tasks/{id}
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/tasks")
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	// /api/v1/tasks/stats
	if head == "stats" {
		h.handleStats(w, r)
		return
	}

	if head != "" {
		id, err := strconv.ParseInt(head, 10, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_ID", "task id must be an integer")
			return
		}

		// /api/v1/tasks/{id}/toggle
		if subPath == "toggle" {
			h.handleToggle(w, r, id)
			return
		}
		if subPath != "" {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
			return
		}

		// /api/v1/tasks/{id}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodPatch:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	// /api/v1/tasks
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodDelete:
		h.handleClear(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

type taskTextRequest struct {
	Text string `json:"text"`
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, ok := h.list.Add(r.Context(), req.Text)
	if !ok {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "text must not be empty")
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	task, ok := h.list.Get(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "task not found")
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var req taskTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "text must not be empty")
		return
	}

	task, ok := h.list.Update(r.Context(), id, req.Text)
	if !ok {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "task not found")
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleToggle(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	task, ok := h.list.Toggle(r.Context(), id)
	if !ok {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "task not found")
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if !h.list.Delete(r.Context(), id) {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "task not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClear serves DELETE /api/v1/tasks?scope=completed|all
func (h *TaskHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("scope") {
	case "completed":
		removed := h.list.ClearCompleted(r.Context())
		WriteJSON(w, http.StatusOK, map[string]int{"removed": removed})
	case "all":
		h.list.ClearAll(r.Context())
		w.WriteHeader(http.StatusNoContent)
	default:
		WriteError(w, http.StatusBadRequest, "INVALID_SCOPE", "scope must be 'completed' or 'all'")
	}
}

type listResponse struct {
	Tasks []model.Task `json:"tasks"`
}

func (h *TaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	tasks := h.list.Tasks()

	if status := r.URL.Query().Get("status"); status != "" {
		if status != "active" && status != "completed" {
			WriteError(w, http.StatusBadRequest, "INVALID_STATUS", "status must be 'active' or 'completed'")
			return
		}
		wantCompleted := status == "completed"
		filtered := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Completed == wantCompleted {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	WriteJSON(w, http.StatusOK, listResponse{Tasks: tasks})
}

type statsResponse struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

func (h *TaskHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	active, completed := h.list.Counts()
	WriteJSON(w, http.StatusOK, statsResponse{
		Active:    active,
		Completed: completed,
		Total:     active + completed,
	})
}
