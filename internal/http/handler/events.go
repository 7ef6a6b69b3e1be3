package handler

import (
	"fmt"
	"net/http"

	"tasklist/internal/tasklist"
)

// EventsHandler streams change notifications as server-sent events. Each
// mutation of the list produces one "change" event carrying the current
// counts; clients re-fetch whatever state they render. A snapshot event is
// sent immediately on connect.
type EventsHandler struct {
	list *tasklist.List
}

func NewEventsHandler(list *tasklist.List) *EventsHandler {
	return &EventsHandler{list: list}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Coalescing buffer of one: the subscriber callback runs under the list
	// lock, so it must only do a non-blocking send.
	changes := make(chan struct{}, 1)
	unsubscribe := h.list.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	h.writeChange(w)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			h.writeChange(w)
			flusher.Flush()
		}
	}
}

func (h *EventsHandler) writeChange(w http.ResponseWriter) {
	active, completed := h.list.Counts()
	fmt.Fprintf(w, "event: change\ndata: {\"active\":%d,\"completed\":%d}\n\n", active, completed)
}
