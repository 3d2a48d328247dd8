// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/relab-mx/scoreboard/internal/domain/events"
)

// EventsHandler accepts domain change events from mutating collaborators.
type EventsHandler struct {
	pub Publisher
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(pub Publisher) *EventsHandler {
	return &EventsHandler{pub: pub}
}

// HandlePostEvent handles POST /events requests. The response is written
// only after propagation has run to completion: score refresh happens
// inside the same unit of work as the mutation that was reported.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var evt events.Event
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := evt.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_event", err)
		return
	}

	if err := h.pub.Publish(r.Context(), evt); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "propagated"})
}
