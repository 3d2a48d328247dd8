// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// SummaryHandler serves the per-area aggregation view.
type SummaryHandler struct {
	deps Dependencies
}

// NewSummaryHandler creates a new area summary handler.
func NewSummaryHandler(deps Dependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleAreaSummary handles GET /areas/summary requests.
func (h *SummaryHandler) HandleAreaSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	summaries, err := h.deps.AreaSummary(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
