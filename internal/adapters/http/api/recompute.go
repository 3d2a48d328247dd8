// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// RecomputeHandler serves the bulk recompute action.
type RecomputeHandler struct {
	deps Dependencies
}

// NewRecomputeHandler creates a new bulk recompute handler.
func NewRecomputeHandler(deps Dependencies) *RecomputeHandler {
	return &RecomputeHandler{deps: deps}
}

// HandleRecomputeAll handles POST /scores/recompute requests. The response
// enumerates per-researcher failures next to the success count; a partial
// failure is not an error for the batch.
func (h *RecomputeHandler) HandleRecomputeAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	result, err := h.deps.RecomputeAll(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
