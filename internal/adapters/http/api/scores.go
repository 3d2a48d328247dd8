// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// ScoresHandler serves per-researcher score reads and recomputes.
type ScoresHandler struct {
	deps Dependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandleScores dispatches the /scores/ subtree:
//
//	GET  /scores/{researcher_id}            current score record
//	POST /scores/{researcher_id}/recompute  recompute and persist
func (h *ScoresHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/scores/")

	if id, ok := strings.CutSuffix(path, "/recompute"); ok {
		h.handleRecomputeOne(w, r, id)
		return
	}
	h.handleGetScore(w, r, path)
}

func (h *ScoresHandler) handleGetScore(w http.ResponseWriter, r *http.Request, researcherID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if researcherID == "" || strings.Contains(researcherID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	rec, err := h.deps.Score(r.Context(), researcherID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ScoresHandler) handleRecomputeOne(w http.ResponseWriter, r *http.Request, researcherID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if researcherID == "" || strings.Contains(researcherID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	breakdown, err := h.deps.Recompute(r.Context(), researcherID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
