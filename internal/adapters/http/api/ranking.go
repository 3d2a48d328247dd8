// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// RankingHandler serves per-category rankings grouped by area.
type RankingHandler struct {
	deps Dependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps Dependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// HandleRanking handles GET /rankings?category=NAME requests. An
// unrecognized category is a validation error, not a crash.
func (h *RankingHandler) HandleRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = "total"
	}

	rankings, err := h.deps.RankingByCategory(r.Context(), category)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankings)
}
