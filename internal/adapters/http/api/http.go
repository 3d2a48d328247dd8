// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/relab-mx/scoreboard/internal/adapters/repository"
	"github.com/relab-mx/scoreboard/internal/domain/events"
	"github.com/relab-mx/scoreboard/internal/domain/model"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps
// the handler layer loosely coupled to the engine implementation.
type Dependencies interface {
	Recompute(ctx context.Context, researcherID string) (model.ScoreBreakdown, error)
	RecomputeAll(ctx context.Context) (model.BatchResult, error)
	Score(ctx context.Context, researcherID string) (model.ScoreRecord, error)
	AreaSummary(ctx context.Context) ([]model.AreaSummary, error)
	RankingByCategory(ctx context.Context, category string) ([]model.AreaRanking, error)
}

// Publisher pushes domain events onto the bus. Propagation completes
// before Publish returns.
type Publisher interface {
	Publish(ctx context.Context, evt events.Event) error
}

// Server wires HTTP routes for the score engine API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	eventsHandler    *EventsHandler
	scoresHandler    *ScoresHandler
	recomputeHandler *RecomputeHandler
	summaryHandler   *SummaryHandler
	rankingHandler   *RankingHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, pub Publisher, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		eventsHandler:    NewEventsHandler(pub),
		scoresHandler:    NewScoresHandler(deps),
		recomputeHandler: NewRecomputeHandler(deps),
		summaryHandler:   NewSummaryHandler(deps),
		rankingHandler:   NewRankingHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/scores/recompute", MetricsMiddleware(s.recomputeHandler.HandleRecomputeAll, "recompute_all"))
	mux.HandleFunc("/scores/", MetricsMiddleware(s.scoresHandler.HandleScores, "scores"))
	mux.HandleFunc("/areas/summary", MetricsMiddleware(s.summaryHandler.HandleAreaSummary, "area_summary"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingHandler.HandleRanking, "rankings"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeEngineError translates engine errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "invalid_category", err)
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrUnknownResearcher):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, events.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, "invalid_event", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
