// Package app wires the calculator, the change propagator and the stores
// into the score engine service consumed by the HTTP API and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/relab-mx/scoreboard/internal/adapters/bus"
	"github.com/relab-mx/scoreboard/internal/adapters/repository"
	"github.com/relab-mx/scoreboard/internal/domain/events"
	"github.com/relab-mx/scoreboard/internal/domain/model"
	"github.com/relab-mx/scoreboard/internal/domain/scoring"
	"github.com/relab-mx/scoreboard/pkg/logger"
	"github.com/relab-mx/scoreboard/pkg/metrics"
)

// Service implements the score engine: recompute-and-replace per
// researcher, synchronous propagation of domain changes, and the read
// views built on the persisted records.
type Service struct {
	mu sync.RWMutex

	scores repository.ScoreStore
	source repository.SourceReader
	calc   scoring.Calculator
	bus    bus.Bus
	now    func() time.Time

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScoreStore sets the score persistence backend.
func WithScoreStore(s repository.ScoreStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.scores = s
		}
	}
}

// WithSource sets the collaborator data reader.
func WithSource(s repository.SourceReader) Option {
	return func(svc *Service) {
		if s != nil {
			svc.source = s
		}
	}
}

// WithCalculator overrides the rule-based calculator.
func WithCalculator(c scoring.Calculator) Option {
	return func(svc *Service) {
		if c != nil {
			svc.calc = c
		}
	}
}

// WithBus sets the event bus the propagator subscribes to.
func WithBus(b bus.Bus) Option {
	return func(svc *Service) {
		if b != nil {
			svc.bus = b
		}
	}
}

// WithClock overrides the timestamp source for score records.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes missing components and subscribes the propagator to
// the bus.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("engine")
	}
	if s.source == nil {
		s.source = repository.NewMemorySource()
	}
	if s.scores == nil {
		s.scores = repository.NewMemoryScoreStore()
	}
	if s.calc == nil {
		s.calc = scoring.NewRuleCalculator(s.source)
	}
	if s.bus == nil {
		s.bus = bus.NewInProcessBus(bus.WithLogger(s.logger))
	}

	s.bus.Subscribe(s.HandleEvent)

	s.started = true
	s.logger.Info(ctx, "score engine started")
	return nil
}

// Stop marks the service stopped. The engine holds no goroutines; this
// exists for symmetry with Start and future backends.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "score engine stopped")
}

// Bus returns the event bus collaborators publish on.
func (s *Service) Bus() bus.Bus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bus
}

// Publish forwards a domain event onto the bus, running propagation to
// completion before returning.
func (s *Service) Publish(ctx context.Context, evt events.Event) error {
	return s.Bus().Publish(ctx, evt)
}

// Recompute derives one researcher's breakdown from freshly read source
// data and replaces the persisted record. Idempotent: repeating it with
// unchanged data yields the identical record.
func (s *Service) Recompute(ctx context.Context, researcherID string) (model.ScoreBreakdown, error) {
	start := time.Now()

	if _, err := s.source.Researcher(ctx, researcherID); err != nil {
		return model.ScoreBreakdown{}, fmt.Errorf("recompute: %w", err)
	}

	breakdown, err := s.calc.Compute(ctx, researcherID)
	if err != nil {
		metrics.RecordRecomputeFailure()
		return model.ScoreBreakdown{}, fmt.Errorf("recompute %s: %w", researcherID, err)
	}

	rec := model.ScoreRecord{
		ResearcherID:   researcherID,
		ScoreBreakdown: breakdown,
		LastUpdated:    s.now(),
	}
	if err := s.scores.Upsert(ctx, rec); err != nil {
		metrics.RecordRecomputeFailure()
		return model.ScoreBreakdown{}, fmt.Errorf("persist score for %s: %w", researcherID, err)
	}

	metrics.RecordRecompute(float64(time.Since(start).Milliseconds()))
	return breakdown, nil
}

// RecomputeAll recomputes every active researcher. A failed researcher is
// reported in the result and never aborts the remainder.
func (s *Service) RecomputeAll(ctx context.Context) (model.BatchResult, error) {
	ids, err := s.source.ActiveResearchers(ctx)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("list active researchers: %w", err)
	}
	metrics.UpdateActiveResearchers(len(ids))

	var result model.BatchResult
	for _, id := range ids {
		if _, err := s.Recompute(ctx, id); err != nil {
			s.logger.Warn(ctx, "recompute failed",
				logger.String("researcherID", id),
				logger.Error(err),
			)
			result.Failures = append(result.Failures, model.BatchFailure{
				ResearcherID: id,
				Reason:       err.Error(),
			})
			continue
		}
		result.Count++
	}
	return result, nil
}

// Score returns the persisted record for one researcher.
func (s *Service) Score(ctx context.Context, researcherID string) (model.ScoreRecord, error) {
	return s.scores.Get(ctx, researcherID)
}

// AreaSummary aggregates score records per area. Records whose researcher
// can no longer be resolved are skipped as orphans.
func (s *Service) AreaSummary(ctx context.Context) ([]model.AreaSummary, error) {
	recs, err := s.scores.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read score records: %w", err)
	}

	byArea := make(map[string]*model.AreaSummary)
	for _, rec := range recs {
		r, err := s.source.Researcher(ctx, rec.ResearcherID)
		if err != nil {
			if errors.Is(err, repository.ErrUnknownResearcher) {
				continue
			}
			return nil, fmt.Errorf("resolve researcher %s: %w", rec.ResearcherID, err)
		}
		sum, ok := byArea[r.AreaID]
		if !ok {
			sum = &model.AreaSummary{AreaID: r.AreaID}
			byArea[r.AreaID] = sum
		}
		sum.Add(rec.ScoreBreakdown)
		sum.ResearcherCount++
	}

	out := make([]model.AreaSummary, 0, len(byArea))
	for _, sum := range byArea {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AreaID < out[j].AreaID })
	return out, nil
}

// RankingByCategory groups researchers by area and orders each group by
// the chosen category score, highest first. Ties break by researcher id
// so the ordering is deterministic.
func (s *Service) RankingByCategory(ctx context.Context, category string) ([]model.AreaRanking, error) {
	cat, err := model.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	recs, err := s.scores.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read score records: %w", err)
	}

	byArea := make(map[string][]model.RankedScore)
	for _, rec := range recs {
		r, err := s.source.Researcher(ctx, rec.ResearcherID)
		if err != nil {
			if errors.Is(err, repository.ErrUnknownResearcher) {
				continue
			}
			return nil, fmt.Errorf("resolve researcher %s: %w", rec.ResearcherID, err)
		}
		byArea[r.AreaID] = append(byArea[r.AreaID], model.RankedScore{
			ResearcherID: rec.ResearcherID,
			Score:        rec.CategoryPoints(cat),
		})
	}

	out := make([]model.AreaRanking, 0, len(byArea))
	for areaID, scores := range byArea {
		sort.Slice(scores, func(i, j int) bool {
			if scores[i].Score != scores[j].Score {
				return scores[i].Score > scores[j].Score
			}
			return scores[i].ResearcherID < scores[j].ResearcherID
		})
		out = append(out, model.AreaRanking{AreaID: areaID, Researchers: scores})
	}
	// Areas with more researchers first, as the reporting view expects.
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Researchers) != len(out[j].Researchers) {
			return len(out[i].Researchers) > len(out[j].Researchers)
		}
		return out[i].AreaID < out[j].AreaID
	})
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		tracked := s.scores.Count(ctx)
		stats["trackedResearchers"] = tracked
		metrics.UpdateTrackedResearchers(tracked)

		if ids, err := s.source.ActiveResearchers(ctx); err == nil {
			stats["activeResearchers"] = len(ids)
			metrics.UpdateActiveResearchers(len(ids))
		}
	}

	return stats
}
