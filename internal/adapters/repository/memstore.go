package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/relab-mx/scoreboard/internal/domain/model"
	"github.com/relab-mx/scoreboard/pkg/metrics"
)

// MemoryScoreStore implements ScoreStore with a mutex-guarded map.
//
// Concurrent upserts for the same researcher are safe without further
// coordination: every write is a total replacement computed from a fresh
// read, so last-writer-wins always leaves a consistent record.
type MemoryScoreStore struct {
	mu      sync.RWMutex
	records map[string]model.ScoreRecord
}

// NewMemoryScoreStore creates an empty in-memory score store.
func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{
		records: make(map[string]model.ScoreRecord),
	}
}

// Upsert replaces the record keyed by its researcher id.
func (s *MemoryScoreStore) Upsert(ctx context.Context, rec model.ScoreRecord) error {
	if rec.ResearcherID == "" {
		return fmt.Errorf("upsert score record: %w", ErrUnknownResearcher)
	}

	s.mu.Lock()
	s.records[rec.ResearcherID] = rec
	count := len(s.records)
	s.mu.Unlock()

	metrics.UpdateTrackedResearchers(count)
	return nil
}

// Get returns the record for one researcher.
func (s *MemoryScoreStore) Get(ctx context.Context, researcherID string) (model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[researcherID]
	if !ok {
		return model.ScoreRecord{}, fmt.Errorf("researcher %s: %w", researcherID, ErrNotFound)
	}
	return rec, nil
}

// All returns every record ordered by researcher id.
func (s *MemoryScoreStore) All(ctx context.Context) ([]model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ScoreRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ResearcherID < out[j].ResearcherID })
	return out, nil
}

// Count returns the number of stored records.
func (s *MemoryScoreStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
