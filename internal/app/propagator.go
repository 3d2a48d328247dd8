package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/relab-mx/scoreboard/internal/adapters/repository"
	"github.com/relab-mx/scoreboard/internal/domain/events"
	"github.com/relab-mx/scoreboard/pkg/logger"
	"github.com/relab-mx/scoreboard/pkg/metrics"
)

// HandleEvent is the propagator entry point, subscribed to the bus on
// Start. It resolves the researchers affected by a domain change and
// recomputes each one synchronously.
//
// Failure policy: a reference that no longer resolves (researcher, line,
// article) is skipped silently; that only happens on orphaned data. A
// failed recompute for the directly affected researcher is returned to
// the publisher. Fan-out targets are independent units of work: their
// failures are logged and counted but never abort the remainder and never
// surface to the originating mutation.
func (s *Service) HandleEvent(ctx context.Context, evt events.Event) error {
	if err := evt.Validate(); err != nil {
		return err
	}

	switch evt.Kind {
	case events.StudentAssignmentChanged,
		events.LineMembershipChanged,
		events.ProjectLeadershipChanged,
		events.ArticleAuthorshipChanged,
		events.EventParticipationChanged:
		return s.recomputeDirect(ctx, evt.ResearcherID)

	case events.ResearcherSaved:
		r, err := s.source.Researcher(ctx, evt.ResearcherID)
		if err != nil {
			if errors.Is(err, repository.ErrUnknownResearcher) {
				s.skipPropagation(ctx, "researcher", evt.ResearcherID)
				return nil
			}
			return fmt.Errorf("resolve researcher %s: %w", evt.ResearcherID, err)
		}
		if !r.Active {
			return nil
		}
		return s.recomputeDirect(ctx, evt.ResearcherID)

	case events.LineRecognitionChanged:
		ids, err := s.source.LineMembers(ctx, evt.LineID)
		if err != nil {
			if errors.Is(err, repository.ErrUnknownLine) {
				s.skipPropagation(ctx, "line", evt.LineID)
				return nil
			}
			return fmt.Errorf("resolve line members %s: %w", evt.LineID, err)
		}
		s.fanOut(ctx, ids)
		return nil

	case events.ArticleStatusChanged:
		ids, err := s.source.ArticleAuthors(ctx, evt.ArticleID)
		if err != nil {
			if errors.Is(err, repository.ErrUnknownArticle) {
				s.skipPropagation(ctx, "article", evt.ArticleID)
				return nil
			}
			return fmt.Errorf("resolve article authors %s: %w", evt.ArticleID, err)
		}
		s.fanOut(ctx, ids)
		return nil
	}

	// Unreachable: Validate rejects unknown kinds.
	return nil
}

// recomputeDirect recomputes the one researcher a direct trigger names.
// A vanished researcher is a skip, not an error.
func (s *Service) recomputeDirect(ctx context.Context, researcherID string) error {
	if _, err := s.Recompute(ctx, researcherID); err != nil {
		if errors.Is(err, repository.ErrUnknownResearcher) {
			s.skipPropagation(ctx, "researcher", researcherID)
			return nil
		}
		return err
	}
	return nil
}

// fanOut recomputes every affected researcher independently.
func (s *Service) fanOut(ctx context.Context, researcherIDs []string) {
	metrics.RecordFanOutSize(len(researcherIDs))

	for _, id := range researcherIDs {
		if _, err := s.Recompute(ctx, id); err != nil {
			if errors.Is(err, repository.ErrUnknownResearcher) {
				s.skipPropagation(ctx, "researcher", id)
				continue
			}
			s.logger.Warn(ctx, "fan-out recompute failed",
				logger.String("researcherID", id),
				logger.Error(err),
			)
		}
	}
}

func (s *Service) skipPropagation(ctx context.Context, kind, id string) {
	metrics.RecordPropagationSkipped()
	s.logger.Debug(ctx, "skipping propagation for missing reference",
		logger.String("kind", kind),
		logger.String("id", id),
	)
}
