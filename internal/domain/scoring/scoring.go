// Package scoring defines the contract for computing a researcher's point
// breakdown from their related records.
package scoring

import (
	"context"
	"fmt"

	"github.com/relab-mx/scoreboard/internal/domain/model"
	"github.com/relab-mx/scoreboard/internal/domain/rules"
)

// Source abstracts the read-only queries the calculator issues. Any storage
// that can return these five per-researcher feeds suffices.
type Source interface {
	StudentAssignments(ctx context.Context, researcherID string) ([]model.StudentAssignment, error)
	LineMemberships(ctx context.Context, researcherID string) ([]model.LineMembership, error)
	ProjectsLed(ctx context.Context, researcherID string) ([]model.Project, error)
	ArticleAuthorships(ctx context.Context, researcherID string) ([]model.ArticleAuthorship, error)
	EventParticipations(ctx context.Context, researcherID string) ([]model.EventParticipation, error)
}

// Calculator computes a score breakdown for one researcher.
type Calculator interface {
	// Compute derives the six category totals and their sum. It has no
	// side effects; the result depends only on the source data at read
	// time, not on input ordering.
	Compute(ctx context.Context, researcherID string) (model.ScoreBreakdown, error)
}

// RuleCalculator implements Calculator over the point tables in the rules
// package.
type RuleCalculator struct {
	src Source
}

// NewRuleCalculator creates a calculator reading from src.
func NewRuleCalculator(src Source) *RuleCalculator {
	return &RuleCalculator{src: src}
}

// Compute sums each category from freshly read source records.
func (c *RuleCalculator) Compute(ctx context.Context, researcherID string) (model.ScoreBreakdown, error) {
	var b model.ScoreBreakdown

	assignments, err := c.src.StudentAssignments(ctx, researcherID)
	if err != nil {
		return model.ScoreBreakdown{}, fmt.Errorf("read student assignments: %w", err)
	}
	for _, a := range assignments {
		switch {
		case rules.IsMasters(a.TypeName):
			b.StudentsMasters += rules.MastersStudentPoints(a.Active, a.Status)
		case rules.IsDoctorate(a.TypeName):
			b.StudentsDoctorate += rules.DoctorateStudentPoints(a.Active, a.Status)
		}
	}

	memberships, err := c.src.LineMemberships(ctx, researcherID)
	if err != nil {
		return model.ScoreBreakdown{}, fmt.Errorf("read line memberships: %w", err)
	}
	for _, m := range memberships {
		if m.Recognized {
			b.ResearchLines += rules.RecognizedLinePoints
		}
	}

	projects, err := c.src.ProjectsLed(ctx, researcherID)
	if err != nil {
		return model.ScoreBreakdown{}, fmt.Errorf("read projects led: %w", err)
	}
	for _, p := range projects {
		b.Projects += rules.ProjectPoints(p.Status)
	}

	authorships, err := c.src.ArticleAuthorships(ctx, researcherID)
	if err != nil {
		return model.ScoreBreakdown{}, fmt.Errorf("read article authorships: %w", err)
	}
	for _, a := range authorships {
		b.Articles += rules.ArticlePoints(a.AuthorOrder, a.ArticleStatus)
	}

	participations, err := c.src.EventParticipations(ctx, researcherID)
	if err != nil {
		return model.ScoreBreakdown{}, fmt.Errorf("read event participations: %w", err)
	}
	for _, p := range participations {
		b.Events += rules.EventPoints(p.EventType, p.Role)
	}

	b.Total = b.Sum()
	return b, nil
}
