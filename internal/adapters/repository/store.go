// Package repository defines the score store and source reader contracts
// plus their in-memory implementations.
package repository

import (
	"context"

	"github.com/relab-mx/scoreboard/internal/domain/model"
)

// ScoreStore provides read/write access to persisted score records.
type ScoreStore interface {
	// Upsert replaces the whole record for its researcher in one atomic
	// operation. There are no partial writes; the upsert creates the row
	// on first computation.
	Upsert(ctx context.Context, rec model.ScoreRecord) error

	// Get returns the record for a researcher.
	// Returns ErrNotFound when no score has been computed yet.
	Get(ctx context.Context, researcherID string) (model.ScoreRecord, error)

	// All returns every record ordered by researcher id.
	All(ctx context.Context) ([]model.ScoreRecord, error)

	// Count returns the number of researchers with a score record.
	Count(ctx context.Context) int
}

// SourceReader exposes the read-only queries the engine issues against the
// collaborating CRUD system's data. Any storage returning these id lists
// and per-researcher feeds suffices.
type SourceReader interface {
	// The five feeds the calculator consumes.
	StudentAssignments(ctx context.Context, researcherID string) ([]model.StudentAssignment, error)
	LineMemberships(ctx context.Context, researcherID string) ([]model.LineMembership, error)
	ProjectsLed(ctx context.Context, researcherID string) ([]model.Project, error)
	ArticleAuthorships(ctx context.Context, researcherID string) ([]model.ArticleAuthorship, error)
	EventParticipations(ctx context.Context, researcherID string) ([]model.EventParticipation, error)

	// Researcher returns identity and flags for one researcher.
	// Returns ErrUnknownResearcher when the id cannot be resolved.
	Researcher(ctx context.Context, researcherID string) (model.Researcher, error)

	// ActiveResearchers returns the ids of all active researchers.
	ActiveResearchers(ctx context.Context) ([]string, error)

	// LineMembers returns the ids of every member of a line.
	// Returns ErrUnknownLine when the line cannot be resolved.
	LineMembers(ctx context.Context, lineID string) ([]string, error)

	// ArticleAuthors returns the ids of every author of an article.
	// Returns ErrUnknownArticle when the article cannot be resolved.
	ArticleAuthors(ctx context.Context, articleID string) ([]string, error)
}
