// Package events enumerates the domain changes that trigger score
// propagation.
//
// Each event carries the minimal payload needed to resolve the affected
// researchers: a researcher id for direct triggers, a line or article id
// for the two fan-out triggers.
package events

import (
	"errors"
	"fmt"
)

// Kind names one of the recognized domain changes.
type Kind string

const (
	StudentAssignmentChanged  Kind = "student_assignment_changed"
	LineMembershipChanged     Kind = "line_membership_changed"
	LineRecognitionChanged    Kind = "line_recognition_changed"
	ProjectLeadershipChanged  Kind = "project_leadership_changed"
	ArticleAuthorshipChanged  Kind = "article_authorship_changed"
	ArticleStatusChanged      Kind = "article_status_changed"
	EventParticipationChanged Kind = "event_participation_changed"
	ResearcherSaved           Kind = "researcher_saved"
)

// ErrInvalidEvent marks an event with an unknown kind or a missing payload.
var ErrInvalidEvent = errors.New("invalid event")

// Event is the payload published on the bus after a tracked mutation.
type Event struct {
	Kind         Kind   `json:"kind"`
	ResearcherID string `json:"researcher_id,omitempty"`
	LineID       string `json:"line_id,omitempty"`
	ArticleID    string `json:"article_id,omitempty"`
}

// Kinds returns every recognized event kind.
func Kinds() []Kind {
	return []Kind{
		StudentAssignmentChanged,
		LineMembershipChanged,
		LineRecognitionChanged,
		ProjectLeadershipChanged,
		ArticleAuthorshipChanged,
		ArticleStatusChanged,
		EventParticipationChanged,
		ResearcherSaved,
	}
}

// FansOut reports whether the event recomputes multiple researchers.
func (e Event) FansOut() bool {
	return e.Kind == LineRecognitionChanged || e.Kind == ArticleStatusChanged
}

// Validate checks the kind and the payload required for it.
func (e Event) Validate() error {
	switch e.Kind {
	case StudentAssignmentChanged, LineMembershipChanged, ProjectLeadershipChanged,
		ArticleAuthorshipChanged, EventParticipationChanged, ResearcherSaved:
		if e.ResearcherID == "" {
			return fmt.Errorf("%w: %s requires researcher_id", ErrInvalidEvent, e.Kind)
		}
	case LineRecognitionChanged:
		if e.LineID == "" {
			return fmt.Errorf("%w: %s requires line_id", ErrInvalidEvent, e.Kind)
		}
	case ArticleStatusChanged:
		if e.ArticleID == "" {
			return fmt.Errorf("%w: %s requires article_id", ErrInvalidEvent, e.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, string(e.Kind))
	}
	return nil
}
