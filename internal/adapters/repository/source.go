package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/relab-mx/scoreboard/internal/domain/model"
)

// MemorySource implements SourceReader over in-memory maps and adds the
// mutators collaborators (CLI, tests, sample datasets) use to drive change
// scenarios. Reads join line recognition, article status and event type
// onto the returned views.
//
// Orphaned associations (a membership whose line is gone, an authorship
// whose article is gone) are skipped on read rather than reported; the
// engine applies the same policy one level up.
type MemorySource struct {
	mu sync.RWMutex

	researchers    map[string]model.Researcher
	assignments    map[string]model.StudentAssignment // by student id
	lines          map[string]model.ResearchLine
	memberships    map[string]map[string]struct{} // line id -> researcher ids
	projects       map[string]model.Project
	articles       map[string]model.Article
	authorships    map[string]map[string]int // article id -> researcher id -> order
	events         map[string]model.Event
	participations map[string]map[string]string // event id -> researcher id -> role
}

// NewMemorySource creates an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		researchers:    make(map[string]model.Researcher),
		assignments:    make(map[string]model.StudentAssignment),
		lines:          make(map[string]model.ResearchLine),
		memberships:    make(map[string]map[string]struct{}),
		projects:       make(map[string]model.Project),
		articles:       make(map[string]model.Article),
		authorships:    make(map[string]map[string]int),
		events:         make(map[string]model.Event),
		participations: make(map[string]map[string]string),
	}
}

// Mutators.

// PutResearcher creates or replaces a researcher.
func (s *MemorySource) PutResearcher(r model.Researcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.researchers[r.ID] = r
}

// RemoveResearcher deletes a researcher record.
func (s *MemorySource) RemoveResearcher(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.researchers, id)
}

// PutStudentAssignment creates or replaces an assignment keyed by student.
func (s *MemorySource) PutStudentAssignment(a model.StudentAssignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[a.StudentID] = a
}

// RemoveStudentAssignment deletes an assignment.
func (s *MemorySource) RemoveStudentAssignment(studentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments, studentID)
}

// PutLine creates or replaces a research line.
func (s *MemorySource) PutLine(l model.ResearchLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[l.ID] = l
}

// SetLineRecognition flips a line's institutional recognition flag.
func (s *MemorySource) SetLineRecognition(lineID string, recognized bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lines[lineID]
	if !ok {
		return fmt.Errorf("line %s: %w", lineID, ErrUnknownLine)
	}
	l.Recognized = recognized
	s.lines[lineID] = l
	return nil
}

// PutLineMembership adds a researcher to a line.
func (s *MemorySource) PutLineMembership(lineID, researcherID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memberships[lineID] == nil {
		s.memberships[lineID] = make(map[string]struct{})
	}
	s.memberships[lineID][researcherID] = struct{}{}
}

// RemoveLineMembership removes a researcher from a line.
func (s *MemorySource) RemoveLineMembership(lineID, researcherID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.memberships[lineID], researcherID)
}

// PutProject creates or replaces a project.
func (s *MemorySource) PutProject(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
}

// RemoveProject deletes a project.
func (s *MemorySource) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
}

// PutArticle creates or replaces an article.
func (s *MemorySource) PutArticle(a model.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[a.ID] = a
}

// SetArticleStatus updates an article's publication status.
func (s *MemorySource) SetArticleStatus(articleID string, status model.ArticleStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[articleID]
	if !ok {
		return fmt.Errorf("article %s: %w", articleID, ErrUnknownArticle)
	}
	a.Status = status
	s.articles[articleID] = a
	return nil
}

// PutArticleAuthorship records a researcher as author of an article.
func (s *MemorySource) PutArticleAuthorship(articleID, researcherID string, order int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authorships[articleID] == nil {
		s.authorships[articleID] = make(map[string]int)
	}
	s.authorships[articleID][researcherID] = order
}

// RemoveArticleAuthorship removes an authorship.
func (s *MemorySource) RemoveArticleAuthorship(articleID, researcherID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.authorships[articleID], researcherID)
}

// PutEvent creates or replaces an academic event.
func (s *MemorySource) PutEvent(e model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = e
}

// PutEventParticipation records a researcher's role at an event.
func (s *MemorySource) PutEventParticipation(eventID, researcherID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.participations[eventID] == nil {
		s.participations[eventID] = make(map[string]string)
	}
	s.participations[eventID][researcherID] = role
}

// RemoveEventParticipation removes a participation.
func (s *MemorySource) RemoveEventParticipation(eventID, researcherID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participations[eventID], researcherID)
}

// Reads.

// StudentAssignments returns the assignments supervised by one researcher.
func (s *MemorySource) StudentAssignments(ctx context.Context, researcherID string) ([]model.StudentAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.StudentAssignment
	for _, a := range s.assignments {
		if a.ResearcherID == researcherID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

// LineMemberships returns one researcher's memberships with the line's
// recognition flag joined on.
func (s *MemorySource) LineMemberships(ctx context.Context, researcherID string) ([]model.LineMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.LineMembership
	for lineID, members := range s.memberships {
		if _, ok := members[researcherID]; !ok {
			continue
		}
		line, ok := s.lines[lineID]
		if !ok {
			continue // orphaned membership
		}
		out = append(out, model.LineMembership{
			LineID:       lineID,
			ResearcherID: researcherID,
			Recognized:   line.Recognized,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out, nil
}

// ProjectsLed returns the projects a researcher leads. Co-investigators
// are not tracked here; only leadership accrues points.
func (s *MemorySource) ProjectsLed(ctx context.Context, researcherID string) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Project
	for _, p := range s.projects {
		if p.LeaderID == researcherID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ArticleAuthorships returns one researcher's authorships with the
// article's status joined on.
func (s *MemorySource) ArticleAuthorships(ctx context.Context, researcherID string) ([]model.ArticleAuthorship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.ArticleAuthorship
	for articleID, authors := range s.authorships {
		order, ok := authors[researcherID]
		if !ok {
			continue
		}
		article, ok := s.articles[articleID]
		if !ok {
			continue // orphaned authorship
		}
		out = append(out, model.ArticleAuthorship{
			ArticleID:     articleID,
			ResearcherID:  researcherID,
			AuthorOrder:   order,
			ArticleStatus: article.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArticleID < out[j].ArticleID })
	return out, nil
}

// EventParticipations returns one researcher's participations with the
// event's type joined on.
func (s *MemorySource) EventParticipations(ctx context.Context, researcherID string) ([]model.EventParticipation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.EventParticipation
	for eventID, participants := range s.participations {
		role, ok := participants[researcherID]
		if !ok {
			continue
		}
		event, ok := s.events[eventID]
		if !ok {
			continue // orphaned participation
		}
		out = append(out, model.EventParticipation{
			EventID:      eventID,
			ResearcherID: researcherID,
			Role:         role,
			EventType:    event.Type,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out, nil
}

// Researcher returns one researcher's identity and flags.
func (s *MemorySource) Researcher(ctx context.Context, researcherID string) (model.Researcher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.researchers[researcherID]
	if !ok {
		return model.Researcher{}, fmt.Errorf("researcher %s: %w", researcherID, ErrUnknownResearcher)
	}
	return r, nil
}

// ActiveResearchers returns the ids of all active researchers, ascending.
func (s *MemorySource) ActiveResearchers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for id, r := range s.researchers {
		if r.Active {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

// LineMembers returns every member of a line, ascending.
func (s *MemorySource) LineMembers(ctx context.Context, lineID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lines[lineID]; !ok {
		return nil, fmt.Errorf("line %s: %w", lineID, ErrUnknownLine)
	}
	out := make([]string, 0, len(s.memberships[lineID]))
	for id := range s.memberships[lineID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// ArticleAuthors returns every author of an article, ascending.
func (s *MemorySource) ArticleAuthors(ctx context.Context, articleID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.articles[articleID]; !ok {
		return nil, fmt.Errorf("article %s: %w", articleID, ErrUnknownArticle)
	}
	out := make([]string, 0, len(s.authorships[articleID]))
	for id := range s.authorships[articleID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
