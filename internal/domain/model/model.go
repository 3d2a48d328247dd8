// Package model contains the domain records exchanged between layers.
//
// Identifiers are opaque strings assigned by the collaborating CRUD system;
// the engine never mints researcher, line, project, article or event ids on
// its own.
package model

import "time"

// Researcher is the subject of score computation.
type Researcher struct {
	ID     string `json:"id" yaml:"id"`
	AreaID string `json:"area_id" yaml:"area_id"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Active bool   `json:"active" yaml:"active"`
}

// StudentStatus describes the terminal state of a supervised student.
// Spanish aliases from upstream data ("Desertor", "Egresado", "Titulado")
// normalize to these values inside the rules package.
type StudentStatus string

const (
	StudentDropped   StudentStatus = "dropped"
	StudentGraduated StudentStatus = "graduated"
	StudentCertified StudentStatus = "certified"
)

// StudentAssignment links a student to the supervising researcher.
// The student level (masters vs doctorate) is carried as the free-text
// type name and classified by substring match, mirroring upstream data.
type StudentAssignment struct {
	StudentID    string        `json:"student_id" yaml:"student_id"`
	ResearcherID string        `json:"researcher_id" yaml:"researcher_id"`
	TypeName     string        `json:"type_name" yaml:"type_name"`
	Status       StudentStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Active       bool          `json:"active" yaml:"active"`
}

// ResearchLine is a thematic research area that may carry institutional
// recognition. Recognition is the only line attribute that affects scores.
type ResearchLine struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Recognized bool   `json:"recognized" yaml:"recognized"`
}

// LineMembership ties a researcher to a research line. Recognized is a
// read-side join of the line's flag; it is ignored on writes.
type LineMembership struct {
	LineID       string `json:"line_id" yaml:"line_id"`
	ResearcherID string `json:"researcher_id" yaml:"researcher_id"`
	Recognized   bool   `json:"recognized,omitempty" yaml:"recognized,omitempty"`
}

// ProjectStatus describes a project's lifecycle stage.
type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectFinished   ProjectStatus = "finished"
	ProjectDeployed   ProjectStatus = "deployed-onsite"
)

// Project is scored for its leader only; co-investigators accrue nothing.
type Project struct {
	ID       string        `json:"id" yaml:"id"`
	LeaderID string        `json:"leader_id" yaml:"leader_id"`
	Status   ProjectStatus `json:"status" yaml:"status"`
}

// ArticleStatus describes an article's publication stage.
type ArticleStatus string

const (
	ArticleInProgress  ArticleStatus = "in-progress"
	ArticleFinished    ArticleStatus = "finished"
	ArticleUnderReview ArticleStatus = "under-review"
	ArticlePublished   ArticleStatus = "published"
)

// Article holds the status shared by all of its authorships.
type Article struct {
	ID     string        `json:"id" yaml:"id"`
	Status ArticleStatus `json:"status" yaml:"status"`
}

// ArticleAuthorship ties a researcher to an article with an author order.
// Order 1 is the first author. ArticleStatus is a read-side join.
type ArticleAuthorship struct {
	ArticleID     string        `json:"article_id" yaml:"article_id"`
	ResearcherID  string        `json:"researcher_id" yaml:"researcher_id"`
	AuthorOrder   int           `json:"author_order" yaml:"author_order"`
	ArticleStatus ArticleStatus `json:"article_status,omitempty" yaml:"article_status,omitempty"`
}

// Event is an academic event (congress, workshop, conference, ...).
// The type is free text matched bilingually by the rules package.
type Event struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// EventParticipation ties a researcher to an event with a role.
// EventType is a read-side join of the event's type.
type EventParticipation struct {
	EventID      string `json:"event_id" yaml:"event_id"`
	ResearcherID string `json:"researcher_id" yaml:"researcher_id"`
	Role         string `json:"role" yaml:"role"`
	EventType    string `json:"event_type,omitempty" yaml:"event_type,omitempty"`
}

// ScoreBreakdown holds the six category point totals plus their sum.
type ScoreBreakdown struct {
	StudentsMasters   int `json:"students_masters" yaml:"students_masters"`
	StudentsDoctorate int `json:"students_doctorate" yaml:"students_doctorate"`
	ResearchLines     int `json:"research_lines" yaml:"research_lines"`
	Projects          int `json:"projects" yaml:"projects"`
	Articles          int `json:"articles" yaml:"articles"`
	Events            int `json:"events" yaml:"events"`
	Total             int `json:"total" yaml:"total"`
}

// Sum returns the sum of the six category fields. Total is expected to
// equal Sum() after every recomputation.
func (b ScoreBreakdown) Sum() int {
	return b.StudentsMasters + b.StudentsDoctorate + b.ResearchLines +
		b.Projects + b.Articles + b.Events
}

// Add accumulates another breakdown field by field, Total included.
func (b *ScoreBreakdown) Add(other ScoreBreakdown) {
	b.StudentsMasters += other.StudentsMasters
	b.StudentsDoctorate += other.StudentsDoctorate
	b.ResearchLines += other.ResearchLines
	b.Projects += other.Projects
	b.Articles += other.Articles
	b.Events += other.Events
	b.Total += other.Total
}

// ScoreRecord is the persisted score row for one researcher. It is always
// written whole; partial updates do not exist.
type ScoreRecord struct {
	ResearcherID string `json:"researcher_id" yaml:"researcher_id"`
	ScoreBreakdown `yaml:",inline"`
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`
}

// AreaSummary aggregates score records over all researchers in one area.
type AreaSummary struct {
	AreaID string `json:"area_id" yaml:"area_id"`
	ScoreBreakdown `yaml:",inline"`
	ResearcherCount int `json:"researcher_count" yaml:"researcher_count"`
}

// RankedScore is one researcher's standing in a category ranking.
type RankedScore struct {
	ResearcherID string `json:"researcher_id"`
	Score        int    `json:"score"`
}

// AreaRanking lists an area's researchers ordered by a category score,
// highest first.
type AreaRanking struct {
	AreaID      string        `json:"area_id"`
	Researchers []RankedScore `json:"researchers"`
}

// BatchResult reports the outcome of a bulk recomputation. Failures are
// enumerated per researcher; a failed researcher never aborts the batch.
type BatchResult struct {
	Count    int            `json:"count"`
	Failures []BatchFailure `json:"failures,omitempty"`
}

// BatchFailure identifies one researcher whose recompute failed.
type BatchFailure struct {
	ResearcherID string `json:"researcher_id"`
	Reason       string `json:"reason"`
}
