package model

import (
	"errors"
	"fmt"
)

// Category identifies one of the score fields a ranking can be built on.
type Category string

const (
	CategoryStudentsMasters   Category = "students_masters"
	CategoryStudentsDoctorate Category = "students_doctorate"
	CategoryResearchLines     Category = "research_lines"
	CategoryProjects          Category = "projects"
	CategoryArticles          Category = "articles"
	CategoryEvents            Category = "events"
	CategoryTotal             Category = "total"
)

// ErrInvalidCategory is returned when a ranking is requested for a
// category name outside the recognized set.
var ErrInvalidCategory = errors.New("invalid category")

// Categories returns the recognized category names in a stable order.
func Categories() []Category {
	return []Category{
		CategoryStudentsMasters,
		CategoryStudentsDoctorate,
		CategoryResearchLines,
		CategoryProjects,
		CategoryArticles,
		CategoryEvents,
		CategoryTotal,
	}
}

// ParseCategory validates a category name supplied by a caller.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// CategoryPoints returns the breakdown field selected by c.
func (b ScoreBreakdown) CategoryPoints(c Category) int {
	switch c {
	case CategoryStudentsMasters:
		return b.StudentsMasters
	case CategoryStudentsDoctorate:
		return b.StudentsDoctorate
	case CategoryResearchLines:
		return b.ResearchLines
	case CategoryProjects:
		return b.Projects
	case CategoryArticles:
		return b.Articles
	case CategoryEvents:
		return b.Events
	case CategoryTotal:
		return b.Total
	default:
		return 0
	}
}
