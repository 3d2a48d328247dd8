// Package rules holds the point tables that drive score computation.
//
// Tables are plain lookup structures rather than branching chains so the
// point values can be audited and tested in isolation from the traversal
// logic in the scoring package. Inputs arrive in two vocabularies (English
// and the original Spanish records); normalization maps both onto the same
// table keys.
package rules

import (
	"strings"

	"github.com/relab-mx/scoreboard/internal/domain/model"
)

// Fixed point values not keyed by a status.
const (
	// ActiveStudentPoints applies to a still-active student of either
	// level and takes precedence over any terminal status on the record.
	ActiveStudentPoints = 1

	// RecognizedLinePoints is awarded per membership in an
	// institutionally recognized research line.
	RecognizedLinePoints = 5

	// CoauthorPoints is the flat award for any non-first author,
	// regardless of the article's status.
	CoauthorPoints = 3

	// DefaultEventPoints is the fallback for any (type, role) pair not
	// matched by the event table. Projects intentionally have no such
	// fallback: an unknown project status contributes nothing.
	DefaultEventPoints = 1
)

var mastersStatusPoints = map[model.StudentStatus]int{
	model.StudentDropped:   2,
	model.StudentGraduated: 3,
	model.StudentCertified: 5,
}

var doctorateStatusPoints = map[model.StudentStatus]int{
	model.StudentDropped:   3,
	model.StudentGraduated: 5,
	model.StudentCertified: 8,
}

var projectStatusPoints = map[model.ProjectStatus]int{
	model.ProjectInProgress: 3,
	model.ProjectFinished:   7,
	model.ProjectDeployed:   10,
}

var firstAuthorStatusPoints = map[model.ArticleStatus]int{
	model.ArticleInProgress:  3,
	model.ArticleFinished:    5,
	model.ArticleUnderReview: 7,
	model.ArticlePublished:   10,
}

// eventRule awards points for a normalized event type. speakerOnly rules
// apply only when the participant's role marks them as a speaker; a
// non-speaker at such an event falls through to DefaultEventPoints.
type eventRule struct {
	speakerOnly bool
	points      int
}

var eventTypeRules = map[string]eventRule{
	"congress":       {speakerOnly: true, points: 3},
	"workshop":       {points: 1},
	"conference":     {speakerOnly: true, points: 5},
	"diploma course": {points: 3},
	"talk":           {points: 1},
}

// Spanish event type names from upstream records.
var eventTypeAliases = map[string]string{
	"congreso":    "congress",
	"taller":      "workshop",
	"conferencia": "conference",
	"diplomado":   "diploma course",
	"charla":      "talk",
}

var studentStatusAliases = map[string]model.StudentStatus{
	"desertor": model.StudentDropped,
	"egresado": model.StudentGraduated,
	"titulado": model.StudentCertified,
}

var projectStatusAliases = map[string]model.ProjectStatus{
	"en proceso":         model.ProjectInProgress,
	"terminado":          model.ProjectFinished,
	"instalado en sitio": model.ProjectDeployed,
}

var articleStatusAliases = map[string]model.ArticleStatus{
	"en proceso": model.ArticleInProgress,
	"terminado":  model.ArticleFinished,
	"en revista": model.ArticleUnderReview,
	"publicado":  model.ArticlePublished,
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsMasters reports whether a student type name denotes a masters-level
// student ("Maestría" or "Master", case-insensitive substring).
func IsMasters(typeName string) bool {
	n := fold(typeName)
	return strings.Contains(n, "maestría") || strings.Contains(n, "master")
}

// IsDoctorate reports whether a student type name denotes a
// doctorate-level student ("Doctorado" or "Doctorate").
func IsDoctorate(typeName string) bool {
	n := fold(typeName)
	return strings.Contains(n, "doctorado") || strings.Contains(n, "doctorate")
}

// IsSpeaker reports whether a participation role marks the researcher as a
// speaker ("Speaker" or "Ponente", case-insensitive substring).
func IsSpeaker(role string) bool {
	n := fold(role)
	return strings.Contains(n, "speaker") || strings.Contains(n, "ponente")
}

// NormalizeStudentStatus maps either vocabulary onto the canonical status.
// Unknown values pass through unchanged and score nothing.
func NormalizeStudentStatus(s model.StudentStatus) model.StudentStatus {
	if canonical, ok := studentStatusAliases[fold(string(s))]; ok {
		return canonical
	}
	return model.StudentStatus(fold(string(s)))
}

// NormalizeProjectStatus maps either vocabulary onto the canonical status.
func NormalizeProjectStatus(s model.ProjectStatus) model.ProjectStatus {
	if canonical, ok := projectStatusAliases[fold(string(s))]; ok {
		return canonical
	}
	return model.ProjectStatus(fold(string(s)))
}

// NormalizeArticleStatus maps either vocabulary onto the canonical status.
func NormalizeArticleStatus(s model.ArticleStatus) model.ArticleStatus {
	if canonical, ok := articleStatusAliases[fold(string(s))]; ok {
		return canonical
	}
	return model.ArticleStatus(fold(string(s)))
}

// MastersStudentPoints scores one masters-level assignment. An active
// student always scores the active value, even when a terminal status is
// also present on the record.
func MastersStudentPoints(active bool, status model.StudentStatus) int {
	if active {
		return ActiveStudentPoints
	}
	return mastersStatusPoints[NormalizeStudentStatus(status)]
}

// DoctorateStudentPoints scores one doctorate-level assignment with the
// same precedence as MastersStudentPoints.
func DoctorateStudentPoints(active bool, status model.StudentStatus) int {
	if active {
		return ActiveStudentPoints
	}
	return doctorateStatusPoints[NormalizeStudentStatus(status)]
}

// ProjectPoints scores one led project. Statuses outside the table
// contribute zero; there is no fallback.
func ProjectPoints(status model.ProjectStatus) int {
	return projectStatusPoints[NormalizeProjectStatus(status)]
}

// ArticlePoints scores one authorship. The first author (order 1) scores
// by article status; every other author scores the flat co-author value.
func ArticlePoints(authorOrder int, status model.ArticleStatus) int {
	if authorOrder == 1 {
		return firstAuthorStatusPoints[NormalizeArticleStatus(status)]
	}
	return CoauthorPoints
}

// EventPoints scores one participation by (event type, role). Any pair not
// matched by the table scores the default single point.
func EventPoints(eventType, role string) int {
	key := fold(eventType)
	if canonical, ok := eventTypeAliases[key]; ok {
		key = canonical
	}
	rule, ok := eventTypeRules[key]
	if !ok {
		return DefaultEventPoints
	}
	if rule.speakerOnly && !IsSpeaker(role) {
		return DefaultEventPoints
	}
	return rule.points
}
