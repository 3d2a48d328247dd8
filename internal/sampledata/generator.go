package sampledata

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/relab-mx/scoreboard/internal/domain/model"
)

// Generator builds randomized but plausible datasets.
type Generator struct {
	researcherCount int
	areaCount       int
	rng             *rand.Rand
}

// GeneratorOption applies a configuration option to the Generator.
type GeneratorOption func(*Generator)

// WithResearcherCount sets how many researchers to generate.
func WithResearcherCount(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.researcherCount = n
		}
	}
}

// WithAreaCount sets how many areas researchers spread across.
func WithAreaCount(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.areaCount = n
		}
	}
}

// WithSeed fixes the random source for reproducible datasets.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // sample data, not crypto
	}
}

// NewGenerator creates a generator with default configuration.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		researcherCount: 25,
		areaCount:       4,
		rng:             rand.New(rand.NewSource(1)), //nolint:gosec // sample data, not crypto
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

var studentTypes = []string{"Maestría en Ciencias", "Doctorado en Ciencias"}

var studentStatuses = []model.StudentStatus{
	model.StudentDropped, model.StudentGraduated, model.StudentCertified,
}

var projectStatuses = []model.ProjectStatus{
	model.ProjectInProgress, model.ProjectFinished, model.ProjectDeployed,
}

var articleStatuses = []model.ArticleStatus{
	model.ArticleInProgress, model.ArticleFinished,
	model.ArticleUnderReview, model.ArticlePublished,
}

var eventTypes = []string{"Congress", "Workshop", "Conference", "Diploma course", "Talk"}

var eventRoles = []string{"Speaker", "Keynote Speaker", "Attendee", "Organizer"}

// Generate builds a dataset with the configured number of researchers and
// a spread of related records in every category.
func (g *Generator) Generate() *Dataset {
	d := &Dataset{}

	areas := make([]string, g.areaCount)
	for i := range areas {
		areas[i] = fmt.Sprintf("area-%02d", i+1)
	}

	for i := 0; i < g.researcherCount; i++ {
		r := model.Researcher{
			ID:     uuid.NewString(),
			AreaID: areas[g.rng.Intn(len(areas))],
			Name:   fmt.Sprintf("Researcher %03d", i+1),
			Active: g.rng.Intn(10) > 0, // roughly one in ten inactive
		}
		d.Researchers = append(d.Researchers, r)

		for j := 0; j < g.rng.Intn(4); j++ {
			active := g.rng.Intn(2) == 0
			s := model.StudentAssignment{
				StudentID:    uuid.NewString(),
				ResearcherID: r.ID,
				TypeName:     studentTypes[g.rng.Intn(len(studentTypes))],
				Active:       active,
			}
			if !active {
				s.Status = studentStatuses[g.rng.Intn(len(studentStatuses))]
			}
			d.Students = append(d.Students, s)
		}

		for j := 0; j < g.rng.Intn(3); j++ {
			d.Projects = append(d.Projects, model.Project{
				ID:       uuid.NewString(),
				LeaderID: r.ID,
				Status:   projectStatuses[g.rng.Intn(len(projectStatuses))],
			})
		}

		for j := 0; j < g.rng.Intn(3); j++ {
			d.Events = append(d.Events, model.Event{
				ID:   uuid.NewString(),
				Type: eventTypes[g.rng.Intn(len(eventTypes))],
			})
			d.Participations = append(d.Participations, model.EventParticipation{
				EventID:      d.Events[len(d.Events)-1].ID,
				ResearcherID: r.ID,
				Role:         eventRoles[g.rng.Intn(len(eventRoles))],
			})
		}
	}

	// Lines and articles are shared across researchers.
	for i := 0; i < g.researcherCount/3+1; i++ {
		line := model.ResearchLine{
			ID:         uuid.NewString(),
			Name:       fmt.Sprintf("Line %02d", i+1),
			Recognized: g.rng.Intn(2) == 0,
		}
		d.Lines = append(d.Lines, line)
		for _, r := range d.Researchers {
			if g.rng.Intn(4) == 0 {
				d.Memberships = append(d.Memberships, model.LineMembership{
					LineID:       line.ID,
					ResearcherID: r.ID,
				})
			}
		}
	}

	for i := 0; i < g.researcherCount/2+1; i++ {
		article := model.Article{
			ID:     uuid.NewString(),
			Status: articleStatuses[g.rng.Intn(len(articleStatuses))],
		}
		d.Articles = append(d.Articles, article)
		order := 1
		for _, r := range d.Researchers {
			if g.rng.Intn(5) == 0 {
				d.Authorships = append(d.Authorships, model.ArticleAuthorship{
					ArticleID:    article.ID,
					ResearcherID: r.ID,
					AuthorOrder:  order,
				})
				order++
			}
		}
	}

	return d
}
