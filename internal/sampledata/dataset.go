// Package sampledata loads, saves and generates datasets for exercising
// the score engine outside of a full CRUD deployment.
package sampledata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relab-mx/scoreboard/internal/adapters/repository"
	"github.com/relab-mx/scoreboard/internal/domain/model"
)

// Dataset is the YAML shape of a full source snapshot.
type Dataset struct {
	Researchers    []model.Researcher         `yaml:"researchers"`
	Students       []model.StudentAssignment  `yaml:"students,omitempty"`
	Lines          []model.ResearchLine       `yaml:"lines,omitempty"`
	Memberships    []model.LineMembership     `yaml:"memberships,omitempty"`
	Projects       []model.Project            `yaml:"projects,omitempty"`
	Articles       []model.Article            `yaml:"articles,omitempty"`
	Authorships    []model.ArticleAuthorship  `yaml:"authorships,omitempty"`
	Events         []model.Event              `yaml:"events,omitempty"`
	Participations []model.EventParticipation `yaml:"participations,omitempty"`
}

// Load reads a dataset from a YAML file.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var d Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return &d, nil
}

// Save writes the dataset to a YAML file.
func (d *Dataset) Save(path string) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	return nil
}

// Apply loads every record into the in-memory source.
func (d *Dataset) Apply(src *repository.MemorySource) {
	for _, r := range d.Researchers {
		src.PutResearcher(r)
	}
	for _, s := range d.Students {
		src.PutStudentAssignment(s)
	}
	for _, l := range d.Lines {
		src.PutLine(l)
	}
	for _, m := range d.Memberships {
		src.PutLineMembership(m.LineID, m.ResearcherID)
	}
	for _, p := range d.Projects {
		src.PutProject(p)
	}
	for _, a := range d.Articles {
		src.PutArticle(a)
	}
	for _, a := range d.Authorships {
		src.PutArticleAuthorship(a.ArticleID, a.ResearcherID, a.AuthorOrder)
	}
	for _, e := range d.Events {
		src.PutEvent(e)
	}
	for _, p := range d.Participations {
		src.PutEventParticipation(p.EventID, p.ResearcherID, p.Role)
	}
}
