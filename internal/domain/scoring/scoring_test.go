package scoring_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/relab-mx/scoreboard/internal/domain/model"
	"github.com/relab-mx/scoreboard/internal/domain/scoring"
)

// stubSource returns fixed slices per researcher, or a fixed error.
type stubSource struct {
	assignments    map[string][]model.StudentAssignment
	memberships    map[string][]model.LineMembership
	projects       map[string][]model.Project
	authorships    map[string][]model.ArticleAuthorship
	participations map[string][]model.EventParticipation
	err            error
}

func (s *stubSource) StudentAssignments(ctx context.Context, id string) ([]model.StudentAssignment, error) {
	return s.assignments[id], s.err
}

func (s *stubSource) LineMemberships(ctx context.Context, id string) ([]model.LineMembership, error) {
	return s.memberships[id], s.err
}

func (s *stubSource) ProjectsLed(ctx context.Context, id string) ([]model.Project, error) {
	return s.projects[id], s.err
}

func (s *stubSource) ArticleAuthorships(ctx context.Context, id string) ([]model.ArticleAuthorship, error) {
	return s.authorships[id], s.err
}

func (s *stubSource) EventParticipations(ctx context.Context, id string) ([]model.EventParticipation, error) {
	return s.participations[id], s.err
}

func TestRuleCalculator_Compute(t *testing.T) {
	ctx := context.Background()

	Convey("Given a researcher with records in every category", t, func() {
		src := &stubSource{
			assignments: map[string][]model.StudentAssignment{
				"r1": {
					{StudentID: "s1", ResearcherID: "r1", TypeName: "Maestría en Ciencias", Status: model.StudentCertified},
				},
			},
			memberships: map[string][]model.LineMembership{
				"r1": {
					{LineID: "l1", ResearcherID: "r1", Recognized: true},
				},
			},
			projects: map[string][]model.Project{
				"r1": {
					{ID: "p1", LeaderID: "r1", Status: model.ProjectFinished},
				},
			},
			authorships: map[string][]model.ArticleAuthorship{
				"r1": {
					{ArticleID: "a1", ResearcherID: "r1", AuthorOrder: 1, ArticleStatus: model.ArticlePublished},
					{ArticleID: "a2", ResearcherID: "r1", AuthorOrder: 3, ArticleStatus: model.ArticleInProgress},
				},
			},
		}
		calc := scoring.NewRuleCalculator(src)

		Convey("When computing the breakdown", func() {
			b, err := calc.Compute(ctx, "r1")

			Convey("Then every category holds its expected points", func() {
				So(err, ShouldBeNil)
				So(b.StudentsMasters, ShouldEqual, 5)
				So(b.StudentsDoctorate, ShouldEqual, 0)
				So(b.ResearchLines, ShouldEqual, 5)
				So(b.Projects, ShouldEqual, 7)
				So(b.Articles, ShouldEqual, 13)
				So(b.Events, ShouldEqual, 0)
				So(b.Total, ShouldEqual, 30)
			})

			Convey("And the total equals the sum of the categories", func() {
				So(err, ShouldBeNil)
				So(b.Total, ShouldEqual, b.Sum())
			})

			Convey("And recomputing yields the identical breakdown", func() {
				So(err, ShouldBeNil)
				again, err2 := calc.Compute(ctx, "r1")
				So(err2, ShouldBeNil)
				So(again, ShouldResemble, b)
			})
		})
	})

	Convey("Given a researcher with no related records", t, func() {
		calc := scoring.NewRuleCalculator(&stubSource{})

		Convey("Then the breakdown is all zeros", func() {
			b, err := calc.Compute(ctx, "nobody")
			So(err, ShouldBeNil)
			So(b, ShouldResemble, model.ScoreBreakdown{})
		})
	})

	Convey("Given an active student with a leftover terminal status", t, func() {
		src := &stubSource{
			assignments: map[string][]model.StudentAssignment{
				"r1": {
					{StudentID: "s1", ResearcherID: "r1", TypeName: "Doctorado", Status: model.StudentCertified, Active: true},
				},
			},
		}
		calc := scoring.NewRuleCalculator(src)

		Convey("Then the active point wins over the terminal status", func() {
			b, err := calc.Compute(ctx, "r1")
			So(err, ShouldBeNil)
			So(b.StudentsDoctorate, ShouldEqual, 1)
		})
	})

	Convey("Given unrecognized line memberships", t, func() {
		src := &stubSource{
			memberships: map[string][]model.LineMembership{
				"r1": {
					{LineID: "l1", ResearcherID: "r1", Recognized: false},
					{LineID: "l2", ResearcherID: "r1", Recognized: true},
				},
			},
		}
		calc := scoring.NewRuleCalculator(src)

		Convey("Then only recognized memberships accrue points", func() {
			b, err := calc.Compute(ctx, "r1")
			So(err, ShouldBeNil)
			So(b.ResearchLines, ShouldEqual, 5)
		})
	})

	Convey("Given a project lifecycle progression", t, func() {
		statuses := []model.ProjectStatus{
			model.ProjectInProgress, model.ProjectFinished, model.ProjectDeployed,
		}

		Convey("Then points grow monotonically as the project advances", func() {
			prev := -1
			for _, status := range statuses {
				src := &stubSource{
					projects: map[string][]model.Project{
						"r1": {{ID: "p1", LeaderID: "r1", Status: status}},
					},
				}
				b, err := scoring.NewRuleCalculator(src).Compute(ctx, "r1")
				So(err, ShouldBeNil)
				So(b.Projects, ShouldBeGreaterThan, prev)
				prev = b.Projects
			}
		})
	})

	Convey("Given a failing source", t, func() {
		boom := errors.New("backend unavailable")
		calc := scoring.NewRuleCalculator(&stubSource{err: boom})

		Convey("Then the error surfaces wrapped", func() {
			_, err := calc.Compute(ctx, "r1")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})
}
