package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/relab-mx/scoreboard/internal/adapters/http/api"
	"github.com/relab-mx/scoreboard/internal/adapters/repository"
	app "github.com/relab-mx/scoreboard/internal/app"
	"github.com/relab-mx/scoreboard/internal/domain/model"
	"github.com/relab-mx/scoreboard/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// newTestServer wires real engine components behind the API routes.
func newTestServer(t *testing.T) (*httptest.Server, *repository.MemorySource) {
	t.Helper()

	src := repository.NewMemorySource()
	svc := app.New(app.WithSource(src))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, svc).Register(context.Background(), mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, src
}

func seedResearcher(src *repository.MemorySource) {
	src.PutResearcher(model.Researcher{ID: "r1", AreaID: "area-1", Active: true})
	src.PutProject(model.Project{ID: "p1", LeaderID: "r1", Status: model.ProjectFinished})
}

func TestAPI_Scores(t *testing.T) {
	Convey("Given a server with one seeded researcher", t, func() {
		srv, src := newTestServer(t)
		seedResearcher(src)

		Convey("When recomputing the researcher over HTTP", func() {
			resp, err := http.Post(srv.URL+"/scores/r1/recompute", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the breakdown is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var b model.ScoreBreakdown
				So(json.NewDecoder(resp.Body).Decode(&b), ShouldBeNil)
				So(b.Projects, ShouldEqual, 7)
				So(b.Total, ShouldEqual, 7)
			})

			Convey("And the record can be read back", func() {
				resp2, err := http.Get(srv.URL + "/scores/r1")
				So(err, ShouldBeNil)
				defer resp2.Body.Close()
				So(resp2.StatusCode, ShouldEqual, http.StatusOK)

				var rec model.ScoreRecord
				So(json.NewDecoder(resp2.Body).Decode(&rec), ShouldBeNil)
				So(rec.ResearcherID, ShouldEqual, "r1")
				So(rec.Total, ShouldEqual, 7)
			})
		})

		Convey("When reading a score that was never computed", func() {
			resp, err := http.Get(srv.URL + "/scores/r1")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the response is not found", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When recomputing an unknown researcher", func() {
			resp, err := http.Post(srv.URL+"/scores/ghost/recompute", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the response is not found", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAPI_RecomputeAll(t *testing.T) {
	Convey("Given a server with seeded researchers", t, func() {
		srv, src := newTestServer(t)
		seedResearcher(src)
		src.PutResearcher(model.Researcher{ID: "r2", AreaID: "area-1", Active: true})

		Convey("When triggering a bulk recompute", func() {
			resp, err := http.Post(srv.URL+"/scores/recompute", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the batch result counts both researchers", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var result model.BatchResult
				So(json.NewDecoder(resp.Body).Decode(&result), ShouldBeNil)
				So(result.Count, ShouldEqual, 2)
				So(result.Failures, ShouldBeEmpty)
			})
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(srv.URL + "/scores/recompute")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestAPI_Events(t *testing.T) {
	Convey("Given a server with one seeded researcher", t, func() {
		srv, src := newTestServer(t)
		seedResearcher(src)

		Convey("When posting a project leadership change", func() {
			body := `{"kind":"project_leadership_changed","researcher_id":"r1"}`
			resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then propagation completes before the response", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				resp2, err := http.Get(srv.URL + "/scores/r1")
				So(err, ShouldBeNil)
				defer resp2.Body.Close()
				So(resp2.StatusCode, ShouldEqual, http.StatusOK)

				var rec model.ScoreRecord
				So(json.NewDecoder(resp2.Body).Decode(&rec), ShouldBeNil)
				So(rec.Projects, ShouldEqual, 7)
			})
		})

		Convey("When posting an event with a missing payload", func() {
			body := `{"kind":"line_recognition_changed"}`
			resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting an unknown kind", func() {
			body := `{"kind":"coffee_break","researcher_id":"r1"}`
			resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader("{"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting an event for a vanished researcher", func() {
			body := `{"kind":"student_assignment_changed","researcher_id":"ghost"}`
			resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the skip is silent", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestAPI_Rankings(t *testing.T) {
	Convey("Given a server with scored researchers", t, func() {
		srv, src := newTestServer(t)
		seedResearcher(src)
		src.PutResearcher(model.Researcher{ID: "r2", AreaID: "area-1", Active: true})
		src.PutProject(model.Project{ID: "p2", LeaderID: "r2", Status: model.ProjectDeployed})

		resp, err := http.Post(srv.URL+"/scores/recompute", "application/json", nil)
		So(err, ShouldBeNil)
		resp.Body.Close()

		Convey("When requesting the projects ranking", func() {
			resp, err := http.Get(srv.URL + "/rankings?category=projects")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then researchers order by score descending", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var rankings []model.AreaRanking
				So(json.NewDecoder(resp.Body).Decode(&rankings), ShouldBeNil)
				So(len(rankings), ShouldEqual, 1)
				So(rankings[0].Researchers[0].ResearcherID, ShouldEqual, "r2")
				So(rankings[0].Researchers[0].Score, ShouldEqual, 10)
			})
		})

		Convey("When omitting the category", func() {
			resp, err := http.Get(srv.URL + "/rankings")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the total ranking is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When requesting an unrecognized category", func() {
			resp, err := http.Get(srv.URL + "/rankings?category=charisma")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAPI_AreaSummaryAndStats(t *testing.T) {
	Convey("Given a server with scored researchers", t, func() {
		srv, src := newTestServer(t)
		seedResearcher(src)

		resp, err := http.Post(srv.URL+"/scores/recompute", "application/json", nil)
		So(err, ShouldBeNil)
		resp.Body.Close()

		Convey("When requesting the area summary", func() {
			resp, err := http.Get(srv.URL + "/areas/summary")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the area aggregate is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var summaries []model.AreaSummary
				So(json.NewDecoder(resp.Body).Decode(&summaries), ShouldBeNil)
				So(len(summaries), ShouldEqual, 1)
				So(summaries[0].AreaID, ShouldEqual, "area-1")
				So(summaries[0].ResearcherCount, ShouldEqual, 1)
				So(summaries[0].Total, ShouldEqual, 7)
			})
		})

		Convey("When requesting stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the service reports itself started", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When requesting the health endpoint", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}
