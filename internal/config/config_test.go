package config_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/relab-mx/scoreboard/internal/config"
)

func TestNew(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then the defaults are sensible", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.Dataset, ShouldBeEmpty)
			So(cfg.RecomputeOnStart, ShouldBeTrue)
		})
	})
}
