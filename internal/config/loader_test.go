package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/relab-mx/scoreboard/internal/config"
)

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SCOREBOARD_CONFIG",
		"SCOREBOARD_ADDR",
		"SCOREBOARD_LOG_LEVEL",
		"SCOREBOARD_DATASET",
		"SCOREBOARD_RECOMPUTE_ON_START",
	} {
		// t.Setenv restores the previous value after the test.
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	ctx := context.Background()

	Convey("Given a config loader", t, func() {
		Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx)

			Convey("Then it should load successfully with defaults", func() {
				So(err, ShouldBeNil)
				So(cfg, ShouldNotBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.RecomputeOnStart, ShouldBeTrue)
			})
		})

		Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("SCOREBOARD_ADDR", ":8080")
			t.Setenv("SCOREBOARD_LOG_LEVEL", "debug")
			t.Setenv("SCOREBOARD_DATASET", "fixtures/data.yaml")

			cfg, err := config.Load(ctx)

			Convey("Then it should override defaults with env vars", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.Dataset, ShouldEqual, "fixtures/data.yaml")
			})
		})

		Convey("When loading config from a YAML file", func() {
			clearConfigEnvVars(t)

			path := filepath.Join(t.TempDir(), "config.yaml")
			raw := "addr: \":7070\"\nlog_level: warn\n"
			So(os.WriteFile(path, []byte(raw), 0o644), ShouldBeNil)
			t.Setenv("SCOREBOARD_CONFIG", path)

			cfg, err := config.Load(ctx)

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "warn")
			})

			Convey("And env vars override the file", func() {
				t.Setenv("SCOREBOARD_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
			})
		})

		Convey("When the config file is missing", func() {
			clearConfigEnvVars(t)
			t.Setenv("SCOREBOARD_CONFIG", "/nonexistent/config.yaml")

			_, err := config.Load(ctx)

			Convey("Then loading fails with a load error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, config.ErrLoadConfig.Error())
			})
		})
	})
}
