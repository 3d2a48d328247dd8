package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Logging must not panic with or without fields.
	ctx := context.Background()
	logger.Debug(ctx, "debug entry")
	logger.Info(ctx, "info entry", String("key", "value"), Int("n", 1))
	logger.Warn(ctx, "warn entry", Any("payload", map[string]int{"a": 1}))
	logger.Error(ctx, "error entry", Error(errors.New("boom")))
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("component-a")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "named entry")

	nested := named.Named("component-b")
	if nested == nil {
		t.Fatal("nested named logger is nil")
	}
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, level := range []string{"debug", "info", "warn", "warning", "error", "", "DEBUG"} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("level %q rejected: %v", level, err)
		}
	}

	if err := SetLevelString("loud"); err == nil {
		t.Error("expected unknown level to be rejected")
	}

	SetLevel(slog.LevelInfo)
}
