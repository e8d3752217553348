package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetup_Level(t *testing.T) {
	Setup("warn")

	ctx := context.Background()
	if slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !slog.Default().Enabled(ctx, slog.LevelWarn) {
		t.Error("warn not enabled at warn level")
	}
}

func TestSetup_UnknownLevelDefaultsToInfo(t *testing.T) {
	Setup("bogus")

	ctx := context.Background()
	if !slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Error("info not enabled for unknown level name")
	}
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		t.Error("debug enabled for unknown level name")
	}
}

func TestSetLevel_AdjustsRunningLogger(t *testing.T) {
	Setup("info")

	ctx := context.Background()
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		t.Fatal("debug enabled before SetLevel")
	}

	SetLevel("debug")
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		t.Error("debug not enabled after SetLevel(\"debug\")")
	}

	SetLevel("ERROR")
	if slog.Default().Enabled(ctx, slog.LevelWarn) {
		t.Error("warn still enabled after SetLevel(\"ERROR\")")
	}
}
