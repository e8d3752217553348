// Package logging configures the process-wide slog logger. Output goes to
// stderr because stdout carries the MCP protocol stream.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

var levelVar = new(slog.LevelVar)

// Setup installs a JSON handler on stderr at the given initial level.
// Unknown level names fall back to info.
func Setup(level string) {
	levelVar.Set(parse(level))
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelVar,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLevel adjusts the level of the running logger. Called once the full
// configuration is available, since it is loaded lazily on the first tool
// call.
func SetLevel(level string) {
	levelVar.Set(parse(level))
}

func parse(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
