// Package logging builds the slog loggers used by the engine and commands.
//
// Verbosity follows four named levels: NONE silences everything, BRIEF shows
// warnings (rejected intents), DETAILED adds accepted intents and completed
// actions, FULL adds every roll and effect.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelNone sits above every level slog emits.
const LevelNone = slog.Level(100)

// ParseLevel maps a verbosity name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NONE", "OFF":
		return LevelNone, nil
	case "BRIEF", "WARN":
		return slog.LevelWarn, nil
	case "DETAILED", "INFO", "":
		return slog.LevelInfo, nil
	case "FULL", "DEBUG":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (want NONE, BRIEF, DETAILED or FULL)", name)
	}
}

// New returns a logger writing to w in the given format: "text", "json" or
// "pretty".
func New(w io.Writer, level slog.Leveler, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "pretty":
		h = NewPrettyHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(h), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
