package config

import (
	"io"
	"log/slog"

	"github.com/brensch/turnshock/heroes"
	"github.com/brensch/turnshock/logging"
	"github.com/brensch/turnshock/scenario"
)

// Logger builds the logger described by LogLevel and LogFormat.
func (s Settings) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(w, level, s.LogFormat)
}

// Registry returns the built-in roster, overlaid with RosterPath when set.
func (s Settings) Registry() (*heroes.Registry, error) {
	if s.RosterPath == "" {
		return heroes.Default(), nil
	}
	return heroes.LoadRoster(s.RosterPath)
}

// Generator yields scenarios per Mode, Loop, Count and ScenarioName.
func (s Settings) Generator() (*scenario.Generator, error) {
	return scenario.NewGenerator(s.ScenariosDir, s.Random(), s.Loop, s.Count, s.ScenarioName, s.Seed)
}
