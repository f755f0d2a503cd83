// Package config holds the run settings shared by the commands: where
// scenarios live, how they are picked, logging, seeds and output locations.
//
// Values come from, lowest priority first: built-in defaults, an optional
// YAML settings file, TURNSHOCK_* environment variables, then flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brensch/turnshock/logging"
)

const envPrefix = "TURNSHOCK_"

type Settings struct {
	ScenariosDir string        `yaml:"scenarios_dir"`
	RosterPath   string        `yaml:"roster"`
	Mode         string        `yaml:"mode"`
	Loop         bool          `yaml:"loop"`
	Count        int           `yaml:"count"`
	ScenarioName string        `yaml:"scenario"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	Seed         int64         `yaml:"seed"`
	MaxTicks     int           `yaml:"max_ticks"`
	Workers      int           `yaml:"workers"`
	OutDir       string        `yaml:"out_dir"`
	Addr         string        `yaml:"addr"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

const (
	ModeSequential = "sequential"
	ModeRandom     = "random"
)

func Default() Settings {
	return Settings{
		ScenariosDir: "scenarios",
		Mode:         ModeSequential,
		Count:        1,
		LogLevel:     "BRIEF",
		LogFormat:    "text",
		Seed:         1,
		MaxTicks:     500,
		Workers:      4,
		Addr:         ":8080",
		TickInterval: 250 * time.Millisecond,
	}
}

// Load returns defaults overlaid with the YAML file at path. An empty path
// returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// RegisterFlags binds every setting to fs. Flag defaults are the current
// values of s, overridden by the matching TURNSHOCK_* environment variable.
func RegisterFlags(fs *flag.FlagSet, s *Settings) {
	fs.StringVar(&s.ScenariosDir, "scenarios", getEnvOrDefault("SCENARIOS_DIR", s.ScenariosDir), "Directory of scenario folders (map.json + heroes.json)")
	fs.StringVar(&s.RosterPath, "roster", getEnvOrDefault("ROSTER", s.RosterPath), "Optional YAML roster overriding built-in roles")
	fs.StringVar(&s.Mode, "mode", getEnvOrDefault("MODE", s.Mode), "Scenario order: sequential or random")
	fs.BoolVar(&s.Loop, "loop", getEnvBoolOrDefault("LOOP", s.Loop), "Cycle through scenarios instead of stopping after the last one")
	fs.IntVar(&s.Count, "count", getEnvIntOrDefault("COUNT", s.Count), "Number of games to run (0 or negative: one pass, or unlimited with -loop)")
	fs.StringVar(&s.ScenarioName, "scenario", getEnvOrDefault("SCENARIO", s.ScenarioName), "Only run the scenario folder with this name")
	fs.StringVar(&s.LogLevel, "log-level", getEnvOrDefault("LOG_LEVEL", s.LogLevel), "NONE, BRIEF, DETAILED or FULL")
	fs.StringVar(&s.LogFormat, "log-format", getEnvOrDefault("LOG_FORMAT", s.LogFormat), "text, json or pretty")
	fs.Int64Var(&s.Seed, "seed", int64(getEnvIntOrDefault("SEED", int(s.Seed))), "Base RNG seed")
	fs.IntVar(&s.MaxTicks, "max-ticks", getEnvIntOrDefault("MAX_TICKS", s.MaxTicks), "Tick cap per game")
	fs.IntVar(&s.Workers, "workers", getEnvIntOrDefault("WORKERS", s.Workers), "Games simulated in parallel")
	fs.StringVar(&s.OutDir, "out-dir", getEnvOrDefault("OUT_DIR", s.OutDir), "Directory for replay parquet files (empty disables)")
	fs.StringVar(&s.Addr, "addr", getEnvOrDefault("ADDR", s.Addr), "Listen address for the spectator server")
	fs.DurationVar(&s.TickInterval, "tick-interval", getEnvDurationOrDefault("TICK_INTERVAL", s.TickInterval), "Delay between broadcast ticks")
}

// Validate rejects settings no command can run with.
func (s Settings) Validate() error {
	var errs []error
	switch strings.ToLower(s.Mode) {
	case ModeSequential, ModeRandom:
	default:
		errs = append(errs, fmt.Errorf("mode %q: want %s or %s", s.Mode, ModeSequential, ModeRandom))
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if s.MaxTicks <= 0 {
		errs = append(errs, fmt.Errorf("max_ticks must be positive, got %d", s.MaxTicks))
	}
	if s.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", s.Workers))
	}
	if s.ScenariosDir == "" {
		errs = append(errs, errors.New("scenarios_dir is required"))
	}
	return errors.Join(errs...)
}

// Random reports whether scenarios are drawn in shuffled order.
func (s Settings) Random() bool {
	return strings.EqualFold(s.Mode, ModeRandom)
}

// Parse builds the settings for a command: defaults, then the file named by
// -config (or TURNSHOCK_CONFIG), then env and flags. extra may register
// command-specific flags on the same set.
func Parse(name string, args []string, extra func(*flag.FlagSet)) (Settings, error) {
	path := configArg(args)
	if path == "" {
		path = getEnvOrDefault("CONFIG", "")
	}
	s, err := Load(path)
	if err != nil {
		return s, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "Optional YAML settings file")
	RegisterFlags(fs, &s)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// configArg finds -config ahead of the real parse so the file can seed the
// flag defaults.
func configArg(args []string) string {
	for i, a := range args {
		if a == "--" {
			return ""
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
