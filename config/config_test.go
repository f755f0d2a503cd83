package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	doc := "mode: random\nloop: true\ncount: -1\nseed: 99\ntick_interval: 1s\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Mode != ModeRandom || !s.Loop || s.Count != -1 || s.Seed != 99 || s.TickInterval != time.Second {
		t.Fatalf("settings %+v", s)
	}
	if s.MaxTicks != Default().MaxTicks || s.ScenariosDir != "scenarios" {
		t.Fatalf("defaults lost: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	s, err := Load("")
	if err != nil || s != Default() {
		t.Fatalf("Load(\"\")=%+v,%v", s, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestFlagsAndEnv(t *testing.T) {
	t.Setenv("TURNSHOCK_MAX_TICKS", "42")
	t.Setenv("TURNSHOCK_LOOP", "yes")

	s := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs, &s)
	if err := fs.Parse([]string{"-mode", "random", "-seed", "5"}); err != nil {
		t.Fatal(err)
	}
	if s.MaxTicks != 42 || !s.Loop {
		t.Fatalf("env not applied: %+v", s)
	}
	if s.Mode != ModeRandom || s.Seed != 5 {
		t.Fatalf("flags not applied: %+v", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"bad mode", func(s *Settings) { s.Mode = "shuffle" }},
		{"bad level", func(s *Settings) { s.LogLevel = "LOUD" }},
		{"zero ticks", func(s *Settings) { s.MaxTicks = 0 }},
		{"zero workers", func(s *Settings) { s.Workers = 0 }},
		{"no dir", func(s *Settings) { s.ScenariosDir = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("workers: 9\nmax_ticks: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var summary string
	s, err := Parse("test", []string{"-config", path, "-max-ticks", "70", "-summary", "out.json"}, func(fs *flag.FlagSet) {
		fs.StringVar(&summary, "summary", "", "")
	})
	if err != nil {
		t.Fatal(err)
	}
	// File beats defaults, flags beat the file.
	if s.Workers != 9 || s.MaxTicks != 70 || summary != "out.json" {
		t.Fatalf("settings %+v summary %q", s, summary)
	}

	if _, err := Parse("test", []string{"--config=" + path, "-mode", "zigzag"}, nil); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestConfigArg(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"-config", "a.yaml"}, "a.yaml"},
		{[]string{"--config=b.yaml", "-seed", "1"}, "b.yaml"},
		{[]string{"-seed", "1", "-config"}, ""},
		{[]string{"--", "-config", "c.yaml"}, ""},
		{[]string{"config", "d.yaml"}, ""},
	}
	for _, tc := range tests {
		if got := configArg(tc.args); got != tc.want {
			t.Errorf("configArg(%q)=%q want %q", tc.args, got, tc.want)
		}
	}
}

func TestRandom(t *testing.T) {
	s := Default()
	if s.Random() {
		t.Fatal("default mode is sequential")
	}
	s.Mode = "RANDOM"
	if !s.Random() {
		t.Fatal("mode match is case-insensitive")
	}
}

func TestBuilders(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "duel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "map.json"), []byte(`{}`), 0o644)
	os.WriteFile(filepath.Join(dir, "heroes.json"), []byte(`{"A": [{"role": "BARD", "pos": [0, 0]}]}`), 0o644)

	s := Default()
	s.ScenariosDir = root
	gen, err := s.Generator()
	if err != nil {
		t.Fatal(err)
	}
	if names := gen.Names(); len(names) != 1 || names[0] != "duel" {
		t.Fatalf("names %v", names)
	}

	if _, err := s.Registry(); err != nil {
		t.Fatal(err)
	}
	s.RosterPath = filepath.Join(root, "missing.yaml")
	if _, err := s.Registry(); err == nil {
		t.Fatal("missing roster should fail")
	}

	s.LogFormat = "xml"
	if _, err := s.Logger(os.Stderr); err == nil {
		t.Fatal("unknown format should fail")
	}
}
