package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/turnshock/config"
	"github.com/brensch/turnshock/scenario"
	"github.com/brensch/turnshock/tui"
)

func main() {
	var logPath string
	settings, err := config.Parse("viewer", os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&logPath, "log-file", "viewer.log", "Engine log destination; the terminal is taken by the viewer")
	})
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger, err := settings.Logger(logFile)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	registry, err := settings.Registry()
	if err != nil {
		log.Fatalf("Failed to load roster: %v", err)
	}

	name := settings.ScenarioName
	if name == "" {
		gen, err := settings.Generator()
		if err != nil {
			log.Fatalf("Failed to list scenarios: %v", err)
		}
		name = gen.Names()[0]
	}
	sc, err := scenario.Load(filepath.Join(settings.ScenariosDir, name))
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	newMatch := func() (*scenario.Match, error) {
		return scenario.NewScenarioMatch(sc, scenario.MatchOptions{
			Registry: registry,
			Seed:     settings.Seed,
			MaxTicks: settings.MaxTicks,
			Log:      logger,
		})
	}
	model, err := tui.NewModel(newMatch, settings.TickInterval)
	if err != nil {
		log.Fatalf("Failed to start match: %v", err)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}
