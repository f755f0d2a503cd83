package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/brensch/turnshock/config"
	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/scenario"
	"github.com/brensch/turnshock/stats"
	"github.com/brensch/turnshock/store"
)

// debuggame plays one scenario with full logging, prints a line per tick and
// writes the replay to <out-dir>/<match id>.parquet.
func main() {
	var outDir string
	settings, err := config.Parse("debuggame", os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&outDir, "debug-dir", "debug_games", "Output directory for the debug replay")
	})
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	if settings.ScenarioName == "" {
		log.Fatalf("-scenario is required")
	}
	settings.LogLevel = "FULL"

	logger, err := settings.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	registry, err := settings.Registry()
	if err != nil {
		log.Fatalf("Failed to load roster: %v", err)
	}
	sc, err := scenario.Load(filepath.Join(settings.ScenariosDir, settings.ScenarioName))
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	tracker := stats.NewTracker()
	m, err := scenario.NewScenarioMatch(sc, scenario.MatchOptions{
		Registry: registry,
		Seed:     settings.Seed,
		MaxTicks: settings.MaxTicks,
		Observer: tracker,
		Log:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to build match: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("Debug game %s on %s, seed %d", m.ID, sc.Name, settings.Seed)
	var rows []store.TickRow
	res, err := m.Run(ctx, func(res *engine.TickResult) error {
		rows = append(rows, store.RowFromResult(m.ID, sc.Name, res))
		fmt.Printf("  Tick %3d | %s | %s\n", res.Tick, alive(res), completed(res))
		return nil
	})
	if err != nil {
		log.Fatalf("Game failed: %v", err)
	}

	outPath := filepath.Join(outDir, m.ID+".parquet")
	if err := store.WriteReplayParquet(outPath, rows); err != nil {
		log.Fatalf("Failed to write replay: %v", err)
	}

	log.Printf("Game finished after %d ticks, winner %q, timed out %t", res.Ticks, res.Winner, res.TimedOut)
	for name, st := range tracker.Snapshot().ByAbility() {
		log.Printf("  %-18s uses %3d  dmg %4d  ally dmg %4d  heal %4d  effects %v",
			name, st.Uses, st.EnemyDamage, st.AllyDamage, st.Healing, st.Effects)
	}
	log.Printf("Replay written to %s", outPath)
}

func alive(res *engine.TickResult) string {
	counts := map[string]int{}
	for _, u := range res.State.Each() {
		if u.Alive() {
			counts[u.Team]++
		}
	}
	teams := make([]string, 0, len(counts))
	for t, n := range counts {
		teams = append(teams, fmt.Sprintf("%s:%d", t, n))
	}
	sort.Strings(teams)
	return strings.Join(teams, " ")
}

func completed(res *engine.TickResult) string {
	var parts []string
	for _, u := range res.State.Each() {
		if a, ok := res.Completed[u.ID]; ok {
			parts = append(parts, fmt.Sprintf("#%d→%s", u.ID, a.Ability.Name))
		}
	}
	return strings.Join(parts, ", ")
}
