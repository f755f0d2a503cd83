package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/brensch/turnshock/batch"
	"github.com/brensch/turnshock/config"
	"github.com/brensch/turnshock/stats"
	"github.com/brensch/turnshock/store"
)

func main() {
	var summaryPath, resumeLog string
	settings, err := config.Parse("simulate", os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&summaryPath, "summary", "", "Write the JSON summary to this file instead of stdout")
		fs.StringVar(&resumeLog, "resume-log", "", "Append-only log of archived runs; runs already listed are skipped (defaults to <out-dir>/archived_runs.log)")
	})
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	logger, err := settings.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	registry, err := settings.Registry()
	if err != nil {
		log.Fatalf("Failed to load roster: %v", err)
	}
	gen, err := settings.Generator()
	if err != nil {
		log.Fatalf("Failed to list scenarios: %v", err)
	}
	if settings.Count <= 0 && settings.Loop {
		log.Fatalf("Refusing to simulate an endless loop: set -count")
	}

	opts := batch.Options{
		Registry: registry,
		Seed:     settings.Seed,
		MaxTicks: settings.MaxTicks,
		Workers:  settings.Workers,
		Stats:    stats.NewTracker(),
		Log:      logger,
	}
	if settings.OutDir != "" {
		if resumeLog == "" {
			resumeLog = filepath.Join(settings.OutDir, "archived_runs.log")
		}
		done, err := store.OpenMatchLog(resumeLog)
		if err != nil {
			log.Fatalf("Failed to open run log: %v", err)
		}
		defer done.Close()
		w, err := store.NewReplayWriter(settings.OutDir)
		if err != nil {
			log.Fatalf("Failed to open replay writer: %v", err)
		}
		opts.Writer, opts.Done = w, done
	}

	log.Printf("Starting simulation")
	log.Printf("  Scenarios: %s (%v)", settings.ScenariosDir, gen.Names())
	log.Printf("  Mode: %s loop=%t count=%d", settings.Mode, settings.Loop, settings.Count)
	log.Printf("  Seed: %d  Max ticks: %d  Workers: %d", settings.Seed, settings.MaxTicks, settings.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, runErr := batch.Run(ctx, gen, opts)

	// Keep whatever finished even if the batch was interrupted.
	if opts.Writer != nil {
		path, rows, matches, err := opts.Writer.Finalize()
		if err != nil {
			log.Printf("Failed to finalize replay: %v", err)
		} else {
			if path != "" {
				log.Printf("Wrote %d ticks from %d matches to %s", rows, matches, path)
				sum.Replay = path
			}
			// Only now are the replays on disk.
			if err := sum.Commit(opts.Done); err != nil {
				log.Printf("Failed to record archived runs: %v", err)
			}
		}
	}
	if runErr != nil {
		log.Fatalf("Simulation failed: %v", runErr)
	}

	out := os.Stdout
	if summaryPath != "" {
		f, err := os.Create(summaryPath)
		if err != nil {
			log.Fatalf("Failed to create summary: %v", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		log.Fatalf("Failed to write summary: %v", err)
	}
	log.Printf("Done: %d games, %d skipped, wins %v, draws %d, timed out %d", sum.Games, sum.Skipped, sum.Wins, sum.Draws, sum.TimedOut)
}
