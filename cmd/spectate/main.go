package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brensch/turnshock/config"
	"github.com/brensch/turnshock/scenario"
	"github.com/brensch/turnshock/spectate"
	"github.com/brensch/turnshock/store/replaydb"
	"github.com/brensch/turnshock/stream"
)

func main() {
	var archive string
	settings, err := config.Parse("spectate", os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&archive, "archive", "", "Replay archive root served under /api (defaults to -out-dir)")
	})
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	if archive == "" {
		archive = settings.OutDir
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

	var db *replaydb.DB
	if archive != "" {
		db, err = replaydb.Open(archive)
		if err != nil {
			log.Fatalf("Failed to open replay archive: %v", err)
		}
		defer db.Close()
	}

	hub := stream.NewHub(logger)
	defer hub.Close()
	mux := http.NewServeMux()
	spectate.NewServer(hub, db, logger).RegisterRoutes(mux)
	srv := &http.Server{Addr: settings.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		err := spectate.Feed(ctx, gen, scenario.MatchOptions{
			Registry: registry,
			Seed:     settings.Seed,
			MaxTicks: settings.MaxTicks,
			Log:      logger,
		}, settings.TickInterval, hub)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Feed stopped: %v", err)
		}
		log.Printf("No more scenarios to play; still serving the archive")
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Spectator server listening on %s (ws at /ws)", settings.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
