// Package spectate serves live matches over websocket and the replay archive
// over a small JSON API.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/scenario"
	"github.com/brensch/turnshock/store"
	"github.com/brensch/turnshock/store/replaydb"
	"github.com/brensch/turnshock/stream"
)

// Server holds shared state for the HTTP handlers. DB may be nil when no
// archive is configured; the archive routes then answer 503.
type Server struct {
	Hub *stream.Hub
	DB  *replaydb.DB
	Log *slog.Logger
}

func NewServer(hub *stream.Hub, db *replaydb.DB, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{Hub: hub, DB: db, Log: log}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/ws", s.Hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "spectators": s.Hub.Clients()})
	})
	mux.HandleFunc("/api/matches", s.handleMatches)
	mux.HandleFunc("/api/matches/", s.handleMatch)
	mux.HandleFunc("/api/abilities", s.handleAbilities)
	mux.HandleFunc("/api/wins", s.handleWins)
}

func withCORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	if r.Method == http.MethodOptions {
		return false
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) archive(w http.ResponseWriter, r *http.Request) bool {
	if !withCORS(w, r) {
		return false
	}
	if s.DB == nil {
		http.Error(w, "no replay archive configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	if !s.archive(w, r) {
		return
	}
	matches, err := s.DB.Matches(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, matches)
}

// handleMatch returns every tick of /api/matches/{id}.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if !s.archive(w, r) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/matches/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "bad match id", http.StatusBadRequest)
		return
	}
	matches, err := s.DB.Matches(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, m := range matches {
		if m.MatchID != id {
			continue
		}
		rows, err := store.ReadReplayParquet(m.File, id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
		return
	}
	http.NotFound(w, r)
}

func (s *Server) handleAbilities(w http.ResponseWriter, r *http.Request) {
	if !s.archive(w, r) {
		return
	}
	totals, err := s.DB.Abilities(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, totals)
}

func (s *Server) handleWins(w http.ResponseWriter, r *http.Request) {
	if !s.archive(w, r) {
		return
	}
	wins, err := s.DB.WinRates(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, wins)
}

// Source yields scenarios until io.EOF.
type Source interface {
	Next() (*scenario.Scenario, error)
}

// Feed plays matches from src one after another, broadcasting every tick to
// hub and pausing interval between ticks. It returns nil when src runs dry
// and ctx.Err() when cancelled.
func Feed(ctx context.Context, src Source, opts scenario.MatchOptions, interval time.Duration, hub *stream.Hub) error {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	for {
		sc, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		m, err := scenario.NewScenarioMatch(sc, opts)
		if err != nil {
			return err
		}
		res, err := m.Run(ctx, func(res *engine.TickResult) error {
			if err := hub.Broadcast(store.RowFromResult(m.ID, sc.Name, res)); err != nil {
				return err
			}
			if interval <= 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
				return nil
			}
		})
		if err != nil {
			return err
		}
		log.Info("spectated match finished", "match", res.ID, "scenario", res.Scenario, "winner", res.Winner, "ticks", res.Ticks)
	}
}
