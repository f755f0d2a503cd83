// Package batch runs many scenario matches concurrently and folds their
// results into one summary. Every game gets its own seed derived from the
// base seed and its position in the batch, so a batch replays identically
// whatever the worker count.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/brensch/turnshock/combat"
	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/heroes"
	"github.com/brensch/turnshock/scenario"
	"github.com/brensch/turnshock/stats"
	"github.com/brensch/turnshock/store"
)

// Source yields scenarios until it returns io.EOF. *scenario.Generator
// satisfies it.
type Source interface {
	Next() (*scenario.Scenario, error)
}

type Options struct {
	Registry *heroes.Registry
	Seed     int64
	MaxTicks int
	Workers  int

	// Optional sinks. Done is only read here; runs are recorded in it by
	// Summary.Commit once the writer has been finalized.
	Writer *store.ReplayWriter
	Done   *store.MatchLog
	Stats  *stats.Tracker
	Log    *slog.Logger
}

// Game is the outcome of one match in the batch.
type Game struct {
	Index int   `json:"index"`
	Seed  int64 `json:"seed"`
	scenario.Result
}

type Summary struct {
	Games     int                           `json:"games"`
	Skipped   int                           `json:"skipped"`
	Wins      map[string]int                `json:"wins"`
	Draws     int                           `json:"draws"`
	TimedOut  int                           `json:"timed_out"`
	MeanTicks float64                       `json:"mean_ticks"`
	Results   []Game                        `json:"results"`
	Abilities map[string]stats.AbilityStats `json:"abilities,omitempty"`
	Replay    string                        `json:"replay,omitempty"`

	// Archived holds the run keys whose ticks went to the replay writer, in
	// batch order. They are not durable until the writer is finalized.
	Archived []string `json:"-"`
}

// Commit records the archived runs in done. Call it only after the replay
// writer has been finalized, so a run is never marked archived without a
// replay on disk.
func (sum *Summary) Commit(done *store.MatchLog) error {
	if sum == nil || done == nil || len(sum.Archived) == 0 {
		return nil
	}
	if err := done.AddMany(sum.Archived...); err != nil {
		return fmt.Errorf("record archived runs: %w", err)
	}
	return nil
}

// Run plays every scenario from src with at most opts.Workers matches in
// flight. The first match error cancels the rest; the summary of the games
// that did finish is returned alongside the error. Runs already listed in
// opts.Done are skipped.
func Run(ctx context.Context, src Source, opts Options) (*Summary, error) {
	if opts.Registry == nil {
		opts.Registry = heroes.Default()
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	workers := max(opts.Workers, 1)

	sum := &Summary{Wins: map[string]int{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; ; i++ {
		if gctx.Err() != nil {
			break
		}
		sc, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = g.Wait()
			sum.fold(opts)
			return sum, fmt.Errorf("next scenario: %w", err)
		}

		seed := combat.DeriveSeed(opts.Seed, uint64(i))
		key := store.RunKey(sc.Name, seed)
		if opts.Done != nil && opts.Done.Has(key) {
			opts.Log.Info("skipping archived run", "run", key)
			mu.Lock()
			sum.Skipped++
			mu.Unlock()
			continue
		}

		index := i
		g.Go(func() error {
			game, err := play(gctx, sc, index, seed, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			mu.Lock()
			sum.Results = append(sum.Results, game)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	sum.fold(opts)
	return sum, err
}

// fold orders the results and fills in the totals.
func (sum *Summary) fold(opts Options) {
	sort.Slice(sum.Results, func(i, j int) bool { return sum.Results[i].Index < sum.Results[j].Index })
	total := 0
	for _, r := range sum.Results {
		sum.Games++
		total += r.Ticks
		switch {
		case r.Winner != "":
			sum.Wins[r.Winner]++
		case r.TimedOut:
			sum.TimedOut++
		default:
			sum.Draws++
		}
	}
	if sum.Games > 0 {
		sum.MeanTicks = float64(total) / float64(sum.Games)
	}
	if opts.Writer != nil {
		for _, r := range sum.Results {
			sum.Archived = append(sum.Archived, store.RunKey(r.Scenario, r.Seed))
		}
	}
	if opts.Stats != nil {
		sum.Abilities = opts.Stats.Snapshot().ByAbility()
	}
}

func play(ctx context.Context, sc *scenario.Scenario, index int, seed int64, opts Options) (Game, error) {
	m, err := scenario.NewScenarioMatch(sc, scenario.MatchOptions{
		Registry: opts.Registry,
		Seed:     seed,
		MaxTicks: opts.MaxTicks,
		Observer: observer(opts.Stats),
		Log:      opts.Log,
	})
	if err != nil {
		return Game{}, err
	}

	var rows []store.TickRow
	var onTick func(*engine.TickResult) error
	if opts.Writer != nil {
		onTick = func(res *engine.TickResult) error {
			rows = append(rows, store.RowFromResult(m.ID, sc.Name, res))
			return nil
		}
	}
	res, err := m.Run(ctx, onTick)
	if err != nil {
		return Game{}, err
	}

	if opts.Writer != nil {
		if err := opts.Writer.WriteMatch(rows); err != nil {
			return Game{}, err
		}
	}
	opts.Log.Info("game finished",
		"index", index,
		"match", res.ID,
		"scenario", res.Scenario,
		"winner", res.Winner,
		"ticks", res.Ticks,
	)
	return Game{Index: index, Seed: seed, Result: res}, nil
}

// observer keeps a nil *stats.Tracker from becoming a non-nil interface.
func observer(t *stats.Tracker) combat.Observer {
	if t == nil {
		return nil
	}
	return t
}
