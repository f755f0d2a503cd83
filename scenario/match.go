package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/brensch/turnshock/combat"
	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/game"
	"github.com/brensch/turnshock/heroes"
)

// Match lifecycle states.
const (
	StateReady    = "ready"
	StateRunning  = "running"
	StateFinished = "finished"
)

var ErrMatchFinished = errors.New("match already finished")

// Match drives one game from its starting state to game over or the tick cap.
type Match struct {
	ID       string
	Scenario string
	State    *game.GameState
	Script   *Script
	Engine   *engine.Engine
	MaxTicks int
	Log      *slog.Logger

	winner   string
	timedOut bool
	fsm      *fsm.FSM
}

// Result summarises a finished match.
type Result struct {
	ID       string `json:"id"`
	Scenario string `json:"scenario"`
	Winner   string `json:"winner"`
	Ticks    int    `json:"ticks"`
	TimedOut bool   `json:"timed_out"`
}

func NewMatch(name string, state *game.GameState, script *Script, eng *engine.Engine, maxTicks int, log *slog.Logger) *Match {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &Match{
		ID:       "m_" + uuid.NewString()[:8],
		Scenario: name,
		State:    state,
		Script:   script,
		Engine:   eng,
		MaxTicks: maxTicks,
	}
	m.Log = log.With("match", m.ID, "scenario", name)
	m.fsm = fsm.NewFSM(
		StateReady,
		fsm.Events{
			{Name: "start", Src: []string{StateReady}, Dst: StateRunning},
			{Name: "finish", Src: []string{StateReady, StateRunning}, Dst: StateFinished},
		},
		fsm.Callbacks{
			"enter_" + StateRunning: func(_ context.Context, e *fsm.Event) {
				m.Log.Info("match started", "units", len(m.State.Order))
			},
			"enter_" + StateFinished: func(_ context.Context, e *fsm.Event) {
				m.Log.Info("match finished", "tick", m.State.Tick, "winner", m.winner, "timed_out", m.timedOut)
			},
		},
	)
	return m
}

// MatchOptions configures NewScenarioMatch.
type MatchOptions struct {
	Registry *heroes.Registry
	Seed     int64
	MaxTicks int
	Observer combat.Observer
	Log      *slog.Logger
}

// NewScenarioMatch builds the scenario's starting state and an engine seeded
// with opts.Seed.
func NewScenarioMatch(sc *Scenario, opts MatchOptions) (*Match, error) {
	registry := opts.Registry
	if registry == nil {
		registry = heroes.Default()
	}
	state, err := sc.Build(registry)
	if err != nil {
		return nil, err
	}
	applier := combat.NewApplier(combat.NewRoller(opts.Seed), opts.Observer, opts.Log)
	eng := engine.New(applier, opts.Log)
	return NewMatch(sc.Name, state, sc.Script, eng, opts.MaxTicks, opts.Log), nil
}

func (m *Match) Status() string { return m.fsm.Current() }

func (m *Match) Finished() bool { return m.fsm.Is(StateFinished) }

// Step runs one tick with the scripted intents for that tick plus extra,
// which wins where both name the same unit.
func (m *Match) Step(ctx context.Context, extra map[game.UnitID]engine.Intent) (*engine.TickResult, error) {
	if m.Finished() {
		return nil, ErrMatchFinished
	}
	if m.fsm.Is(StateReady) {
		if err := m.fsm.Event(ctx, "start"); err != nil {
			return nil, fmt.Errorf("start match: %w", err)
		}
	}

	intents := m.Script.At(m.State.Tick)
	if len(extra) > 0 {
		if intents == nil {
			intents = make(map[game.UnitID]engine.Intent, len(extra))
		}
		for id, in := range extra {
			intents[id] = in
		}
	}

	res := m.Engine.Tick(m.State, intents)
	if res.GameOver || (m.MaxTicks > 0 && m.State.Tick >= m.MaxTicks) {
		m.winner = m.State.Winner()
		m.timedOut = !res.GameOver
		if err := m.fsm.Event(ctx, "finish"); err != nil {
			return res, fmt.Errorf("finish match: %w", err)
		}
	}
	return res, nil
}

// Run steps the match until it finishes or ctx is cancelled. onTick, if set,
// sees every tick result; an error from it stops the match.
func (m *Match) Run(ctx context.Context, onTick func(*engine.TickResult) error) (Result, error) {
	for !m.Finished() {
		if err := ctx.Err(); err != nil {
			return m.Result(), err
		}
		res, err := m.Step(ctx, nil)
		if err != nil {
			return m.Result(), err
		}
		if onTick != nil {
			if err := onTick(res); err != nil {
				return m.Result(), err
			}
		}
	}
	return m.Result(), nil
}

func (m *Match) Result() Result {
	return Result{
		ID:       m.ID,
		Scenario: m.Scenario,
		Winner:   m.winner,
		Ticks:    m.State.Tick,
		TimedOut: m.timedOut,
	}
}
