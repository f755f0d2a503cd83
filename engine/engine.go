// Package engine runs the tick scheduler: it ages effects, regenerates AP,
// applies taunt and stun overrides, starts intents and advances every unit's
// action, dispatching abilities as they complete.
//
// A tick is synchronous and deterministic. Units are always visited in
// creation order and every random roll goes through the Applier's Roller.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/brensch/turnshock/combat"
	"github.com/brensch/turnshock/game"
)

// Intent is an externally submitted order for one unit. When TargetUnit is
// set, the target is wherever that unit stands when the order resolves.
type Intent struct {
	Ability    string
	Target     game.Position
	TargetUnit game.UnitID
}

func (i Intent) String() string {
	if i.TargetUnit != 0 {
		return fmt.Sprintf("%s@unit %d", i.Ability, i.TargetUnit)
	}
	return fmt.Sprintf("%s@%s", i.Ability, i.Target)
}

// TickResult is everything one tick produced. State is the same pointer that
// was passed in, mutated.
type TickResult struct {
	State     *game.GameState
	Tick      int
	Executed  map[game.UnitID]bool
	GameOver  bool
	Completed map[game.UnitID]*game.ActiveAction
	Rejected  map[game.UnitID]error
	Reports   []combat.ApplyReport
}

type Engine struct {
	Applier *combat.Applier
	Log     *slog.Logger
}

func New(applier *combat.Applier, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{Applier: applier, Log: log}
}

// Tick resolves one full tick. Rejected intents are logged and reported but
// never abort the tick.
func (e *Engine) Tick(state *game.GameState, intents map[game.UnitID]Intent) *TickResult {
	res := &TickResult{
		State:     state,
		Tick:      state.Tick,
		Executed:  make(map[game.UnitID]bool, len(state.Order)),
		Completed: make(map[game.UnitID]*game.ActiveAction),
		Rejected:  make(map[game.UnitID]error),
	}
	e.Log.Debug("tick start", "tick", state.Tick, "intents", len(intents))

	units := state.Each()
	for _, u := range units {
		u.TickEffects()
	}
	state.Board.ApplyZoneEffects(state)
	for _, u := range units {
		if u.Alive() {
			u.ApplyAPRegen()
		}
	}

	intents = e.applyOverrides(state, intents)

	for _, u := range units {
		res.Executed[u.ID] = false
		if !u.Alive() || u.HasEffect(game.EffectStun) {
			continue
		}
		intent, hasIntent := intents[u.ID]

		if u.Casting() {
			if hasIntent {
				err := fmt.Errorf("unit %d intent %s: %w", u.ID, intent, game.ErrActionInProgress)
				res.Rejected[u.ID] = err
				e.Log.Warn("intent rejected", "tick", state.Tick, "unit", u.ID, "error", err)
			}
			e.advance(state, u, res)
			continue
		}

		if hasIntent {
			if err := e.start(state, u, intent); err != nil {
				res.Rejected[u.ID] = err
				e.Log.Warn("intent rejected", "tick", state.Tick, "unit", u.ID, "intent", intent.String(), "error", err)
				continue
			}
			res.Executed[u.ID] = true
			e.advance(state, u, res)
			continue
		}

		e.advance(state, u, res)
	}

	state.Tick++
	res.GameOver = state.IsGameOver()
	e.Log.Debug("tick end", "tick", res.Tick, "completed", len(res.Completed), "game_over", res.GameOver)
	return res
}

func (e *Engine) start(state *game.GameState, u *game.HeroUnit, intent Intent) error {
	ability, ok := u.Profile.Ability(intent.Ability)
	if !ok {
		return game.InvalidAction("unit %d (%s) has no ability %q", u.ID, u.Role, intent.Ability)
	}
	target := intent.Target
	if intent.TargetUnit != 0 {
		tu, ok := state.Unit(intent.TargetUnit)
		if !ok {
			return game.InvalidAction("unknown target unit %d", intent.TargetUnit)
		}
		target = tu.Pos
	}
	if err := StartAction(u, ability, target, intent.TargetUnit, state); err != nil {
		return err
	}
	e.Log.Info("intent accepted", "tick", state.Tick, "unit", u.ID, "intent", intent.String())
	return nil
}

// advance steps the unit's action and dispatches it if it completed.
func (e *Engine) advance(state *game.GameState, u *game.HeroUnit, res *TickResult) {
	done := AdvanceAction(u, state)
	if done == nil {
		return
	}
	res.Executed[u.ID] = true
	res.Completed[u.ID] = done
	e.Log.Info("action completed",
		"tick", state.Tick,
		"unit", u.ID,
		"ability", done.Ability.Name,
		"target", done.Target.String(),
	)

	if done.Ability.IsMovement() || !done.Ability.HasPayload() {
		return
	}
	report := e.Applier.Apply(state, u, done.Ability, done.Target)
	res.Reports = append(res.Reports, report)

	if done.TargetUnit != 0 {
		if tu, ok := state.Unit(done.TargetUnit); !ok || targetLost(done.Ability, tu) {
			u.CurrentAction = nil
		}
	}
}
