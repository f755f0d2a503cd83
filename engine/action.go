package engine

import (
	"fmt"

	"github.com/brensch/turnshock/game"
	"github.com/brensch/turnshock/rules"
)

// StartAction replaces the unit's current order with a queued one. A unit that
// is already casting cannot be given a new order.
func StartAction(unit *game.HeroUnit, ability *game.Ability, target game.Position, targetUnit game.UnitID, state *game.GameState) error {
	if unit.Casting() {
		return fmt.Errorf("unit %d casting %s: %w", unit.ID, unit.CurrentAction.Ability.Name, game.ErrActionInProgress)
	}
	if err := rules.ValidateIntent(unit, ability, target, state); err != nil {
		return err
	}
	unit.CurrentAction = game.NewActiveAction(ability, target, targetUnit)
	return nil
}

// AdvanceAction runs one tick of the unit's current order and returns a copy
// of it, with Target set to where it landed, if it completed this tick.
//
// In order: a started cast counts down; a movement order walks up to Range
// steps along its path; a cast in range with enough AP starts; a cast out of
// range takes one step toward its target; otherwise the unit waits.
func AdvanceAction(unit *game.HeroUnit, state *game.GameState) *game.ActiveAction {
	act := unit.CurrentAction
	if act == nil {
		return nil
	}

	target := act.Target
	if act.TargetUnit != 0 {
		tu, ok := state.Unit(act.TargetUnit)
		if !ok || targetLost(act.Ability, tu) {
			unit.CurrentAction = nil
			return nil
		}
		target = tu.Pos
	}

	ab := act.Ability
	switch {
	case act.Started:
		if act.Tick() {
			return complete(unit, act, target)
		}
		return nil
	case ab.IsMovement():
		return advanceMove(unit, act, target, state)
	case rules.InRange(unit, ab, target, state):
		if unit.AP < ab.Cost {
			return nil
		}
		unit.SetAP(unit.AP - ab.Cost)
		act.Started = true
		if act.Tick() {
			return complete(unit, act, target)
		}
		return nil
	case unit.AP > 0:
		stepToward(unit, target, state)
		return nil
	default:
		return nil
	}
}

func advanceMove(unit *game.HeroUnit, act *game.ActiveAction, target game.Position, state *game.GameState) *game.ActiveAction {
	if unit.Pos == target {
		return complete(unit, act, target)
	}
	if act.Path == nil {
		act.Path = rules.FindPath(unit.Pos, target, state)
	}
	if len(act.Path) == 0 {
		act.Path = nil
		return nil
	}

	for steps := 0; steps < act.Ability.Range && unit.AP > 0 && len(act.Path) > 0; steps++ {
		next := act.Path[0]
		if occ := state.UnitAt(next); occ != nil && occ.ID != unit.ID {
			if next == target {
				// Standing next to an occupied goal is as close as a mover gets.
				return complete(unit, act, target)
			}
			act.Path = nil
			return nil
		}
		unit.Pos = next
		act.Path = act.Path[1:]
		unit.SetAP(unit.AP - 1)
	}

	if len(act.Path) == 0 || unit.Pos == target {
		return complete(unit, act, target)
	}
	return nil
}

// targetLost reports whether a unit-targeted order no longer has a valid
// target: a living target died, or a corpse target is alive again.
func targetLost(ab *game.Ability, tu *game.HeroUnit) bool {
	if ab.Target.Corpse() {
		return tu.Alive()
	}
	return !tu.Alive()
}

// stepToward moves the unit one cell along a fresh path to target for 1 AP.
func stepToward(unit *game.HeroUnit, target game.Position, state *game.GameState) {
	path := rules.FindPath(unit.Pos, target, state)
	if len(path) == 0 || state.UnitAt(path[0]) != nil {
		return
	}
	unit.Pos = path[0]
	unit.SetAP(unit.AP - 1)
}

// complete re-arms the order so it repeats next tick, except a movement order
// to a fixed cell, which is done once the unit gets there.
func complete(unit *game.HeroUnit, act *game.ActiveAction, target game.Position) *game.ActiveAction {
	done := act.Clone()
	done.Target = target
	done.TicksRemaining = 0
	if act.Ability.IsMovement() && act.TargetUnit == 0 {
		unit.CurrentAction = nil
	} else {
		unit.CurrentAction = act.Rearm()
	}
	return done
}
