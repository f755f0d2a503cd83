// Package rules holds the pure legality checks of the engine: pathfinding,
// legal moves and legal ability targets. Nothing here mutates state.
package rules

import "github.com/brensch/turnshock/game"

// LegalTargets lists every in-range, in-bounds cell where the ability's target
// kind is satisfied, in row-major order. Line of sight is not considered.
func LegalTargets(unit *game.HeroUnit, ability *game.Ability, state *game.GameState) []game.Position {
	var out []game.Position
	r := ability.Range
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			pos := unit.Pos.Add(dx, dy)
			if !pos.InBounds() {
				continue
			}
			if checkTarget(unit, ability.Target, pos, state) == nil {
				out = append(out, pos)
			}
		}
	}
	return out
}

// ValidateAbility is the full legality check for casting ability at target
// right now. Checks run in a fixed order so the first failing rule decides
// the error kind.
func ValidateAbility(unit *game.HeroUnit, ability *game.Ability, target game.Position, state *game.GameState) error {
	if ability.Cost > unit.AP {
		return game.InsufficientAP("unit %d has %d AP, %s needs %d", unit.ID, unit.AP, ability.Name, ability.Cost)
	}
	if !target.InBounds() {
		return game.OutOfBounds("target %s out of bounds", target)
	}
	if dist := unit.Pos.Distance(target); dist > ability.Range {
		return game.InvalidAction("target %s too far (%d > %d)", target, dist, ability.Range)
	}
	if ability.Range > 1 && state.Board.IsLineBlocked(unit.Pos, target) {
		return game.LineOfSightBlocked("line of sight blocked from %s to %s", unit.Pos, target)
	}
	return checkTarget(unit, ability.Target, target, state)
}

// ValidateIntent is the subset of ValidateAbility that does not depend on
// where the caster currently stands or how much AP it has: the ability must
// belong to the unit, the target must be on the board and must hold the right
// kind of occupant. Range, AP and sight are left to the action state machine,
// which walks into range and waits for AP.
func ValidateIntent(unit *game.HeroUnit, ability *game.Ability, target game.Position, state *game.GameState) error {
	if _, ok := unit.Profile.Ability(ability.Name); !ok {
		return game.InvalidAction("unit %d (%s) has no ability %q", unit.ID, unit.Role, ability.Name)
	}
	if !target.InBounds() {
		return game.OutOfBounds("target %s out of bounds", target)
	}
	if ability.IsMovement() {
		if state.Board.IsBlocked(target) {
			return game.InvalidAction("cell %s is blocked", target)
		}
		return nil
	}
	return checkTarget(unit, ability.Target, target, state)
}

// InRange reports whether the caster at its current position can reach target.
func InRange(unit *game.HeroUnit, ability *game.Ability, target game.Position, state *game.GameState) bool {
	if unit.Pos.Distance(target) > ability.Range {
		return false
	}
	return ability.Range <= 1 || !state.Board.IsLineBlocked(unit.Pos, target)
}

func checkTarget(unit *game.HeroUnit, kind game.TargetType, target game.Position, state *game.GameState) error {
	switch kind {
	case game.TargetSelf:
		if target != unit.Pos {
			return game.WrongTargetType("%s: ability allowed only on self", target)
		}
	case game.TargetEnemy:
		tgt := state.UnitAt(target)
		if tgt == nil || tgt.Team == unit.Team {
			return game.WrongTargetType("expected living enemy at %s", target)
		}
	case game.TargetAlly:
		tgt := state.UnitAt(target)
		if tgt == nil || tgt.Team != unit.Team {
			return game.WrongTargetType("expected living ally at %s", target)
		}
	case game.TargetDeadEnemy:
		tgt := deadAt(target, state)
		if tgt == nil || tgt.Team == unit.Team {
			return game.WrongTargetType("expected dead enemy at %s", target)
		}
	case game.TargetDeadAlly:
		tgt := deadAt(target, state)
		if tgt == nil || tgt.Team != unit.Team {
			return game.WrongTargetType("expected dead ally at %s", target)
		}
	case game.TargetPoint:
		// any cell on the board
	default:
		return game.WrongTargetType("unsupported target kind %s", kind)
	}
	return nil
}

func deadAt(p game.Position, state *game.GameState) *game.HeroUnit {
	if state.UnitAt(p) != nil {
		return nil
	}
	u := state.AnyUnitAt(p)
	if u == nil || u.Alive() {
		return nil
	}
	return u
}
