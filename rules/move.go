package rules

import "github.com/brensch/turnshock/game"

// LegalMoves returns the orthogonal neighbours the unit could step onto for 1 AP.
func LegalMoves(unit *game.HeroUnit, state *game.GameState) []game.Position {
	var moves []game.Position
	for _, d := range game.Directions4 {
		dest := unit.Pos.Add(d[0], d[1])
		if isFree(dest, state) {
			moves = append(moves, dest)
		}
	}
	return moves
}

func isFree(p game.Position, state *game.GameState) bool {
	if !p.InBounds() {
		return false
	}
	if state.Board.IsBlocked(p) {
		return false
	}
	return state.UnitAt(p) == nil
}

// ValidateMove checks a single step: in bounds, at least 1 AP, cell open.
func ValidateMove(unit *game.HeroUnit, dest game.Position, state *game.GameState) error {
	if !dest.InBounds() {
		return game.OutOfBounds("destination %s out of bounds", dest)
	}
	if unit.AP < 1 {
		return game.InsufficientAP("unit %d has %d AP, needs 1", unit.ID, unit.AP)
	}
	if state.Board.IsBlocked(dest) {
		return game.InvalidAction("cell %s is blocked", dest)
	}
	if occ := state.UnitAt(dest); occ != nil {
		return game.InvalidAction("cell %s is occupied by unit %d", dest, occ.ID)
	}
	return nil
}
