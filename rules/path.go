package rules

import "github.com/brensch/turnshock/game"

// FindPath runs an 8-directional breadth-first search from start to goal and
// returns the steps to take, excluding start and including goal. It returns
// nil when start == goal or the goal is unreachable.
//
// Cells held by another living unit are impassable, except the goal itself:
// that lets callers path "to" an occupied target. Movers must still refuse to
// step onto an occupied goal.
func FindPath(start, goal game.Position, state *game.GameState) []game.Position {
	if start == goal {
		return nil
	}

	occupied := make(map[game.Position]bool, len(state.Order))
	for _, u := range state.Each() {
		if u.Alive() && u.Pos != start {
			occupied[u.Pos] = true
		}
	}

	visited := map[game.Position]bool{start: true}
	prev := make(map[game.Position]game.Position)
	queue := []game.Position{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range game.Directions8 {
			next := cur.Add(d[0], d[1])
			if !next.InBounds() || visited[next] {
				continue
			}
			if state.Board.IsBlocked(next) {
				continue
			}
			if occupied[next] && next != goal {
				continue
			}
			visited[next] = true
			prev[next] = cur
			if next == goal {
				return unwind(prev, start, goal)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func unwind(prev map[game.Position]game.Position, start, goal game.Position) []game.Position {
	var rev []game.Position
	for p := goal; p != start; p = prev[p] {
		rev = append(rev, p)
	}
	path := make([]game.Position, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path
}
