package game

// Board is the static battlefield: cells that block movement and sight, and
// cells that regenerate whoever stands on them.
//
// A Board is never mutated once a game starts, so cloned states share it.
type Board struct {
	Obstacles map[Position]struct{}
	RegenZone map[Position]struct{}
}

func NewBoard(obstacles, regen []Position) *Board {
	b := &Board{
		Obstacles: make(map[Position]struct{}, len(obstacles)),
		RegenZone: make(map[Position]struct{}, len(regen)),
	}
	for _, p := range obstacles {
		b.Obstacles[p] = struct{}{}
	}
	for _, p := range regen {
		b.RegenZone[p] = struct{}{}
	}
	return b
}

func (b *Board) IsBlocked(p Position) bool {
	if b == nil {
		return false
	}
	_, ok := b.Obstacles[p]
	return ok
}

func (b *Board) InRegenZone(p Position) bool {
	if b == nil {
		return false
	}
	_, ok := b.RegenZone[p]
	return ok
}

// IsLineBlocked walks the Bresenham line from a to b and reports whether any
// cell strictly between them is an obstacle. The endpoints never block.
func (b *Board) IsLineBlocked(from, to Position) bool {
	if b == nil || len(b.Obstacles) == 0 {
		return false
	}
	x0, y0 := from.X, from.Y
	dx := abs(to.X - x0)
	dy := -abs(to.Y - y0)
	sx, sy := 1, 1
	if to.X < x0 {
		sx = -1
	}
	if to.Y < y0 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 == to.X && y0 == to.Y {
			return false
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
		cur := Position{X: x0, Y: y0}
		if cur == to {
			return false
		}
		if b.IsBlocked(cur) {
			return true
		}
	}
}

// ApplyZoneEffects heals every living unit standing in the regen zone by 1 HP.
func (b *Board) ApplyZoneEffects(state *GameState) {
	if b == nil || len(b.RegenZone) == 0 {
		return
	}
	for _, u := range state.Each() {
		if u.Alive() && b.InRegenZone(u.Pos) {
			u.SetHP(u.HP + 1)
		}
	}
}

// Positions returns the set's cells in row-major order.
func Positions(set map[Position]struct{}) []Position {
	out := make([]Position, 0, len(set))
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if _, ok := set[Position{X: x, Y: y}]; ok {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}
