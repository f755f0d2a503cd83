package game

import "fmt"

// BoardSize is the side length of the square battlefield.
const BoardSize = 13

// Position is a board coordinate. (0,0) is the top-left cell.
type Position struct {
	X int
	Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// InBounds reports whether p lies on the BoardSize x BoardSize grid.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Distance is the Chebyshev distance, used for ranges and area radii.
func (p Position) Distance(o Position) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Manhattan is the taxicab distance.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Position) Add(dx, dy int) Position { return Position{X: p.X + dx, Y: p.Y + dy} }

// Directions8 is the fixed neighbour enumeration order. Pathfinding breaks
// ties by this order, so changing it changes which shortest path is chosen.
var Directions8 = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Directions4 are the orthogonal steps, in the same order as the first four of Directions8.
var Directions4 = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
