package scenario

import (
	"fmt"

	"github.com/brensch/turnshock/game"
	"github.com/brensch/turnshock/heroes"
)

// BuildNewGame creates the starting state for setup on the map. Unit ids
// are assigned from 1, team by team in sorted team order, heroes in file
// order.
func BuildNewGame(tick int, setup HeroSetup, m MapConfig, registry *heroes.Registry) (*game.GameState, error) {
	board, err := m.Board()
	if err != nil {
		return nil, err
	}
	state := game.NewGameState(board)
	state.Tick = tick

	taken := map[game.Position]game.UnitID{}
	for _, team := range setup.Teams() {
		for i, hc := range setup[team] {
			profile, err := registry.LookupName(hc.Role)
			if err != nil {
				return nil, fmt.Errorf("team %s hero %d: %w", team, i, err)
			}
			pos := hc.Pos.Position()
			switch {
			case !pos.InBounds():
				return nil, fmt.Errorf("team %s hero %d: spawn %s out of bounds", team, i, pos)
			case board.IsBlocked(pos):
				return nil, fmt.Errorf("team %s hero %d: spawn %s is an obstacle", team, i, pos)
			}
			if other, ok := taken[pos]; ok {
				return nil, fmt.Errorf("team %s hero %d: spawn %s already holds unit %d", team, i, pos, other)
			}
			u := state.Spawn(team, pos, profile)
			taken[pos] = u.ID
		}
	}
	return state, nil
}

// Build creates the starting state for the scenario.
func (s *Scenario) Build(registry *heroes.Registry) (*game.GameState, error) {
	state, err := BuildNewGame(0, s.Heroes, s.Map, registry)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return state, nil
}
