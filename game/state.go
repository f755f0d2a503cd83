// Package game defines the battlefield, the units on it and the values they
// trade: abilities, effects and in-flight actions.
//
// A GameState owns every unit and the board for the lifetime of one game.
// Iteration over units always follows creation order so that a tick is
// reproducible.
package game

import "sort"

type GameState struct {
	Tick  int
	Units map[UnitID]*HeroUnit
	Order []UnitID
	Board *Board

	nextID UnitID
}

func NewGameState(board *Board) *GameState {
	if board == nil {
		board = NewBoard(nil, nil)
	}
	return &GameState{
		Units:  make(map[UnitID]*HeroUnit),
		Board:  board,
		nextID: 1,
	}
}

// Spawn creates a unit with the next free id and adds it to the state.
func (s *GameState) Spawn(team string, pos Position, profile *Profile) *HeroUnit {
	u := NewHeroUnit(s.nextID, team, pos, profile)
	s.AddUnit(u)
	return u
}

// AddUnit registers u. Ids are never reused: the id counter only moves forward.
func (s *GameState) AddUnit(u *HeroUnit) {
	if _, exists := s.Units[u.ID]; exists {
		panic("game: duplicate unit id")
	}
	s.Units[u.ID] = u
	s.Order = append(s.Order, u.ID)
	if u.ID >= s.nextID {
		s.nextID = u.ID + 1
	}
}

// Each returns units in creation order.
func (s *GameState) Each() []*HeroUnit {
	out := make([]*HeroUnit, 0, len(s.Order))
	for _, id := range s.Order {
		out = append(out, s.Units[id])
	}
	return out
}

func (s *GameState) Unit(id UnitID) (*HeroUnit, bool) {
	u, ok := s.Units[id]
	return u, ok
}

// UnitAt returns the living unit standing on p, if any.
func (s *GameState) UnitAt(p Position) *HeroUnit {
	for _, id := range s.Order {
		u := s.Units[id]
		if u.Alive() && u.Pos == p {
			return u
		}
	}
	return nil
}

// AnyUnitAt prefers a living occupant and falls back to a corpse.
func (s *GameState) AnyUnitAt(p Position) *HeroUnit {
	if u := s.UnitAt(p); u != nil {
		return u
	}
	for _, id := range s.Order {
		u := s.Units[id]
		if u.Pos == p {
			return u
		}
	}
	return nil
}

// LivingTeams returns the sorted ids of teams with at least one living unit.
func (s *GameState) LivingTeams() []string {
	seen := map[string]bool{}
	var teams []string
	for _, id := range s.Order {
		u := s.Units[id]
		if u.Alive() && !seen[u.Team] {
			seen[u.Team] = true
			teams = append(teams, u.Team)
		}
	}
	sort.Strings(teams)
	return teams
}

// IsGameOver is true once at most one team has living units.
func (s *GameState) IsGameOver() bool {
	return len(s.LivingTeams()) <= 1
}

// Winner returns the last team standing, or "" for a draw or a running game.
func (s *GameState) Winner() string {
	teams := s.LivingTeams()
	if len(teams) == 1 {
		return teams[0]
	}
	return ""
}

// Clone performs a deep copy of the game state. The board is shared.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := &GameState{
		Tick:   s.Tick,
		Units:  make(map[UnitID]*HeroUnit, len(s.Units)),
		Order:  make([]UnitID, len(s.Order)),
		Board:  s.Board,
		nextID: s.nextID,
	}
	copy(out.Order, s.Order)
	for id, u := range s.Units {
		out.Units[id] = u.Clone()
	}
	return out
}
