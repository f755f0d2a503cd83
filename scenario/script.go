package scenario

import (
	"fmt"

	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/game"
)

// ScriptEntry is one scripted order. Target may be omitted when TargetUnit
// is set.
type ScriptEntry struct {
	Tick       int         `json:"tick"`
	Unit       game.UnitID `json:"unit"`
	Ability    string      `json:"ability"`
	Target     *Cell       `json:"target,omitempty"`
	TargetUnit game.UnitID `json:"target_unit,omitempty"`
}

// Script is a tick-indexed list of intents.
type Script struct {
	byTick map[int]map[game.UnitID]engine.Intent
	last   int
}

func NewScript(entries []ScriptEntry) (*Script, error) {
	s := &Script{byTick: make(map[int]map[game.UnitID]engine.Intent), last: -1}
	for i, e := range entries {
		if e.Tick < 0 || e.Unit <= 0 || e.Ability == "" {
			return nil, fmt.Errorf("entry %d: tick, unit and ability are required", i)
		}
		if e.Target == nil && e.TargetUnit == 0 {
			return nil, fmt.Errorf("entry %d: target or target_unit is required", i)
		}
		in := engine.Intent{Ability: e.Ability, TargetUnit: e.TargetUnit}
		if e.Target != nil {
			in.Target = e.Target.Position()
		}
		tick := s.byTick[e.Tick]
		if tick == nil {
			tick = make(map[game.UnitID]engine.Intent)
			s.byTick[e.Tick] = tick
		}
		if _, dup := tick[e.Unit]; dup {
			return nil, fmt.Errorf("entry %d: unit %d has two intents on tick %d", i, e.Unit, e.Tick)
		}
		tick[e.Unit] = in
		s.last = max(s.last, e.Tick)
	}
	return s, nil
}

func LoadScript(path string) (*Script, error) {
	var entries []ScriptEntry
	if err := readJSON(path, &entries); err != nil {
		return nil, err
	}
	s, err := NewScript(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// At returns a fresh copy of the intents for tick. A nil script has none.
func (s *Script) At(tick int) map[game.UnitID]engine.Intent {
	if s == nil {
		return nil
	}
	src := s.byTick[tick]
	if len(src) == 0 {
		return nil
	}
	out := make(map[game.UnitID]engine.Intent, len(src))
	for id, in := range src {
		out[id] = in
	}
	return out
}

// LastTick is the highest tick with an entry, or -1 for an empty script.
func (s *Script) LastTick() int {
	if s == nil {
		return -1
	}
	return s.last
}
