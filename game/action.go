package game

import "fmt"

// UnitID identifies a unit within one game. Ids start at 1; zero means "none".
type UnitID int

// ActiveAction is a unit's in-flight order. It is owned by exactly one unit
// and its Path is never shared with another action.
type ActiveAction struct {
	Ability        *Ability
	Target         Position
	TargetUnit     UnitID
	TicksRemaining int
	Path           []Position
	Started        bool
}

// NewActiveAction queues an order that has not started casting yet.
func NewActiveAction(ability *Ability, target Position, targetUnit UnitID) *ActiveAction {
	return &ActiveAction{
		Ability:        ability,
		Target:         target,
		TargetUnit:     targetUnit,
		TicksRemaining: max(ability.CastTime, 1),
	}
}

// Tick advances the cast by one tick and reports whether it just completed.
func (a *ActiveAction) Tick() bool {
	a.TicksRemaining--
	return a.TicksRemaining <= 0
}

// Rearm returns a fresh, unstarted copy of the order with its cast time reset.
func (a *ActiveAction) Rearm() *ActiveAction {
	return NewActiveAction(a.Ability, a.Target, a.TargetUnit)
}

// Clone deep-copies the action, including its path.
func (a *ActiveAction) Clone() *ActiveAction {
	if a == nil {
		return nil
	}
	out := *a
	if a.Path != nil {
		out.Path = make([]Position, len(a.Path))
		copy(out.Path, a.Path)
	}
	return &out
}

func (a *ActiveAction) String() string {
	if a == nil {
		return "<idle>"
	}
	target := a.Target.String()
	if a.TargetUnit != 0 {
		target = fmt.Sprintf("unit %d", a.TargetUnit)
	}
	return fmt.Sprintf("%s@%s started=%t left=%d", a.Ability.Name, target, a.Started, a.TicksRemaining)
}
