package game

import "fmt"

// Effect is an immutable (type, value, duration) triple. Abilities carry
// effects as payload; units carry them as active statuses.
type Effect struct {
	Type     EffectType
	Value    int
	Duration int
}

func (e Effect) String() string {
	return fmt.Sprintf("%s(%d/%d)", e.Type, e.Value, e.Duration)
}

// Default roll chances, in percent, for abilities that do not set their own.
const (
	DefaultCritBase   = 5.0
	DefaultFumbleBase = 2.0
)

// Ability is a stateless template shared by every unit of a role. Callers
// must treat it as read-only.
type Ability struct {
	Name       string
	Kind       AbilityKind
	Range      int
	Cost       int
	Target     TargetType
	Effects    []Effect
	CastTime   int
	AoE        int
	Bounces    int
	BounceMult float64
	CritBase   float64
	FumbleBase float64
}

// IsMovement reports whether the ability is a walking order rather than a cast.
func (a *Ability) IsMovement() bool {
	return a.Kind == KindMove || a.Kind == KindSprint
}

// HasPayload reports whether completing the ability does anything beyond
// spending AP: it carries effects or covers an area.
func (a *Ability) HasPayload() bool {
	return len(a.Effects) > 0 || a.AoE > 0
}

// DamageTotal sums the ability's DAMAGE effect values.
func (a *Ability) DamageTotal() int {
	total := 0
	for _, e := range a.Effects {
		if e.Type == EffectDamage {
			total += e.Value
		}
	}
	return total
}

func (a *Ability) String() string {
	return a.Name
}

// Profile is the immutable per-role stat and ability bundle.
type Profile struct {
	Role      UnitRole
	MaxHP     int
	MaxAP     int
	APRegen   int
	Luck      int
	Abilities []*Ability
}

// Ability looks up an ability by name.
func (p *Profile) Ability(name string) (*Ability, bool) {
	if p == nil {
		return nil, false
	}
	for _, a := range p.Abilities {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// FirstOfKind returns the first ability with the given kind.
func (p *Profile) FirstOfKind(kind AbilityKind) (*Ability, bool) {
	if p == nil {
		return nil, false
	}
	for _, a := range p.Abilities {
		if a.Kind == kind {
			return a, true
		}
	}
	return nil, false
}
