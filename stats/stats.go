// Package stats aggregates per-ability usage numbers across matches. A
// Tracker is plugged into the combat applier as its Observer; it only
// records and never feeds back into resolution.
package stats

import (
	"sort"
	"sync"

	"github.com/brensch/turnshock/combat"
	"github.com/brensch/turnshock/game"
)

// AbilityStats are the running totals for one ability.
type AbilityStats struct {
	Uses        int            `json:"uses"`
	EnemyDamage int            `json:"enemy_damage"`
	AllyDamage  int            `json:"ally_damage"`
	Healing     int            `json:"healing"`
	Effects     map[string]int `json:"effects,omitempty"`
}

func (a AbilityStats) clone() AbilityStats {
	out := a
	if a.Effects != nil {
		out.Effects = make(map[string]int, len(a.Effects))
		for k, v := range a.Effects {
			out.Effects[k] = v
		}
	}
	return out
}

func (a *AbilityStats) merge(o AbilityStats) {
	a.Uses += o.Uses
	a.EnemyDamage += o.EnemyDamage
	a.AllyDamage += o.AllyDamage
	a.Healing += o.Healing
	for k, v := range o.Effects {
		if a.Effects == nil {
			a.Effects = make(map[string]int)
		}
		a.Effects[k] += v
	}
}

// Snapshot maps caster id -> ability name -> totals.
type Snapshot map[game.UnitID]map[string]AbilityStats

// ByAbility folds every caster together.
func (s Snapshot) ByAbility() map[string]AbilityStats {
	out := make(map[string]AbilityStats)
	for _, abilities := range s {
		for name, st := range abilities {
			agg := out[name]
			agg.merge(st)
			out[name] = agg
		}
	}
	return out
}

// Casters returns the caster ids in ascending order.
func (s Snapshot) Casters() []game.UnitID {
	ids := make([]game.UnitID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Tracker is a combat.Observer safe for use from several matches at once.
// Caster ids are only unique within a match, so a Tracker shared across
// matches is mostly useful through ByAbility.
type Tracker struct {
	mu   sync.Mutex
	data Snapshot
}

var _ combat.Observer = (*Tracker)(nil)

func NewTracker() *Tracker {
	return &Tracker{data: make(Snapshot)}
}

// entry must be called with mu held.
func (t *Tracker) entry(caster game.UnitID, ability string) AbilityStats {
	if t.data[caster] == nil {
		t.data[caster] = make(map[string]AbilityStats)
	}
	return t.data[caster][ability]
}

func (t *Tracker) update(caster game.UnitID, ability string, f func(*AbilityStats)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.entry(caster, ability)
	f(&st)
	t.data[caster][ability] = st
}

func (t *Tracker) RecordUse(caster game.UnitID, ability string) {
	t.update(caster, ability, func(s *AbilityStats) { s.Uses++ })
}

func (t *Tracker) RecordDamage(caster game.UnitID, ability string, amount int, enemy bool) {
	t.update(caster, ability, func(s *AbilityStats) {
		if enemy {
			s.EnemyDamage += amount
		} else {
			s.AllyDamage += amount
		}
	})
}

func (t *Tracker) RecordHeal(caster game.UnitID, ability string, amount int) {
	t.update(caster, ability, func(s *AbilityStats) { s.Healing += amount })
}

func (t *Tracker) RecordEffect(caster game.UnitID, ability string, effect game.EffectType, value int) {
	t.update(caster, ability, func(s *AbilityStats) {
		if s.Effects == nil {
			s.Effects = make(map[string]int)
		}
		s.Effects[effect.String()] += value
	})
}

// Snapshot returns a deep copy of the current totals.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(Snapshot, len(t.data))
	for id, abilities := range t.data {
		m := make(map[string]AbilityStats, len(abilities))
		for name, st := range abilities {
			m[name] = st.clone()
		}
		out[id] = m
	}
	return out
}

func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data = make(Snapshot)
}
