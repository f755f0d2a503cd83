package combat

import (
	"log/slog"
	"sort"

	"github.com/brensch/turnshock/game"
)

// ChainRadius is how far from the impact point a chain ability looks for bounce targets.
const ChainRadius = 5

// Observer receives a record of every resolved ability. It is optional and
// must never influence the outcome.
type Observer interface {
	RecordUse(caster game.UnitID, ability string)
	RecordDamage(caster game.UnitID, ability string, amount int, enemy bool)
	RecordHeal(caster game.UnitID, ability string, amount int)
	RecordEffect(caster game.UnitID, ability string, effect game.EffectType, value int)
}

type NopObserver struct{}

func (NopObserver) RecordUse(game.UnitID, string) {}
func (NopObserver) RecordDamage(game.UnitID, string, int, bool) {}
func (NopObserver) RecordHeal(game.UnitID, string, int) {}
func (NopObserver) RecordEffect(game.UnitID, string, game.EffectType, int) {}

// Impact is what one effect did to one target.
type Impact struct {
	Target  game.UnitID
	Effect  game.EffectType
	Amount  int
	Outcome Outcome
	Evaded  bool
	Dodged  bool
	Bounce  bool
}

// ApplyReport summarises one resolved ability.
type ApplyReport struct {
	Caster  game.UnitID
	Ability string
	Target  game.Position
	Impacts []Impact
}

// Applier resolves completed abilities against a state.
type Applier struct {
	Roller   Roller
	Observer Observer
	Log      *slog.Logger
}

func NewApplier(roller Roller, observer Observer, log *slog.Logger) *Applier {
	if observer == nil {
		observer = NopObserver{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Applier{Roller: roller, Observer: observer, Log: log}
}

// Apply resolves ability cast by caster at target. The target set is the
// unit on the target cell (a corpse for DEAD_* abilities), every other living
// unit within the AoE radius, and for bouncing abilities the nearest living
// units around the impact point, which take damage scaled by BounceMult.
func (a *Applier) Apply(state *game.GameState, caster *game.HeroUnit, ability *game.Ability, target game.Position) ApplyReport {
	report := ApplyReport{Caster: caster.ID, Ability: ability.Name, Target: target}
	a.Observer.RecordUse(caster.ID, ability.Name)
	a.Log.Debug("ability resolved",
		"tick", state.Tick,
		"caster", caster.ID,
		"ability", ability.Name,
		"target", target.String(),
	)

	targets := AreaTargets(state, ability, target)
	for _, t := range targets {
		a.applyTo(&report, caster, ability, t, 1, false)
	}

	if ability.Bounces > 0 {
		mult := ability.BounceMult
		if mult <= 0 {
			mult = 1
		}
		for _, t := range ChainTargets(state, caster, target, targets, ability.Bounces+1) {
			a.applyTo(&report, caster, ability, t, mult, true)
		}
	}
	return report
}

func (a *Applier) applyTo(report *ApplyReport, caster *game.HeroUnit, ability *game.Ability, target *game.HeroUnit, mult float64, bounce bool) {
	damaged := false
	for _, eff := range ability.Effects {
		imp := Impact{Target: target.ID, Effect: eff.Type, Bounce: bounce}

		if i, ok := target.FirstEffect(game.EffectBlind); ok && a.Roller.Roll() < float64(target.Effects[i].Value) {
			imp.Evaded = true
			report.Impacts = append(report.Impacts, imp)
			a.Log.Debug("effect evaded", "target", target.ID, "effect", eff.Type.String())
			continue
		}

		switch eff.Type {
		case game.EffectDamage:
			// All DAMAGE values are summed into one roll.
			if damaged {
				continue
			}
			damaged = true
			dmg, outcome := CalculateDamage(caster, ability, a.Roller)
			if bounce {
				dmg = int(float64(dmg) * mult)
			}
			lost, dodged := ApplyDamage(target, dmg, a.Roller)
			imp.Amount, imp.Outcome, imp.Dodged = lost, outcome, dodged
			a.Observer.RecordDamage(caster.ID, ability.Name, lost, target.Team != caster.Team)
			a.Log.Debug("damage",
				"caster", caster.ID,
				"target", target.ID,
				"rolled", dmg,
				"outcome", outcome.String(),
				"lost", lost,
				"dodged", dodged,
				"hp", target.HP,
			)
		case game.EffectHeal:
			healed := ApplyHeal(target, eff.Value)
			imp.Amount = healed
			a.Observer.RecordHeal(caster.ID, ability.Name, healed)
			a.Log.Debug("heal", "caster", caster.ID, "target", target.ID, "healed", healed, "hp", target.HP)
		default:
			if AddEffect(target, eff) {
				imp.Amount = eff.Value
				a.Observer.RecordEffect(caster.ID, ability.Name, eff.Type, eff.Value)
				a.Log.Debug("effect applied", "target", target.ID, "effect", eff.String())
			}
		}
		report.Impacts = append(report.Impacts, imp)
	}
}

// AreaTargets returns the primary target followed by every other living unit
// within the ability's AoE radius of center, in creation order.
func AreaTargets(state *game.GameState, ability *game.Ability, center game.Position) []*game.HeroUnit {
	var out []*game.HeroUnit
	primary := state.UnitAt(center)
	if primary == nil && ability.Target.Corpse() {
		primary = state.AnyUnitAt(center)
	}
	if primary != nil {
		out = append(out, primary)
	}
	if ability.AoE <= 0 {
		return out
	}
	for _, u := range state.Each() {
		if u == primary || !u.Alive() {
			continue
		}
		if u.Pos.Distance(center) <= ability.AoE {
			out = append(out, u)
		}
	}
	return out
}

// ChainTargets picks up to limit living units within ChainRadius of center,
// nearest first with ties in creation order. The caster and units in exclude
// are never picked.
func ChainTargets(state *game.GameState, caster *game.HeroUnit, center game.Position, exclude []*game.HeroUnit, limit int) []*game.HeroUnit {
	skip := make(map[game.UnitID]bool, len(exclude)+1)
	skip[caster.ID] = true
	for _, u := range exclude {
		skip[u.ID] = true
	}

	var candidates []*game.HeroUnit
	for _, u := range state.Each() {
		if skip[u.ID] || !u.Alive() {
			continue
		}
		if u.Pos.Distance(center) <= ChainRadius {
			candidates = append(candidates, u)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Pos.Distance(center) < candidates[j].Pos.Distance(center)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
