package engine

import (
	"github.com/brensch/turnshock/game"
	"github.com/brensch/turnshock/rules"
)

const meleeAbility = "melee_attack"

// applyOverrides returns a copy of intents with status effects enforced: a
// stunned unit loses its intent, and a unit inside an enemy's taunt radius is
// ordered to attack that enemy, or walk toward it when out of reach. Units
// that are already casting are left alone.
func (e *Engine) applyOverrides(state *game.GameState, intents map[game.UnitID]Intent) map[game.UnitID]Intent {
	out := make(map[game.UnitID]Intent, len(intents))
	for id, in := range intents {
		out[id] = in
	}

	for _, u := range state.Each() {
		if !u.Alive() {
			continue
		}
		if u.HasEffect(game.EffectStun) {
			if _, ok := out[u.ID]; ok {
				e.Log.Info("intent dropped by stun", "tick", state.Tick, "unit", u.ID)
				delete(out, u.ID)
			}
			continue
		}
		if u.Casting() {
			continue
		}
		taunter := Taunter(state, u)
		if taunter == nil {
			continue
		}
		forced, ok := tauntIntent(u, taunter, state)
		if !ok {
			continue
		}
		e.Log.Info("taunt override", "tick", state.Tick, "unit", u.ID, "taunter", taunter.ID, "intent", forced.String())
		out[u.ID] = forced
	}
	return out
}

// Taunter returns the first living enemy, in creation order, whose TAUNT
// radius covers u.
func Taunter(state *game.GameState, u *game.HeroUnit) *game.HeroUnit {
	for _, t := range state.Each() {
		if !t.Alive() || t.Team == u.Team {
			continue
		}
		for _, eff := range t.Effects {
			if eff.Type == game.EffectTaunt && u.Pos.Distance(t.Pos) <= eff.Value {
				return t
			}
		}
	}
	return nil
}

func tauntIntent(u, taunter *game.HeroUnit, state *game.GameState) (Intent, bool) {
	if melee, ok := u.Profile.Ability(meleeAbility); ok && rules.InRange(u, melee, taunter.Pos, state) {
		return Intent{Ability: melee.Name, Target: taunter.Pos, TargetUnit: taunter.ID}, true
	}
	if mv, ok := u.Profile.FirstOfKind(game.KindMove); ok {
		return Intent{Ability: mv.Name, Target: taunter.Pos, TargetUnit: taunter.ID}, true
	}
	return Intent{}, false
}
