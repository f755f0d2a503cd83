// Package combat resolves what happens when an ability lands: damage rolls,
// shields and dodges, healing, status effects, and the selection of area and
// chain targets.
package combat

import (
	"fmt"

	"github.com/brensch/turnshock/game"
)

// Outcome classifies a damage roll.
type Outcome int

const (
	Hit Outcome = iota
	Crit
	Fumble
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "HIT"
	case Crit:
		return "CRIT"
	case Fumble:
		return "FUMBLE"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

const (
	critMult   = 1.5
	fumbleMult = 0.5
)

// CritChance is the ability's base crit chance raised by 0.2 per point of luck, capped at 100.
func CritChance(caster *game.HeroUnit, ability *game.Ability) float64 {
	return min(100, ability.CritBase+float64(caster.Luck())*0.2)
}

// FumbleChance is the ability's base fumble chance lowered by 0.1 per point of luck, floored at 0.
func FumbleChance(caster *game.HeroUnit, ability *game.Ability) float64 {
	return max(0, ability.FumbleBase-float64(caster.Luck())*0.1)
}

// CalculateDamage sums the ability's DAMAGE payload, applies the caster's BUFF
// and DEBUFF effects, then makes a single roll: below the fumble chance halves
// the damage, the next crit-chance band multiplies it by 1.5.
func CalculateDamage(caster *game.HeroUnit, ability *game.Ability, roller Roller) (int, Outcome) {
	base := ability.DamageTotal() + caster.SumEffects(game.EffectBuff) - caster.SumEffects(game.EffectDebuff)
	base = max(base, 0)

	fumble := FumbleChance(caster, ability)
	crit := CritChance(caster, ability)
	roll := roller.Roll()
	switch {
	case roll < fumble:
		return int(float64(base) * fumbleMult), Fumble
	case roll < fumble+crit:
		return int(float64(base) * critMult), Crit
	default:
		return base, Hit
	}
}

// ApplyDamage deals amount to unit. The unit's first DODGE effect rolls
// against its value first; a successful dodge consumes it and negates all
// damage. Otherwise the first SHIELD absorbs what it can and the rest comes off
// HP. It returns the HP actually lost and whether the hit was dodged.
func ApplyDamage(unit *game.HeroUnit, amount int, roller Roller) (int, bool) {
	if !unit.Alive() || amount <= 0 {
		return 0, false
	}

	if i, ok := unit.FirstEffect(game.EffectDodge); ok {
		if roller.Roll() < float64(unit.Effects[i].Value) {
			unit.RemoveEffectAt(i)
			return 0, true
		}
	}

	remaining := amount
	if i, ok := unit.FirstEffect(game.EffectShield); ok {
		shield := unit.Effects[i]
		absorbed := min(shield.Value, remaining)
		remaining -= absorbed
		if shield.Value-absorbed > 0 {
			shield.Value -= absorbed
			unit.Effects[i] = shield
		} else {
			unit.RemoveEffectAt(i)
		}
	}

	before := unit.HP
	unit.SetHP(unit.HP - remaining)
	return before - unit.HP, false
}

// ApplyHeal restores up to amount HP without exceeding MaxHP and returns the
// HP actually restored. Dead units cannot be healed.
func ApplyHeal(unit *game.HeroUnit, amount int) int {
	if !unit.Alive() || amount <= 0 {
		return 0
	}
	before := unit.HP
	unit.SetHP(unit.HP + amount)
	return unit.HP - before
}

// AddEffect appends effect to a living unit and reports whether it was applied.
// A status that would already have expired is not applied.
func AddEffect(unit *game.HeroUnit, effect game.Effect) bool {
	if !unit.Alive() || effect.Duration <= 0 {
		return false
	}
	unit.Effects = append(unit.Effects, effect)
	return true
}
