package heroes

import "github.com/brensch/turnshock/game"

// Constructors for the built-in abilities. Every role gets its own copy so
// roster overrides never leak between roles.

func ability(name string, rng, cost int, target game.TargetType, effects ...game.Effect) *game.Ability {
	return &game.Ability{
		Name:       name,
		Kind:       game.KindCast,
		Range:      rng,
		Cost:       cost,
		Target:     target,
		Effects:    effects,
		CastTime:   1,
		BounceMult: 1,
		CritBase:   game.DefaultCritBase,
		FumbleBase: game.DefaultFumbleBase,
	}
}

func damage(v int) game.Effect { return game.Effect{Type: game.EffectDamage, Value: v} }

func status(t game.EffectType, v, d int) game.Effect {
	return game.Effect{Type: t, Value: v, Duration: d}
}

func moveTo() *game.Ability {
	a := ability("move_to", 1, 1, game.TargetPoint)
	a.Kind = game.KindMove
	return a
}

// sprint covers 1+extra cells per tick at 1 AP per cell.
func sprint(extra int) *game.Ability {
	a := ability("sprint", 1+extra, 1, game.TargetPoint)
	a.Kind = game.KindSprint
	return a
}

func meleeAttack(dmg, cost int) *game.Ability {
	return ability("melee_attack", 1, cost, game.TargetEnemy, damage(dmg))
}

func activateDodge(chance, duration, cost int) *game.Ability {
	return ability("activate_dodge", 0, cost, game.TargetSelf, status(game.EffectDodge, chance, duration))
}

func cleave(dmg, cost int) *game.Ability {
	a := ability("cleave", 1, cost, game.TargetEnemy, damage(dmg))
	a.AoE = 1
	return a
}

func provoke(radius, duration, cost int) *game.Ability {
	return ability("provoke", 0, cost, game.TargetSelf, status(game.EffectTaunt, radius, duration))
}

func slowStrike(dmg, cost, slow, duration int) *game.Ability {
	return ability("slow_strike", 1, cost, game.TargetEnemy, damage(dmg), status(game.EffectSlowAP, slow, duration))
}

func arrowShot(dmg, cost, rng int) *game.Ability {
	return ability("arrow_shot", rng, cost, game.TargetEnemy, damage(dmg))
}

func cripplingShot(dmg, cost, rng, slow, duration int) *game.Ability {
	return ability("crippling_shot", rng, cost, game.TargetEnemy, damage(dmg), status(game.EffectSlowAP, slow, duration))
}

func sandThrow(chance, cost, rng, duration int) *game.Ability {
	return ability("sand_throw", rng, cost, game.TargetEnemy, status(game.EffectBlind, chance, duration))
}

func fireball(dmg, cost, rng, aoe int) *game.Ability {
	a := ability("fireball", rng, cost, game.TargetEnemy, damage(dmg))
	a.AoE = aoe
	return a
}

func iceShard(dmg, cost, rng, slow, duration int) *game.Ability {
	return ability("ice_shard", rng, cost, game.TargetEnemy, damage(dmg), status(game.EffectSlowAP, slow, duration))
}

func chainLightning(dmg, bounces int, mult float64, cost, rng int) *game.Ability {
	a := ability("chain_lightning", rng, cost, game.TargetEnemy, damage(dmg))
	a.Bounces = bounces
	a.BounceMult = mult
	return a
}

func manaShield(shield, cost, rng, duration int) *game.Ability {
	return ability("mana_shield", rng, cost, game.TargetAlly, status(game.EffectShield, shield, duration))
}

func timeWarp(boost, cost, rng, duration int) *game.Ability {
	return ability("time_warp", rng, cost, game.TargetAlly, status(game.EffectAPBoost, boost, duration))
}

func stunStrike(dmg, cost, rng, duration int) *game.Ability {
	a := ability("stun_strike", rng, cost, game.TargetEnemy, damage(dmg), status(game.EffectStun, 2, duration))
	a.CastTime = 2
	return a
}

func chantOfValor(boost, cost, rng, aoe, duration int) *game.Ability {
	a := ability("chant_of_valor", rng, cost, game.TargetAlly, status(game.EffectAPBoost, boost, duration))
	a.AoE = aoe
	return a
}

func dirgeOfFutility(slow, cost, rng, aoe, duration int) *game.Ability {
	a := ability("dirge_of_futility", rng, cost, game.TargetEnemy, status(game.EffectSlowAP, slow, duration))
	a.AoE = aoe
	return a
}
