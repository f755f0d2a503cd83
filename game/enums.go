package game

import (
	"fmt"
	"strings"
)

// EffectType is the kind of a status effect or ability payload.
type EffectType int

const (
	EffectDamage EffectType = iota
	EffectHeal
	EffectBuff
	EffectDebuff
	EffectSlowAP
	EffectAPBoost
	EffectDodge
	EffectTaunt
	EffectShield
	EffectBlind
	EffectBounce
	EffectStun
	EffectCritDamage
	EffectFumble
)

var effectTypeNames = [...]string{
	EffectDamage:     "DAMAGE",
	EffectHeal:       "HEAL",
	EffectBuff:       "BUFF",
	EffectDebuff:     "DEBUFF",
	EffectSlowAP:     "SLOW_AP",
	EffectAPBoost:    "AP_BOOST",
	EffectDodge:      "DODGE",
	EffectTaunt:      "TAUNT",
	EffectShield:     "SHIELD",
	EffectBlind:      "BLIND",
	EffectBounce:     "BOUNCE",
	EffectStun:       "STUN",
	EffectCritDamage: "CRIT_DAMAGE",
	EffectFumble:     "FUMBLE",
}

func (t EffectType) String() string {
	if t < 0 || int(t) >= len(effectTypeNames) {
		return fmt.Sprintf("EffectType(%d)", int(t))
	}
	return effectTypeNames[t]
}

func ParseEffectType(s string) (EffectType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range effectTypeNames {
		if name == s {
			return EffectType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown effect type %q", s)
}

// TargetType is what an ability must be aimed at.
type TargetType int

const (
	TargetSelf TargetType = iota
	TargetEnemy
	TargetAlly
	TargetDeadEnemy
	TargetDeadAlly
	TargetPoint
)

var targetTypeNames = [...]string{
	TargetSelf:      "SELF",
	TargetEnemy:     "ENEMY",
	TargetAlly:      "ALLY",
	TargetDeadEnemy: "DEAD_ENEMY",
	TargetDeadAlly:  "DEAD_ALLY",
	TargetPoint:     "POINT",
}

func (t TargetType) String() string {
	if t < 0 || int(t) >= len(targetTypeNames) {
		return fmt.Sprintf("TargetType(%d)", int(t))
	}
	return targetTypeNames[t]
}

// Corpse reports whether the target kind is aimed at a dead unit.
func (t TargetType) Corpse() bool {
	return t == TargetDeadEnemy || t == TargetDeadAlly
}

func ParseTargetType(s string) (TargetType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range targetTypeNames {
		if name == s {
			return TargetType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown target type %q", s)
}

// UnitRole names a hero class. Each role maps to exactly one Profile.
type UnitRole int

const (
	RoleSwordsman UnitRole = iota
	RoleShield
	RoleArcher
	RoleMageDPS
	RoleMageSupp
	RoleAssassin
	RoleBard
)

var unitRoleNames = [...]string{
	RoleSwordsman: "SWORDSMAN",
	RoleShield:    "SHIELD",
	RoleArcher:    "ARCHER",
	RoleMageDPS:   "MAGE_DPS",
	RoleMageSupp:  "MAGE_SUPP",
	RoleAssassin:  "ASSASSIN",
	RoleBard:      "BARD",
}

func (r UnitRole) String() string {
	if r < 0 || int(r) >= len(unitRoleNames) {
		return fmt.Sprintf("UnitRole(%d)", int(r))
	}
	return unitRoleNames[r]
}

// ParseUnitRole accepts the upper-case role names used in heroes.json.
func ParseUnitRole(s string) (UnitRole, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range unitRoleNames {
		if name == s {
			return UnitRole(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Roles lists every role in declaration order.
func Roles() []UnitRole {
	out := make([]UnitRole, len(unitRoleNames))
	for i := range unitRoleNames {
		out[i] = UnitRole(i)
	}
	return out
}

// AbilityKind separates movement orders from casts so the state machine never
// has to look at ability names.
type AbilityKind int

const (
	KindCast AbilityKind = iota
	KindMove
	KindSprint
)

var abilityKindNames = [...]string{
	KindCast:   "CAST",
	KindMove:   "MOVE",
	KindSprint: "SPRINT",
}

func (k AbilityKind) String() string {
	if k < 0 || int(k) >= len(abilityKindNames) {
		return fmt.Sprintf("AbilityKind(%d)", int(k))
	}
	return abilityKindNames[k]
}

func ParseAbilityKind(s string) (AbilityKind, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return KindCast, nil
	}
	for i, name := range abilityKindNames {
		if name == s {
			return AbilityKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ability kind %q", s)
}
