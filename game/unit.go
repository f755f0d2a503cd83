package game

// HeroUnit is a single combatant. A unit with HP <= 0 is dead but stays in the
// state so corpses can still be targeted and drawn.
type HeroUnit struct {
	ID      UnitID
	Role    UnitRole
	Team    string
	Pos     Position
	Profile *Profile

	HP      int
	AP      int
	Effects []Effect

	CurrentAction *ActiveAction
}

// NewHeroUnit creates a unit at full HP and AP.
func NewHeroUnit(id UnitID, team string, pos Position, profile *Profile) *HeroUnit {
	return &HeroUnit{
		ID:      id,
		Role:    profile.Role,
		Team:    team,
		Pos:     pos,
		Profile: profile,
		HP:      profile.MaxHP,
		AP:      profile.MaxAP,
	}
}

func (u *HeroUnit) Alive() bool { return u.HP > 0 }

func (u *HeroUnit) Luck() int { return u.Profile.Luck }

// Casting reports whether the unit's action has started and can no longer be replaced.
func (u *HeroUnit) Casting() bool {
	return u.CurrentAction != nil && u.CurrentAction.Started
}

// SetHP clamps to [0, MaxHP].
func (u *HeroUnit) SetHP(hp int) {
	u.HP = min(max(hp, 0), u.Profile.MaxHP)
}

// SetAP clamps to [0, MaxAP].
func (u *HeroUnit) SetAP(ap int) {
	u.AP = min(max(ap, 0), u.Profile.MaxAP)
}

// TickEffects ages every effect by one tick and drops the expired ones.
func (u *HeroUnit) TickEffects() {
	if len(u.Effects) == 0 {
		return
	}
	kept := u.Effects[:0]
	for _, e := range u.Effects {
		e.Duration--
		if e.Duration > 0 {
			kept = append(kept, e)
		}
	}
	u.Effects = kept
}

// SumEffects adds up the values of all active effects of type t.
func (u *HeroUnit) SumEffects(t EffectType) int {
	total := 0
	for _, e := range u.Effects {
		if e.Type == t {
			total += e.Value
		}
	}
	return total
}

func (u *HeroUnit) HasEffect(t EffectType) bool {
	_, ok := u.FirstEffect(t)
	return ok
}

// FirstEffect returns the index of the oldest active effect of type t.
func (u *HeroUnit) FirstEffect(t EffectType) (int, bool) {
	for i, e := range u.Effects {
		if e.Type == t {
			return i, true
		}
	}
	return -1, false
}

func (u *HeroUnit) RemoveEffectAt(i int) {
	u.Effects = append(u.Effects[:i], u.Effects[i+1:]...)
}

// APRegen is the profile regen plus AP_BOOST minus SLOW_AP, floored at zero.
func (u *HeroUnit) APRegen() int {
	return max(0, u.Profile.APRegen+u.SumEffects(EffectAPBoost)-u.SumEffects(EffectSlowAP))
}

func (u *HeroUnit) ApplyAPRegen() {
	u.SetAP(u.AP + u.APRegen())
}

// Clone deep-copies the unit. The profile is shared.
func (u *HeroUnit) Clone() *HeroUnit {
	out := *u
	if u.Effects != nil {
		out.Effects = make([]Effect, len(u.Effects))
		copy(out.Effects, u.Effects)
	}
	out.CurrentAction = u.CurrentAction.Clone()
	return &out
}
