package heroes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brensch/turnshock/game"
)

// RosterFile is the YAML form of a set of role overrides:
//
//	roles:
//	  ARCHER:
//	    max_hp: 90
//	    abilities:
//	      - name: arrow_shot
//	        range: 6
//	        cost: 3
//	        target: ENEMY
//	        effects: [{type: DAMAGE, value: 18}]
//	    remove: [sand_throw]
type RosterFile struct {
	Roles map[string]RoleDef `yaml:"roles"`
}

type RoleDef struct {
	MaxHP     *int         `yaml:"max_hp"`
	MaxAP     *int         `yaml:"max_ap"`
	APRegen   *int         `yaml:"ap_regen"`
	Luck      *int         `yaml:"luck"`
	Abilities []AbilityDef `yaml:"abilities"`
	Remove    []string     `yaml:"remove"`
}

type AbilityDef struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind"`
	Range      int         `yaml:"range"`
	Cost       int         `yaml:"cost"`
	Target     string      `yaml:"target"`
	CastTime   int         `yaml:"cast_time"`
	AoE        int         `yaml:"aoe"`
	Bounces    int         `yaml:"bounces"`
	BounceMult *float64    `yaml:"bounce_mult"`
	CritBase   *float64    `yaml:"crit_base"`
	FumbleBase *float64    `yaml:"fumble_base"`
	Effects    []EffectDef `yaml:"effects"`
}

type EffectDef struct {
	Type     string `yaml:"type"`
	Value    int    `yaml:"value"`
	Duration int    `yaml:"duration"`
}

// LoadRoster reads a YAML roster file and applies it over the built-in roles.
func LoadRoster(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f RosterFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	r := Default()
	if err := r.Apply(f); err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

// Apply merges f into the registry. Overridden roles get fresh profiles, so
// units already holding the old profile are unaffected.
func (r *Registry) Apply(f RosterFile) error {
	for name, def := range f.Roles {
		role, err := game.ParseUnitRole(name)
		if err != nil {
			return err
		}
		base, err := r.Lookup(role)
		if err != nil {
			return err
		}
		p, err := def.merge(base)
		if err != nil {
			return fmt.Errorf("role %s: %w", name, err)
		}
		r.Set(p)
	}
	return nil
}

func (d RoleDef) merge(base *game.Profile) (*game.Profile, error) {
	p := *base
	p.Abilities = append([]*game.Ability(nil), base.Abilities...)
	if d.MaxHP != nil {
		p.MaxHP = *d.MaxHP
	}
	if d.MaxAP != nil {
		p.MaxAP = *d.MaxAP
	}
	if d.APRegen != nil {
		p.APRegen = *d.APRegen
	}
	if d.Luck != nil {
		p.Luck = *d.Luck
	}
	if p.MaxHP <= 0 || p.MaxAP < 0 || p.APRegen < 0 {
		return nil, fmt.Errorf("invalid stats hp=%d ap=%d regen=%d", p.MaxHP, p.MaxAP, p.APRegen)
	}

	for _, name := range d.Remove {
		kept := p.Abilities[:0]
		for _, a := range p.Abilities {
			if a.Name != name {
				kept = append(kept, a)
			}
		}
		p.Abilities = kept
	}

	for _, ad := range d.Abilities {
		a, err := ad.build()
		if err != nil {
			return nil, err
		}
		replaced := false
		for i, existing := range p.Abilities {
			if existing.Name == a.Name {
				p.Abilities[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			p.Abilities = append(p.Abilities, a)
		}
	}
	return &p, nil
}

func (d AbilityDef) build() (*game.Ability, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("ability without a name")
	}
	kind, err := game.ParseAbilityKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("ability %s: %w", d.Name, err)
	}
	target, err := game.ParseTargetType(d.Target)
	if err != nil {
		return nil, fmt.Errorf("ability %s: %w", d.Name, err)
	}
	a := ability(d.Name, d.Range, d.Cost, target)
	a.Kind = kind
	a.AoE = d.AoE
	a.Bounces = d.Bounces
	if d.CastTime > 0 {
		a.CastTime = d.CastTime
	}
	if d.BounceMult != nil {
		a.BounceMult = *d.BounceMult
	}
	if d.CritBase != nil {
		a.CritBase = *d.CritBase
	}
	if d.FumbleBase != nil {
		a.FumbleBase = *d.FumbleBase
	}
	if d.Range < 0 || d.Cost < 0 {
		return nil, fmt.Errorf("ability %s: negative range or cost", d.Name)
	}
	for _, ed := range d.Effects {
		t, err := game.ParseEffectType(ed.Type)
		if err != nil {
			return nil, fmt.Errorf("ability %s: %w", d.Name, err)
		}
		if t != game.EffectDamage && t != game.EffectHeal && ed.Duration <= 0 {
			return nil, fmt.Errorf("ability %s: %s needs a positive duration", d.Name, t)
		}
		a.Effects = append(a.Effects, game.Effect{Type: t, Value: ed.Value, Duration: ed.Duration})
	}
	return a, nil
}
