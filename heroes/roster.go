// Package heroes holds the built-in role profiles and the registry that maps
// role names to them. Rosters can be tuned from YAML without recompiling.
package heroes

import (
	"fmt"
	"sort"

	"github.com/brensch/turnshock/game"
)

func swordsman() *game.Profile {
	return &game.Profile{
		Role: game.RoleSwordsman, MaxHP: 100, MaxAP: 16, APRegen: 1,
		Abilities: []*game.Ability{
			moveTo(),
			meleeAttack(25, 2),
			sprint(2),
			activateDodge(50, 1, 1),
			cleave(25, 4),
		},
	}
}

func defender() *game.Profile {
	return &game.Profile{
		Role: game.RoleShield, MaxHP: 120, MaxAP: 14, APRegen: 1,
		Abilities: []*game.Ability{
			moveTo(),
			meleeAttack(15, 2),
			// Two ticks so the taunt is still up when the next tick's overrides run.
			provoke(2, 2, 1),
			slowStrike(15, 3, 1, 2),
			sprint(2),
		},
	}
}

func archer() *game.Profile {
	return &game.Profile{
		Role: game.RoleArcher, MaxHP: 80, MaxAP: 16, APRegen: 1,
		Abilities: []*game.Ability{
			moveTo(),
			arrowShot(20, 3, 5),
			cripplingShot(15, 4, 4, 1, 1),
			sandThrow(50, 2, 2, 1),
		},
	}
}

func mageDPS() *game.Profile {
	return &game.Profile{
		Role: game.RoleMageDPS, MaxHP: 70, MaxAP: 16, APRegen: 1,
		Abilities: []*game.Ability{
			moveTo(),
			fireball(30, 4, 4, 1),
			iceShard(15, 2, 3, 1, 1),
			chainLightning(30, 2, 0.5, 5, 3),
		},
	}
}

func mageSupport() *game.Profile {
	return &game.Profile{
		Role: game.RoleMageSupp, MaxHP: 60, MaxAP: 16, APRegen: 1,
		Abilities: []*game.Ability{
			moveTo(),
			manaShield(3, 3, 2, 1),
			timeWarp(2, 3, 2, 1),
		},
	}
}

func assassin() *game.Profile {
	return &game.Profile{
		Role: game.RoleAssassin, MaxHP: 60, MaxAP: 20, APRegen: 4, Luck: 50,
		Abilities: []*game.Ability{
			moveTo(),
			meleeAttack(25, 2),
			sprint(3),
			activateDodge(50, 3, 3),
			stunStrike(15, 4, 1, 2),
		},
	}
}

func bard() *game.Profile {
	return &game.Profile{
		Role: game.RoleBard, MaxHP: 80, MaxAP: 18, APRegen: 3, Luck: 30,
		Abilities: []*game.Ability{
			moveTo(),
			chantOfValor(2, 4, 3, 1, 2),
			dirgeOfFutility(1, 5, 3, 1, 2),
		},
	}
}

// Registry maps roles to profiles. Profiles handed out are shared by every
// unit of the role and must not be modified.
type Registry struct {
	profiles map[game.UnitRole]*game.Profile
}

// Default returns a registry with the built-in profile for every role.
func Default() *Registry {
	r := &Registry{profiles: make(map[game.UnitRole]*game.Profile)}
	for _, p := range []*game.Profile{swordsman(), defender(), archer(), mageDPS(), mageSupport(), assassin(), bard()} {
		r.profiles[p.Role] = p
	}
	return r
}

func (r *Registry) Lookup(role game.UnitRole) (*game.Profile, error) {
	p, ok := r.profiles[role]
	if !ok {
		return nil, fmt.Errorf("no profile registered for role %s", role)
	}
	return p, nil
}

// LookupName resolves a role by its name, as used in scenario files.
func (r *Registry) LookupName(name string) (*game.Profile, error) {
	role, err := game.ParseUnitRole(name)
	if err != nil {
		return nil, err
	}
	return r.Lookup(role)
}

// Set registers or replaces the profile for p.Role.
func (r *Registry) Set(p *game.Profile) {
	r.profiles[p.Role] = p
}

// Roles lists registered roles in enum order.
func (r *Registry) Roles() []game.UnitRole {
	out := make([]game.UnitRole, 0, len(r.profiles))
	for role := range r.profiles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
