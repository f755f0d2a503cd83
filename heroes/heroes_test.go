package heroes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brensch/turnshock/game"
)

func TestDefaultRosterCoversEveryRole(t *testing.T) {
	r := Default()
	for _, role := range game.Roles() {
		p, err := r.Lookup(role)
		if err != nil {
			t.Fatalf("role %s: %v", role, err)
		}
		if p.Role != role || p.MaxHP <= 0 || p.MaxAP <= 0 {
			t.Fatalf("role %s: bad profile %+v", role, p)
		}
		mv, ok := p.FirstOfKind(game.KindMove)
		if !ok || mv.Name != "move_to" {
			t.Fatalf("role %s has no move_to", role)
		}
		seen := map[string]bool{}
		for _, a := range p.Abilities {
			if seen[a.Name] {
				t.Fatalf("role %s: duplicate ability %s", role, a.Name)
			}
			seen[a.Name] = true
			if a.CastTime < 1 || a.CritBase != game.DefaultCritBase {
				t.Fatalf("role %s ability %s: cast=%d crit=%v", role, a.Name, a.CastTime, a.CritBase)
			}
		}
	}
	if got := len(r.Roles()); got != 7 {
		t.Fatalf("roles=%d want 7", got)
	}
}

func TestRosterNumbers(t *testing.T) {
	r := Default()
	tests := []struct {
		role            string
		hp, ap, regen   int
		luck            int
		ability         string
		rng, cost, cast int
	}{
		{"SWORDSMAN", 100, 16, 1, 0, "cleave", 1, 4, 1},
		{"SHIELD", 120, 14, 1, 0, "provoke", 0, 1, 1},
		{"ARCHER", 80, 16, 1, 0, "arrow_shot", 5, 3, 1},
		{"MAGE_DPS", 70, 16, 1, 0, "chain_lightning", 3, 5, 1},
		{"MAGE_SUPP", 60, 16, 1, 0, "mana_shield", 2, 3, 1},
		{"ASSASSIN", 60, 20, 4, 50, "stun_strike", 1, 4, 2},
		{"BARD", 80, 18, 3, 30, "dirge_of_futility", 3, 5, 1},
	}
	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			p, err := r.LookupName(tc.role)
			if err != nil {
				t.Fatal(err)
			}
			if p.MaxHP != tc.hp || p.MaxAP != tc.ap || p.APRegen != tc.regen || p.Luck != tc.luck {
				t.Fatalf("stats %+v", p)
			}
			a, ok := p.Ability(tc.ability)
			if !ok {
				t.Fatalf("missing %s", tc.ability)
			}
			if a.Range != tc.rng || a.Cost != tc.cost || a.CastTime != tc.cast {
				t.Fatalf("%s: range=%d cost=%d cast=%d", a.Name, a.Range, a.Cost, a.CastTime)
			}
		})
	}

	mage, _ := r.Lookup(game.RoleMageDPS)
	chain, _ := mage.Ability("chain_lightning")
	if chain.Bounces != 2 || chain.BounceMult != 0.5 {
		t.Fatalf("chain lightning bounces=%d mult=%v", chain.Bounces, chain.BounceMult)
	}
	sword, _ := r.Lookup(game.RoleSwordsman)
	sp, _ := sword.Ability("sprint")
	if sp.Kind != game.KindSprint || sp.Range != 3 {
		t.Fatalf("sprint kind=%s range=%d", sp.Kind, sp.Range)
	}
}

func TestLookupUnknownRole(t *testing.T) {
	if _, err := Default().LookupName("NECROMANCER"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestLoadRosterOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	doc := `
roles:
  archer:
    max_hp: 90
    luck: 10
    remove: [sand_throw]
    abilities:
      - name: arrow_shot
        range: 6
        cost: 2
        target: ENEMY
        effects:
          - {type: DAMAGE, value: 18}
      - name: volley
        range: 4
        cost: 5
        target: enemy
        aoe: 1
        cast_time: 2
        crit_base: 0
        effects:
          - {type: DAMAGE, value: 10}
          - {type: SLOW_AP, value: 1, duration: 2}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	p, _ := r.Lookup(game.RoleArcher)
	if p.MaxHP != 90 || p.Luck != 10 || p.MaxAP != 16 {
		t.Fatalf("stats %+v", p)
	}
	if _, ok := p.Ability("sand_throw"); ok {
		t.Fatal("sand_throw should be removed")
	}
	arrow, _ := p.Ability("arrow_shot")
	if arrow.Range != 6 || arrow.Cost != 2 || arrow.DamageTotal() != 18 {
		t.Fatalf("arrow_shot %+v", arrow)
	}
	volley, ok := p.Ability("volley")
	if !ok || volley.AoE != 1 || volley.CastTime != 2 || volley.CritBase != 0 || volley.FumbleBase != game.DefaultFumbleBase {
		t.Fatalf("volley %+v", volley)
	}

	// Built-in profiles are untouched.
	base, _ := Default().Lookup(game.RoleArcher)
	if base.MaxHP != 80 {
		t.Fatalf("default archer mutated: %d", base.MaxHP)
	}
}

func TestLoadRosterErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown role", "roles:\n  PALADIN:\n    max_hp: 10\n"},
		{"bad effect", "roles:\n  BARD:\n    abilities:\n      - name: x\n        target: ALLY\n        effects: [{type: GLITTER, value: 1}]\n"},
		{"bad target", "roles:\n  BARD:\n    abilities:\n      - name: x\n        target: EVERYONE\n"},
		{"status without duration", "roles:\n  BARD:\n    abilities:\n      - name: ward\n        target: ALLY\n        effects: [{type: SHIELD, value: 10}]\n"},
		{"zero hp", "roles:\n  BARD:\n    max_hp: 0\n"},
		{"not yaml", "roles: [unterminated"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "roster.yaml")
			if err := os.WriteFile(path, []byte(tc.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRoster(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
