package stats

import (
	"sync"
	"testing"

	"github.com/brensch/turnshock/combat"
	"github.com/brensch/turnshock/game"
)

func TestTrackerRecordsThroughApplier(t *testing.T) {
	hit := &game.Ability{Name: "hit", Range: 1, Target: game.TargetEnemy, AoE: 1, CastTime: 1,
		Effects: []game.Effect{{Type: game.EffectDamage, Value: 10}, {Type: game.EffectSlowAP, Value: 1, Duration: 2}}}
	mend := &game.Ability{Name: "mend", Range: 1, Target: game.TargetAlly, CastTime: 1,
		Effects: []game.Effect{{Type: game.EffectHeal, Value: 30}}}
	p := &game.Profile{MaxHP: 100, MaxAP: 10, Abilities: []*game.Ability{hit, mend}}

	state := game.NewGameState(nil)
	caster := state.Spawn("A", game.Pos(0, 0), p)
	ally := state.Spawn("A", game.Pos(6, 6), p)
	enemy := state.Spawn("B", game.Pos(6, 5), p)
	ally.SetHP(50)

	tr := NewTracker()
	ap := combat.NewApplier(&combat.FixedRoller{Values: []float64{50}}, tr, nil)
	ap.Apply(state, caster, hit, enemy.Pos)
	ap.Apply(state, caster, mend, ally.Pos)

	snap := tr.Snapshot()
	got := snap[caster.ID]["hit"]
	// AoE 1 around the enemy also catches the ally on (6,6).
	if got.Uses != 1 || got.EnemyDamage != 10 || got.AllyDamage != 10 {
		t.Fatalf("hit stats %+v", got)
	}
	if got.Effects["SLOW_AP"] != 2 {
		t.Errorf("slow effects %v", got.Effects)
	}
	if heal := snap[caster.ID]["mend"]; heal.Uses != 1 || heal.Healing != 30 {
		t.Errorf("mend stats %+v", heal)
	}
	if ids := snap.Casters(); len(ids) != 1 || ids[0] != caster.ID {
		t.Errorf("casters %v", ids)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	tr := NewTracker()
	tr.RecordEffect(1, "provoke", game.EffectTaunt, 2)
	snap := tr.Snapshot()
	snap[1]["provoke"].Effects["TAUNT"] = 99

	if got := tr.Snapshot()[1]["provoke"].Effects["TAUNT"]; got != 2 {
		t.Fatalf("tracker changed through snapshot: %d", got)
	}
	tr.Reset()
	if len(tr.Snapshot()) != 0 {
		t.Fatal("reset left data behind")
	}
}

func TestByAbilityMergesCasters(t *testing.T) {
	tr := NewTracker()
	tr.RecordUse(1, "fireball")
	tr.RecordDamage(1, "fireball", 30, true)
	tr.RecordUse(2, "fireball")
	tr.RecordDamage(2, "fireball", 15, false)
	tr.RecordHeal(3, "heal", 20)

	agg := tr.Snapshot().ByAbility()
	fb := agg["fireball"]
	if fb.Uses != 2 || fb.EnemyDamage != 30 || fb.AllyDamage != 15 {
		t.Errorf("fireball %+v", fb)
	}
	if agg["heal"].Healing != 20 {
		t.Errorf("heal %+v", agg["heal"])
	}
}

func TestTrackerConcurrentUse(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tr.RecordUse(1, "arrow_shot")
			}
		}()
	}
	wg.Wait()
	if got := tr.Snapshot()[1]["arrow_shot"].Uses; got != 800 {
		t.Fatalf("uses %d want 800", got)
	}
}
