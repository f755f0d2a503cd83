package replaydb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brensch/turnshock/store"
)

func archive(t *testing.T, root, matchID, winner string, ticks int) {
	t.Helper()
	var rows []store.TickRow
	for i := 0; i < ticks; i++ {
		row := store.TickRow{
			MatchID:  matchID,
			Scenario: "duel",
			Tick:     int32(i),
			Units:    []store.UnitRow{{ID: 1, Team: "A", Role: "ARCHER", HP: 80, Alive: true}},
			Impacts: []store.ImpactRow{
				{Caster: 1, Ability: "arrow_shot", Target: 2, Effect: "DAMAGE", Amount: 20, Outcome: "HIT"},
			},
		}
		if i == ticks-1 {
			row.GameOver, row.Winner = true, winner
		}
		rows = append(rows, row)
	}
	if err := store.WriteReplayParquet(filepath.Join(root, matchID+".parquet"), rows); err != nil {
		t.Fatal(err)
	}
}

func TestQueries(t *testing.T) {
	root := t.TempDir()
	archive(t, root, "m_a", "A", 3)
	archive(t, root, "m_b", "B", 2)
	archive(t, filepath.Join(root, "tmp"), "m_tmp", "B", 5)

	db, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()

	matches, err := db.Matches(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches %+v", matches)
	}
	if m := matches[0]; m.MatchID != "m_a" || m.Ticks != 3 || m.Winner != "A" || m.Scenario != "duel" {
		t.Errorf("first match %+v", m)
	}

	abilities, err := db.Abilities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(abilities) != 1 || abilities[0].Casts != 5 || abilities[0].Damage != 100 {
		t.Errorf("abilities %+v", abilities)
	}

	wins, err := db.WinRates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if wins["A"] != 1 || wins["B"] != 1 {
		t.Errorf("wins %v", wins)
	}
}

func TestOpenNeedsRoots(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error")
	}
}
