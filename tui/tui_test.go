package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/turnshock/combat"
	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/game"
	"github.com/brensch/turnshock/heroes"
	"github.com/brensch/turnshock/scenario"
)

func duel() (*scenario.Match, error) {
	state, err := scenario.BuildNewGame(0, scenario.HeroSetup{
		"A": {{Role: "SWORDSMAN", Pos: scenario.Cell{1, 1}}},
		"B": {{Role: "ARCHER", Pos: scenario.Cell{2, 1}}},
	}, scenario.MapConfig{
		Obstacles: []scenario.Cell{{5, 5}},
		RegenZone: []scenario.Cell{{0, 0}},
	}, heroes.Default())
	if err != nil {
		return nil, err
	}
	script, err := scenario.NewScript([]scenario.ScriptEntry{{Tick: 0, Unit: 1, Ability: "melee_attack", TargetUnit: 2}})
	if err != nil {
		return nil, err
	}
	eng := engine.New(combat.NewApplier(&combat.FixedRoller{Values: []float64{50}}, nil, nil), nil)
	return scenario.NewMatch("duel", state, script, eng, 3, nil), nil
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderBoard(t *testing.T) {
	m, err := duel()
	if err != nil {
		t.Fatal(err)
	}
	out := RenderBoard(m.State)
	lines := strings.Split(out, "\n")
	if len(lines) != game.BoardSize {
		t.Fatalf("%d lines", len(lines))
	}
	t.Logf("\n%s", out)
	for _, want := range []string{"S1", "A2", "##", "++"} {
		if !strings.Contains(out, want) {
			t.Errorf("board missing %q", want)
		}
	}
	if !strings.HasPrefix(lines[0], "++") {
		t.Errorf("regen cell not drawn at origin: %q", lines[0])
	}
}

func TestRenderOptions(t *testing.T) {
	m, err := duel()
	if err != nil {
		t.Fatal(err)
	}
	out := RenderOptions(m.State)
	t.Logf("\n%s", out)
	for _, want := range []string{"#1 steps 3", "melee_attack (2,1)", "#2 steps 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("options missing %q", want)
		}
	}

	m.State.Each()[0].AP = 0
	out = RenderOptions(m.State)
	if strings.Contains(out, "#1 steps 3") || strings.Contains(out, "melee_attack") {
		t.Errorf("unit without AP still listed as ready:\n%s", out)
	}
}

func TestModelSteps(t *testing.T) {
	mdl, err := NewModel(duel, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	next, _ := mdl.Update(key("n"))
	mdl = next.(Model)
	if mdl.Match().State.Tick != 1 {
		t.Fatalf("tick %d after one step", mdl.Match().State.Tick)
	}
	view := mdl.View()
	if !strings.Contains(view, "melee_attack -> #2 25 dmg (HIT)") {
		t.Errorf("view missing hit event:\n%s", view)
	}

	for i := 0; i < 5; i++ {
		next, _ = mdl.Update(key(" "))
		mdl = next.(Model)
	}
	if !mdl.Match().Finished() || mdl.Match().State.Tick != 3 {
		t.Fatalf("match should stop at the tick cap, tick %d", mdl.Match().State.Tick)
	}
	if !strings.Contains(mdl.View(), "tick cap reached") {
		t.Errorf("view should report the tick cap:\n%s", mdl.View())
	}

	next, _ = mdl.Update(key("r"))
	mdl = next.(Model)
	if mdl.Match().State.Tick != 0 || mdl.Match().Finished() {
		t.Fatal("restart should build a fresh match")
	}
}

func TestModelAutoplay(t *testing.T) {
	mdl, err := NewModel(duel, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	next, cmd := mdl.Update(key("a"))
	mdl = next.(Model)
	if cmd == nil {
		t.Fatal("autoplay should schedule a step")
	}
	for i := 0; i < 10 && cmd != nil; i++ {
		next, cmd = mdl.Update(autoStepMsg(time.Now()))
		mdl = next.(Model)
	}
	if !mdl.Match().Finished() || cmd != nil {
		t.Fatalf("autoplay should run to the end and stop, tick %d", mdl.Match().State.Tick)
	}

	if _, cmd := mdl.Update(key("q")); cmd == nil {
		t.Fatal("q should quit")
	}
}
