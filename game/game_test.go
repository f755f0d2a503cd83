package game

import (
	"errors"
	"testing"
)

func basicProfile() *Profile {
	return &Profile{
		Role:    RoleArcher,
		MaxHP:   50,
		MaxAP:   10,
		APRegen: 2,
		Abilities: []*Ability{
			{Name: "move_to", Kind: KindMove, Range: 1, Cost: 1, Target: TargetPoint, CastTime: 1},
			{Name: "shoot", Range: 4, Cost: 3, Target: TargetEnemy, CastTime: 2,
				Effects: []Effect{{Type: EffectDamage, Value: 7}, {Type: EffectDamage, Value: 3}, {Type: EffectSlowAP, Value: 1, Duration: 1}}},
		},
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b      Position
		cheb, man int
	}{
		{Pos(0, 0), Pos(0, 0), 0, 0},
		{Pos(0, 0), Pos(3, 1), 3, 4},
		{Pos(5, 5), Pos(2, 8), 3, 6},
		{Pos(12, 0), Pos(0, 12), 12, 24},
	}
	for _, tc := range tests {
		if got := tc.a.Distance(tc.b); got != tc.cheb {
			t.Errorf("%v.Distance(%v)=%d want %d", tc.a, tc.b, got, tc.cheb)
		}
		if got := tc.a.Manhattan(tc.b); got != tc.man {
			t.Errorf("%v.Manhattan(%v)=%d want %d", tc.a, tc.b, got, tc.man)
		}
	}
}

func TestInBounds(t *testing.T) {
	for _, p := range []Position{Pos(0, 0), Pos(12, 12), Pos(6, 0)} {
		if !p.InBounds() {
			t.Errorf("%v should be in bounds", p)
		}
	}
	for _, p := range []Position{Pos(-1, 0), Pos(0, 13), Pos(13, 13)} {
		if p.InBounds() {
			t.Errorf("%v should be out of bounds", p)
		}
	}
}

func TestIsLineBlocked(t *testing.T) {
	b := NewBoard([]Position{Pos(2, 0), Pos(5, 5)}, nil)
	tests := []struct {
		name     string
		from, to Position
		want     bool
	}{
		{"straight through obstacle", Pos(0, 0), Pos(4, 0), true},
		{"endpoint is obstacle", Pos(0, 0), Pos(2, 0), false},
		{"start is obstacle", Pos(2, 0), Pos(4, 0), false},
		{"diagonal through obstacle", Pos(3, 3), Pos(7, 7), true},
		{"clear row", Pos(0, 1), Pos(6, 1), false},
		{"adjacent", Pos(1, 0), Pos(3, 0), true},
		{"same cell", Pos(4, 4), Pos(4, 4), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.IsLineBlocked(tc.from, tc.to); got != tc.want {
				t.Fatalf("IsLineBlocked(%v,%v)=%t want %t", tc.from, tc.to, got, tc.want)
			}
			if got := b.IsLineBlocked(tc.to, tc.from); got != tc.want {
				t.Fatalf("IsLineBlocked(%v,%v)=%t want %t (reversed)", tc.to, tc.from, got, tc.want)
			}
		})
	}
}

func TestApplyZoneEffects(t *testing.T) {
	s := NewGameState(NewBoard(nil, []Position{Pos(1, 1)}))
	p := basicProfile()
	healer := s.Spawn("A", Pos(1, 1), p)
	outside := s.Spawn("A", Pos(2, 2), p)
	corpse := s.Spawn("B", Pos(1, 1), p)
	healer.HP = 10
	outside.HP = 10
	corpse.HP = 0

	s.Board.ApplyZoneEffects(s)
	if healer.HP != 11 || outside.HP != 10 || corpse.HP != 0 {
		t.Fatalf("hp after zone: healer=%d outside=%d corpse=%d", healer.HP, outside.HP, corpse.HP)
	}

	healer.HP = p.MaxHP
	s.Board.ApplyZoneEffects(s)
	if healer.HP != p.MaxHP {
		t.Fatalf("zone healed past max: %d", healer.HP)
	}
}

func TestSetHPAndAPClamp(t *testing.T) {
	u := NewHeroUnit(1, "A", Pos(0, 0), basicProfile())
	u.SetHP(500)
	u.SetAP(-3)
	if u.HP != 50 || u.AP != 0 {
		t.Fatalf("hp=%d ap=%d want 50/0", u.HP, u.AP)
	}
	u.SetHP(-1)
	if u.HP != 0 || u.Alive() {
		t.Fatalf("hp=%d alive=%t", u.HP, u.Alive())
	}
}

func TestTickEffects(t *testing.T) {
	u := NewHeroUnit(1, "A", Pos(0, 0), basicProfile())
	u.Effects = []Effect{
		{Type: EffectShield, Value: 3, Duration: 1},
		{Type: EffectAPBoost, Value: 2, Duration: 3},
		{Type: EffectStun, Value: 1, Duration: 0},
	}
	u.TickEffects()
	if len(u.Effects) != 1 || u.Effects[0].Type != EffectAPBoost || u.Effects[0].Duration != 2 {
		t.Fatalf("effects after tick: %v", u.Effects)
	}
}

func TestAPRegen(t *testing.T) {
	u := NewHeroUnit(1, "A", Pos(0, 0), basicProfile())
	u.AP = 0
	u.Effects = []Effect{{Type: EffectAPBoost, Value: 3, Duration: 2}, {Type: EffectSlowAP, Value: 1, Duration: 2}}
	if got := u.APRegen(); got != 4 {
		t.Fatalf("regen=%d want 4", got)
	}
	u.ApplyAPRegen()
	if u.AP != 4 {
		t.Fatalf("ap=%d want 4", u.AP)
	}

	u.Effects = []Effect{{Type: EffectSlowAP, Value: 9, Duration: 2}}
	if got := u.APRegen(); got != 0 {
		t.Fatalf("regen=%d want 0 when slowed below zero", got)
	}

	u.Effects = nil
	u.AP = 9
	u.ApplyAPRegen()
	if u.AP != 10 {
		t.Fatalf("ap=%d want capped 10", u.AP)
	}
}

func TestFirstEffectAndRemove(t *testing.T) {
	u := NewHeroUnit(1, "A", Pos(0, 0), basicProfile())
	u.Effects = []Effect{
		{Type: EffectBuff, Value: 1, Duration: 2},
		{Type: EffectShield, Value: 4, Duration: 2},
		{Type: EffectShield, Value: 9, Duration: 2},
	}
	i, ok := u.FirstEffect(EffectShield)
	if !ok || i != 1 {
		t.Fatalf("FirstEffect=%d,%t want 1,true", i, ok)
	}
	u.RemoveEffectAt(i)
	if u.SumEffects(EffectShield) != 9 || len(u.Effects) != 2 {
		t.Fatalf("effects after remove: %v", u.Effects)
	}
	if u.HasEffect(EffectStun) {
		t.Fatal("unexpected stun")
	}
}

func TestAbilityHelpers(t *testing.T) {
	p := basicProfile()
	shoot, ok := p.Ability("shoot")
	if !ok {
		t.Fatal("shoot missing")
	}
	if shoot.DamageTotal() != 10 || shoot.IsMovement() || !shoot.HasPayload() {
		t.Fatalf("shoot: dmg=%d move=%t payload=%t", shoot.DamageTotal(), shoot.IsMovement(), shoot.HasPayload())
	}
	mv, ok := p.FirstOfKind(KindMove)
	if !ok || !mv.IsMovement() || mv.HasPayload() {
		t.Fatalf("move_to: %+v", mv)
	}
	if _, ok := p.Ability("nope"); ok {
		t.Fatal("unknown ability found")
	}
}

func TestActiveActionLifecycle(t *testing.T) {
	p := basicProfile()
	shoot, _ := p.Ability("shoot")
	a := NewActiveAction(shoot, Pos(3, 3), 7)
	if a.TicksRemaining != 2 || a.Started {
		t.Fatalf("new action: %v", a)
	}
	a.Started = true
	if a.Tick() {
		t.Fatal("completed after one of two ticks")
	}
	if !a.Tick() {
		t.Fatal("did not complete after two ticks")
	}
	r := a.Rearm()
	if r.Started || r.TicksRemaining != 2 || r.TargetUnit != 7 || r == a {
		t.Fatalf("rearm: %v", r)
	}

	zero := NewActiveAction(&Ability{Name: "instant"}, Pos(0, 0), 0)
	if zero.TicksRemaining != 1 {
		t.Fatalf("cast time 0 should still take one tick, got %d", zero.TicksRemaining)
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s := NewGameState(nil)
	p := basicProfile()
	u := s.Spawn("A", Pos(1, 1), p)
	mv, _ := p.Ability("move_to")
	u.CurrentAction = NewActiveAction(mv, Pos(4, 4), 0)
	u.CurrentAction.Path = []Position{Pos(2, 2), Pos(3, 3), Pos(4, 4)}
	u.Effects = []Effect{{Type: EffectShield, Value: 5, Duration: 2}}

	c := s.Clone()
	cu, _ := c.Unit(u.ID)
	cu.HP = 1
	cu.Effects[0].Value = 99
	cu.CurrentAction.Path[0] = Pos(9, 9)

	if u.HP == 1 || u.Effects[0].Value == 99 || u.CurrentAction.Path[0] == Pos(9, 9) {
		t.Fatalf("clone aliases original: %+v", u)
	}
	if c.Board != s.Board {
		t.Fatal("board should be shared")
	}
	next := c.Spawn("B", Pos(5, 5), p)
	if next.ID != 2 {
		t.Fatalf("clone id counter: got %d want 2", next.ID)
	}
}

func TestUnitLookupAndGameOver(t *testing.T) {
	s := NewGameState(nil)
	p := basicProfile()
	a := s.Spawn("A", Pos(0, 0), p)
	b := s.Spawn("B", Pos(5, 5), p)
	b2 := s.Spawn("B", Pos(5, 5), p)
	b.HP = 0

	if got := s.UnitAt(Pos(5, 5)); got != b2 {
		t.Fatalf("UnitAt returned %v want living b2", got)
	}
	b2.HP = 0
	if got := s.AnyUnitAt(Pos(5, 5)); got != b {
		t.Fatalf("AnyUnitAt returned %v want first corpse", got)
	}
	if !s.IsGameOver() || s.Winner() != "A" {
		t.Fatalf("game over=%t winner=%q", s.IsGameOver(), s.Winner())
	}
	a.HP = 0
	if !s.IsGameOver() || s.Winner() != "" {
		t.Fatalf("all dead: game over=%t winner=%q", s.IsGameOver(), s.Winner())
	}
}

func TestAddUnitKeepsIDsMonotonic(t *testing.T) {
	s := NewGameState(nil)
	p := basicProfile()
	s.AddUnit(NewHeroUnit(5, "A", Pos(0, 0), p))
	u := s.Spawn("B", Pos(1, 1), p)
	if u.ID != 6 {
		t.Fatalf("spawned id %d want 6", u.ID)
	}
	s.AddUnit(NewHeroUnit(2, "A", Pos(2, 2), p))
	if u := s.Spawn("B", Pos(3, 3), p); u.ID != 7 {
		t.Fatalf("spawned id %d want 7", u.ID)
	}
	ids := []UnitID{}
	for _, u := range s.Each() {
		ids = append(ids, u.ID)
	}
	want := []UnitID{5, 6, 2, 7}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order=%v want %v", ids, want)
		}
	}
}

func TestErrorTaxonomy(t *testing.T) {
	errs := []struct {
		err  error
		kind error
	}{
		{OutOfBounds("x"), ErrOutOfBounds},
		{InsufficientAP("x"), ErrInsufficientAP},
		{LineOfSightBlocked("x"), ErrLineOfSightBlocked},
		{WrongTargetType("x"), ErrWrongTargetType},
		{InvalidAction("x"), ErrInvalidAction},
	}
	for _, tc := range errs {
		if !errors.Is(tc.err, tc.kind) || !errors.Is(tc.err, ErrInvalidAction) || !errors.Is(tc.err, ErrDomain) {
			t.Errorf("%v does not unwrap to %v/ErrInvalidAction/ErrDomain", tc.err, tc.kind)
		}
		var de *DomainError
		if !errors.As(tc.err, &de) || de.Msg != "x" {
			t.Errorf("%v is not a *DomainError with message", tc.err)
		}
	}
	if errors.Is(ErrActionInProgress, ErrDomain) {
		t.Error("ErrActionInProgress must not be a domain error")
	}
}

func TestParseEnums(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseUnitRole(r.String())
		if err != nil || got != r {
			t.Errorf("ParseUnitRole(%q)=%v,%v", r.String(), got, err)
		}
	}
	if _, err := ParseUnitRole("WIZARD"); err == nil {
		t.Error("expected error for unknown role")
	}
	if k, err := ParseAbilityKind(""); err != nil || k != KindCast {
		t.Errorf("ParseAbilityKind(\"\")=%v,%v", k, err)
	}
}
