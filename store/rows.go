// Package store archives match replays as parquet files and keeps the
// append-only log of which scenario runs have been archived.
package store

import (
	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/game"
)

// SchemaVersion is written into every replay file's key/value metadata.
const SchemaVersion = "turnshock_tick_v1"

// TickRow is one resolved tick of one match.
//
// Units hold the state after the tick. Impacts list what every ability that
// fired during the tick did, in resolution order.
type TickRow struct {
	MatchID  string `parquet:"match_id,dict" json:"match_id"`
	Scenario string `parquet:"scenario,dict" json:"scenario"`
	Tick     int32  `parquet:"tick" json:"tick"`
	GameOver bool   `parquet:"game_over" json:"game_over"`
	Winner   string `parquet:"winner,dict,optional" json:"winner,omitempty"`

	Units   []UnitRow   `parquet:"units" json:"units"`
	Impacts []ImpactRow `parquet:"impacts" json:"impacts,omitempty"`
}

type UnitRow struct {
	ID    int32  `parquet:"id" json:"id"`
	Team  string `parquet:"team,dict" json:"team"`
	Role  string `parquet:"role,dict" json:"role"`
	X     int32  `parquet:"x" json:"x"`
	Y     int32  `parquet:"y" json:"y"`
	HP    int32  `parquet:"hp" json:"hp"`
	AP    int32  `parquet:"ap" json:"ap"`
	Alive bool   `parquet:"alive" json:"alive"`

	// Effects are rendered as TYPE(value/duration).
	Effects  []string `parquet:"effects" json:"effects,omitempty"`
	Action   string   `parquet:"action,optional" json:"action,omitempty"`
	Executed bool     `parquet:"executed" json:"executed"`
	Rejected string   `parquet:"rejected,optional" json:"rejected,omitempty"`
}

type ImpactRow struct {
	Caster  int32  `parquet:"caster" json:"caster"`
	Ability string `parquet:"ability,dict" json:"ability"`
	Target  int32  `parquet:"target" json:"target"`
	Effect  string `parquet:"effect,dict" json:"effect"`
	Amount  int32  `parquet:"amount" json:"amount"`
	Outcome string `parquet:"outcome,dict" json:"outcome"`
	Evaded  bool   `parquet:"evaded" json:"evaded"`
	Dodged  bool   `parquet:"dodged" json:"dodged"`
	Bounce  bool   `parquet:"bounce" json:"bounce"`
}

// RowFromResult snapshots a tick result. It must be called before the next
// tick mutates res.State.
func RowFromResult(matchID, scenario string, res *engine.TickResult) TickRow {
	row := TickRow{
		MatchID:  matchID,
		Scenario: scenario,
		Tick:     int32(res.Tick),
		GameOver: res.GameOver,
	}
	if res.GameOver {
		row.Winner = res.State.Winner()
	}

	for _, u := range res.State.Each() {
		row.Units = append(row.Units, unitRow(u, res))
	}
	for _, rep := range res.Reports {
		for _, imp := range rep.Impacts {
			row.Impacts = append(row.Impacts, ImpactRow{
				Caster:  int32(rep.Caster),
				Ability: rep.Ability,
				Target:  int32(imp.Target),
				Effect:  imp.Effect.String(),
				Amount:  int32(imp.Amount),
				Outcome: imp.Outcome.String(),
				Evaded:  imp.Evaded,
				Dodged:  imp.Dodged,
				Bounce:  imp.Bounce,
			})
		}
	}
	return row
}

func unitRow(u *game.HeroUnit, res *engine.TickResult) UnitRow {
	r := UnitRow{
		ID:       int32(u.ID),
		Team:     u.Team,
		Role:     u.Role.String(),
		X:        int32(u.Pos.X),
		Y:        int32(u.Pos.Y),
		HP:       int32(u.HP),
		AP:       int32(u.AP),
		Alive:    u.Alive(),
		Executed: res.Executed[u.ID],
	}
	for _, e := range u.Effects {
		r.Effects = append(r.Effects, e.String())
	}
	if u.CurrentAction != nil {
		r.Action = u.CurrentAction.String()
	}
	if err := res.Rejected[u.ID]; err != nil {
		r.Rejected = err.Error()
	}
	return r
}
