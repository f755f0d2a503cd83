// Package tui is the terminal match viewer: a bubbletea model that steps a
// match tick by tick and draws the board with lipgloss.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/game"
	"github.com/brensch/turnshock/rules"
)

// maxListedTargets bounds the targets shown per ability.
const maxListedTargets = 3

var (
	teamColors = []lipgloss.Color{"39", "203", "220", "120"}

	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	obstacleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	regenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	deadStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var roleGlyphs = map[game.UnitRole]rune{
	game.RoleSwordsman: 'S',
	game.RoleShield:    'D',
	game.RoleArcher:    'A',
	game.RoleMageDPS:   'M',
	game.RoleMageSupp:  'H',
	game.RoleAssassin:  'X',
	game.RoleBard:      'B',
}

// teamIndex assigns colors by sorted team id so they stay stable as teams die.
func teamIndex(state *game.GameState) map[string]int {
	seen := map[string]bool{}
	var teams []string
	for _, u := range state.Each() {
		if !seen[u.Team] {
			seen[u.Team] = true
			teams = append(teams, u.Team)
		}
	}
	sort.Strings(teams)
	idx := make(map[string]int, len(teams))
	for i, t := range teams {
		idx[t] = i
	}
	return idx
}

func teamStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(teamColors[i%len(teamColors)]).Bold(true)
}

// RenderBoard draws the grid, two columns per cell. Living units show their
// role glyph and id digit; corpses show as x.
func RenderBoard(state *game.GameState) string {
	teams := teamIndex(state)
	var b strings.Builder
	for y := 0; y < game.BoardSize; y++ {
		for x := 0; x < game.BoardSize; x++ {
			p := game.Pos(x, y)
			u := state.AnyUnitAt(p)
			switch {
			case u != nil && u.Alive():
				b.WriteString(teamStyle(teams[u.Team]).Render(fmt.Sprintf("%c%d", roleGlyphs[u.Role], int(u.ID)%10)))
			case u != nil:
				b.WriteString(deadStyle.Render("x "))
			case state.Board.IsBlocked(p):
				b.WriteString(obstacleStyle.Render("##"))
			case state.Board.InRegenZone(p):
				b.WriteString(regenStyle.Render("++"))
			default:
				b.WriteString(emptyStyle.Render(". "))
			}
		}
		if y < game.BoardSize-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderUnits lists every unit with its stats, effects and current action.
func RenderUnits(state *game.GameState) string {
	teams := teamIndex(state)
	var lines []string
	for _, u := range state.Each() {
		style := teamStyle(teams[u.Team])
		if !u.Alive() {
			style = deadStyle
		}
		line := fmt.Sprintf("#%d %-9s %s hp %3d/%-3d ap %2d/%-2d %s",
			u.ID, u.Role, u.Team, u.HP, u.Profile.MaxHP, u.AP, u.Profile.MaxAP, u.CurrentAction)
		if len(u.Effects) > 0 {
			line += fmt.Sprintf(" %v", u.Effects)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

// RenderOptions lists, per living unit, how many single steps it can afford
// and the cells each of its abilities could be cast at right now.
func RenderOptions(state *game.GameState) string {
	teams := teamIndex(state)
	var lines []string
	for _, u := range state.Each() {
		if !u.Alive() {
			continue
		}
		steps := 0
		for _, dest := range rules.LegalMoves(u, state) {
			if rules.ValidateMove(u, dest, state) == nil {
				steps++
			}
		}
		parts := []string{fmt.Sprintf("#%d steps %d", u.ID, steps)}
		for _, ab := range u.Profile.Abilities {
			if ab.IsMovement() {
				continue
			}
			var ready []string
			for _, p := range rules.LegalTargets(u, ab, state) {
				if rules.ValidateAbility(u, ab, p, state) == nil {
					ready = append(ready, p.String())
				}
			}
			switch {
			case len(ready) == 0:
				continue
			case len(ready) > maxListedTargets:
				extra := len(ready) - maxListedTargets
				ready = append(ready[:maxListedTargets], fmt.Sprintf("+%d", extra))
			}
			parts = append(parts, ab.Name+" "+strings.Join(ready, " "))
		}
		lines = append(lines, teamStyle(teams[u.Team]).Render(strings.Join(parts, "  ")))
	}
	if len(lines) == 0 {
		return "nobody can act"
	}
	return strings.Join(lines, "\n")
}

// RenderEvents summarises what the last tick did.
func RenderEvents(res *engine.TickResult) string {
	if res == nil {
		return "no ticks yet"
	}
	var lines []string
	for _, rep := range res.Reports {
		for _, imp := range rep.Impacts {
			switch {
			case imp.Evaded:
				lines = append(lines, fmt.Sprintf("#%d %s -> #%d evaded %s", rep.Caster, rep.Ability, imp.Target, imp.Effect))
			case imp.Dodged:
				lines = append(lines, fmt.Sprintf("#%d %s -> #%d dodged", rep.Caster, rep.Ability, imp.Target))
			case imp.Effect == game.EffectDamage:
				lines = append(lines, fmt.Sprintf("#%d %s -> #%d %d dmg (%s)", rep.Caster, rep.Ability, imp.Target, imp.Amount, imp.Outcome))
			default:
				lines = append(lines, fmt.Sprintf("#%d %s -> #%d %s %d", rep.Caster, rep.Ability, imp.Target, imp.Effect, imp.Amount))
			}
		}
	}
	ids := make([]int, 0, len(res.Rejected))
	for id := range res.Rejected {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		lines = append(lines, errStyle.Render(fmt.Sprintf("#%d rejected: %v", id, res.Rejected[game.UnitID(id)])))
	}
	if len(lines) == 0 {
		return "quiet tick"
	}
	return strings.Join(lines, "\n")
}
