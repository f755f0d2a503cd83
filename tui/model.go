package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/turnshock/engine"
	"github.com/brensch/turnshock/scenario"
)

// NewMatchFunc builds a fresh match; the viewer calls it again on restart.
type NewMatchFunc func() (*scenario.Match, error)

type autoStepMsg time.Time

type Model struct {
	newMatch NewMatchFunc
	interval time.Duration

	match *scenario.Match
	last  *engine.TickResult
	auto  bool
	err   error
}

func NewModel(newMatch NewMatchFunc, interval time.Duration) (Model, error) {
	m, err := newMatch()
	if err != nil {
		return Model{}, err
	}
	return Model{newMatch: newMatch, interval: interval, match: m}, nil
}

func (m Model) Match() *scenario.Match { return m.match }

func (m Model) autoStep() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return autoStepMsg(t) })
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n", " ", "right":
			m.step()
		case "a":
			m.auto = !m.auto
			if m.auto {
				return m, m.autoStep()
			}
		case "r":
			match, err := m.newMatch()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.match, m.last, m.err = match, nil, nil
		}
	case autoStepMsg:
		if !m.auto {
			return m, nil
		}
		m.step()
		if m.match.Finished() {
			m.auto = false
			return m, nil
		}
		return m, m.autoStep()
	}
	return m, nil
}

func (m *Model) step() {
	if m.match.Finished() {
		return
	}
	res, err := m.match.Step(context.Background(), nil)
	if err != nil {
		m.err = err
		return
	}
	m.last = res
}

func (m Model) View() string {
	st := m.match.State
	header := titleStyle.Render(fmt.Sprintf("%s  %s  tick %d  [%s]", m.match.Scenario, m.match.ID, st.Tick, m.match.Status()))
	if m.match.Finished() {
		r := m.match.Result()
		switch {
		case r.Winner != "":
			header += "  winner " + r.Winner
		case r.TimedOut:
			header += "  tick cap reached"
		default:
			header += "  draw"
		}
	}

	side := lipgloss.JoinVertical(lipgloss.Left,
		RenderUnits(st),
		"",
		titleStyle.Render("ready now"),
		RenderOptions(st),
		"",
		titleStyle.Render("last tick"),
		RenderEvents(m.last),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(RenderBoard(st)),
		panelStyle.Render(side),
	)

	footer := "n/space step  a autoplay  r restart  q quit"
	if m.auto {
		footer = "autoplay on  " + footer
	}
	if m.err != nil {
		footer = errStyle.Render(m.err.Error()) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer) + "\n"
}
