// internal/tui/model.go
//
// Bubble Tea front end over the game Machine. The model is a thin renderer:
// every keystroke, tick, and flash timeout becomes a game event, and View is
// a pure function of the resulting snapshot.
//
// Timing runs on tea.Tick commands. Both the 1 s countdown chain and the
// 500 ms success flash carry a sequence number so messages from an abandoned
// round (or a superseded flash) are dropped instead of acted on.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mathsprint/internal/game"
)

// tickMsg advances the countdown; stale sequences are ignored.
type tickMsg struct {
	seq int
}

// hideMsg clears the success flash; stale sequences are ignored.
type hideMsg struct {
	seq int
}

// Model is the Bubble Tea model for a local game session.
type Model struct {
	machine *game.Machine
	state   game.State

	answer textinput.Model
	name   textinput.Model

	tickSeq int
	hideSeq int

	styles styles
}

type styles struct {
	title   lipgloss.Style
	problem lipgloss.Style
	flash   lipgloss.Style
	faint   lipgloss.Style
	frame   lipgloss.Style
}

// New builds the model and primes the leaderboard cache.
func New(m *game.Machine) Model {
	answer := textinput.New()
	answer.Placeholder = "answer"
	answer.CharLimit = 8
	answer.Width = 10

	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 20
	name.Width = 22

	return Model{
		machine: m,
		state:   m.Dispatch(context.Background(), game.LoadScores{}),
		answer:  answer,
		name:    name,
		styles: styles{
			title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
			problem: lipgloss.NewStyle().Bold(true),
			flash:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			faint:   lipgloss.NewStyle().Faint(true),
			frame:   lipgloss.NewStyle().Padding(1, 3),
		},
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// apply dispatches ev and returns a flash-clear command when the score
// advanced (back-to-back correct answers supersede the earlier flash).
func (m *Model) apply(ev game.Event) tea.Cmd {
	prev := m.state
	m.state = m.machine.Dispatch(context.Background(), ev)
	if m.state.Score > prev.Score && m.state.ShowSuccess {
		m.hideSeq++
		return m.hideCmd(m.hideSeq)
	}
	return nil
}

func (m Model) tickCmd(seq int) tea.Cmd {
	return tea.Tick(game.TickInterval, func(time.Time) tea.Msg { return tickMsg{seq: seq} })
}

func (m Model) hideCmd(seq int) tea.Cmd {
	return tea.Tick(game.SuccessFlash, func(time.Time) tea.Msg { return hideMsg{seq: seq} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state.Phase {
		case game.PhaseMenu:
			return m.updateMenu(msg)
		case game.PhasePlaying:
			return m.updatePlaying(msg)
		case game.PhaseGameOver:
			return m.updateGameOver(msg)
		}

	case tickMsg:
		if msg.seq != m.tickSeq || m.state.Phase != game.PhasePlaying {
			return m, nil
		}
		m.apply(game.Tick{})
		if m.state.Phase == game.PhasePlaying {
			return m, m.tickCmd(m.tickSeq)
		}
		// Round over: hand focus to the name prompt.
		m.answer.Blur()
		m.name.Focus()
		return m, textinput.Blink

	case hideMsg:
		if msg.seq == m.hideSeq {
			m.apply(game.HideSuccess{})
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "s":
		return m.startRound()
	}
	return m, nil
}

func (m Model) startRound() (tea.Model, tea.Cmd) {
	m.apply(game.StartGame{})
	m.tickSeq++
	m.answer.SetValue("")
	m.answer.Focus()
	m.name.Blur()
	m.name.SetValue("")
	return m, tea.Batch(m.tickCmd(m.tickSeq), textinput.Blink)
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.apply(game.ReturnToMenu{})
		return m, nil
	}
	before := m.answer.Value()
	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	var hide tea.Cmd
	if v := m.answer.Value(); v != before {
		hide = m.apply(game.UpdateInput{Text: v})
		// A correct answer resets the buffer in the machine; mirror it.
		if m.state.Input != v {
			m.answer.SetValue(m.state.Input)
		}
	}
	return m, tea.Batch(cmd, hide)
}

func (m Model) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.apply(game.ReturnToMenu{})
		return m, nil
	case "ctrl+r":
		return m.startRound()
	case "enter":
		// The machine persists at most one record per game; Saved comes
		// back in the snapshot.
		if !m.state.Saved && strings.TrimSpace(m.name.Value()) != "" {
			m.apply(game.SaveScore{Name: m.name.Value()})
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// ------------------------------- rendering ---------------------------------

func (m Model) View() string {
	var body string
	switch m.state.Phase {
	case game.PhaseMenu:
		body = m.menuView()
	case game.PhasePlaying:
		body = m.playingView()
	case game.PhaseGameOver:
		body = m.gameOverView()
	}
	return m.styles.frame.Render(body)
}

func (m Model) menuView() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("MATH SPRINT"))
	b.WriteString("\n\nSolve as many as you can in 30 seconds.\n\n")
	if len(m.state.TopScores) > 0 {
		b.WriteString("Top scores:\n")
		for i, r := range m.state.TopScores {
			b.WriteString(fmt.Sprintf("  %d. %-20s %d\n", i+1, r.Name, r.Score))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.faint.Render("enter: start  ·  q: quit"))
	return b.String()
}

func (m Model) playingView() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("score %d%s︱time %2d\n\n", m.state.Score,
		strings.Repeat(" ", 4), m.state.TimeLeft))
	if p := m.state.Problem; p != nil {
		b.WriteString(m.styles.problem.Render(p.Text()+" = ") + "\n\n")
	}
	b.WriteString(m.answer.View() + "\n")
	if m.state.ShowSuccess {
		b.WriteString(m.styles.flash.Render("✓ correct") + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.styles.faint.Render("esc: back to menu"))
	return b.String()
}

func (m Model) gameOverView() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("TIME!"))
	b.WriteString(fmt.Sprintf("\n\nYour score: %d\n\n", m.state.Score))
	if m.state.Saved {
		b.WriteString("Score saved.\n")
	} else {
		b.WriteString(m.name.View() + "\n")
	}
	b.WriteString("\n" + m.styles.faint.Render("enter: save  ·  ctrl+r: play again  ·  esc: menu"))
	return b.String()
}

// State exposes the latest snapshot (used by tests).
func (m Model) State() game.State { return m.state }
