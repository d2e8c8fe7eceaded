// Package tui hosts the game controller in a Bubble Tea program.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/numguess/internal/session"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD75F"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model renders the controller's output into a scrollable viewport with a prompt line.
type Model struct {
	ctx        context.Context
	controller *session.Controller
	screen     *bytes.Buffer

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	width  int
	height int

	last string
}

// NewModel starts the controller. screen must be the buffer its renderer writes to.
func NewModel(ctx context.Context, controller *session.Controller, screen *bytes.Buffer) *Model {
	input := textinput.New()
	input.Focus()
	input.CharLimit = 32
	input.PromptStyle = promptStyle

	m := &Model{
		ctx:        ctx,
		controller: controller,
		screen:     screen,
		input:      input,
		viewport:   viewport.New(80, 20),
	}
	mark := screen.Len()
	controller.Start()
	m.last = screen.String()[mark:]
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-2)
		m.input.Width = max(1, msg.Width-len(m.input.Prompt)-1)
		m.ready = true
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.capture(m.controller.Interrupt)
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.viewport.View() + "\n" + m.input.View() + "\n" + m.renderFooter()
}

// LastOutput returns what the controller printed while handling the final input.
func (m *Model) LastOutput() string {
	return m.last
}

func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	m.screen.WriteString(echoStyle.Render(m.controller.Prompt()+line) + "\n")
	m.capture(func() {
		m.controller.Handle(m.ctx, line)
	})
	if m.controller.Done() {
		return tea.Quit
	}
	return nil
}

func (m *Model) capture(fn func()) {
	mark := m.screen.Len()
	fn()
	m.last = m.screen.String()[mark:]
	m.refresh()
}

func (m *Model) refresh() {
	m.input.Prompt = m.controller.Prompt()
	content := m.screen.String()
	if m.width > 0 {
		content = lipgloss.NewStyle().Width(m.width).Render(content)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(footerText(m.controller.Snapshot()))
}

func footerText(s session.Snapshot) string {
	segments := make([]string, 0, 4)
	if s.InGame {
		segments = append(segments,
			strings.ToUpper(string(s.Difficulty)),
			fmt.Sprintf("Attempts %d/%d", s.AttemptsUsed, s.MaxAttempts))
		if s.HintsUsed > 0 {
			segments = append(segments, fmt.Sprintf("Hints %d", s.HintsUsed))
		}
	}
	segments = append(segments, fmt.Sprintf("Streak %d · Won %d/%d", s.Streak, s.GamesWon, s.TotalGames))
	return strings.Join(segments, " · ") + "  PgUp/PgDn scroll · Ctrl+C quit"
}
