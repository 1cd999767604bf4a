package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// doneMsg carries the result of the background work.
type doneMsg struct {
	result string
	err    error
}

// spinModel shows a spinner with a label while fn runs, then quits.
type spinModel struct {
	spin  spinner.Model
	label string
	fn    func() (string, error)
	out   doneMsg
	done  bool
}

func (m spinModel) Init() tea.Cmd {
	run := func() tea.Msg {
		result, err := m.fn()
		return doneMsg{result: result, err: err}
	}
	return tea.Batch(m.spin.Tick, run)
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.out = msg
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m spinModel) View() string {
	if m.done {
		return ""
	}
	return m.spin.View() + " " + MutedStyle.Render(m.label)
}

// Spin runs fn while showing an animated spinner, for interactive
// terminals where a long directory probe would otherwise look hung.
func Spin(label string, fn func() (string, error)) (string, error) {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	final, err := tea.NewProgram(spinModel{spin: sp, label: label, fn: fn}).Run()
	if err != nil {
		return "", err
	}
	m := final.(spinModel)
	return m.out.result, m.out.err
}
