package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a one-keystroke yes/no prompt.
type confirmModel struct {
	question string
	answered bool
	yes      bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.answered = true
			m.yes = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "ctrl+c":
			m.answered = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	return fmt.Sprintf("%s %s ",
		WarnStyle.Render(m.question),
		MutedStyle.Render("[y/N]"))
}

// Confirm asks a destructive-action question on the terminal and reports
// the operator's answer. Anything but an explicit "y" declines.
func Confirm(question string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question}).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(confirmModel)
	return ok && m.yes, nil
}
