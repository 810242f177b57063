package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector. Scoring happens elsewhere: the
// owner calls Reveal with the correct index once the answer is judged.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int

	Chosen   int // -1 until an option is picked
	Correct  int // -1 until revealed
	revealed bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
		Correct:  -1,
	}
}

// Update handles navigation. Enter or a letter key picks an option; the
// pick is reported through Chosen.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Chosen >= 0 {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
	default:
		for i, l := range choiceLabels[:min(len(m.Options), len(choiceLabels))] {
			if strings.EqualFold(key, l) || key == fmt.Sprint(i+1) {
				m.Selected = i
				m.Chosen = i
			}
		}
	}
	return m, nil
}

// Reveal marks the correct option.
func (m *MultiChoice) Reveal(correct int) {
	m.Correct = correct
	m.revealed = true
}

// View renders the question and options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := choiceLabels[i%len(choiceLabels)]
		prefix := "  "
		if i == m.Selected && m.Chosen < 0 {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.Correct:
			style = theme.Correct
		case m.revealed && i == m.Chosen:
			style = theme.Incorrect
		case m.revealed || m.Chosen >= 0:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
