package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/ui/theme"
)

// ProgressBar shows Value out of Max as a horizontal bar followed by the
// count.
type ProgressBar struct {
	Label string
	Value int
	Max   int
	Width int
}

// Fraction returns Value/Max clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	f := float64(p.Value) / float64(p.Max)
	return min(max(f, 0), 1)
}

// View renders the bar.
func (p ProgressBar) View() string {
	var prefix string
	if p.Label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	suffix := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d", p.Value, p.Max))

	barWidth := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	filled := int(float64(barWidth) * p.Fraction())

	return prefix +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		suffix
}
