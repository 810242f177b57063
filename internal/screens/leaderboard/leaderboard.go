// Package leaderboard ranks every collector by unique stickers.
package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/game"
	lb "github.com/abhisek/edusticker/internal/leaderboard"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/ui/components"
	"github.com/abhisek/edusticker/internal/ui/layout"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

const maxRows = 15

type loadedMsg struct {
	Entries []lb.Entry
	Err     error
}

// TierIcon returns the badge shown next to a tier.
func TierIcon(t lb.Tier) string {
	switch t {
	case lb.TierGrandScholar:
		return "👑"
	case lb.TierStickerExpert:
		return "🥈"
	case lb.TierSeasonedCollector:
		return "🥉"
	case lb.TierDedicatedCollector:
		return "⭐"
	default:
		return "📒"
	}
}

// LeaderboardScreen shows the ranking.
type LeaderboardScreen struct {
	ctrl    *game.Controller
	spinner spinner.Model
	loading bool
	entries []lb.Entry
	err     error
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

// New creates the leaderboard screen.
func New(ctrl *game.Controller) *LeaderboardScreen {
	return &LeaderboardScreen{
		ctrl:    ctrl,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

func (s *LeaderboardScreen) Init() tea.Cmd {
	return s.load()
}

func (s *LeaderboardScreen) Title() string { return "Leaderboard" }

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LeaderboardScreen) load() tea.Cmd {
	s.loading = true
	ctrl := s.ctrl
	fetch := func() tea.Msg {
		entries, err := ctrl.Leaderboard(context.Background())
		return loadedMsg{Entries: entries, Err: err}
	}
	return tea.Batch(s.spinner.Tick, fetch)
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		s.entries, s.err = msg.Entries, msg.Err
	case spinner.TickMsg:
		if s.loading {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return s, cmd
		}
	case tea.KeyPressMsg:
		if msg.String() == "r" && !s.loading {
			return s, s.load()
		}
	}
	return s, nil
}

func (s *LeaderboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.loading:
		body = s.spinner.View() + " Loading rankings..."
	case s.err != nil:
		body = lipgloss.NewStyle().Foreground(theme.Error).Render("Couldn't load the leaderboard. Press R to retry.")
	case len(s.entries) == 0:
		body = theme.Hint.Render("No collectors yet. Be the first!")
	default:
		body = s.renderTable(cw, min(maxRows, max(height-8, 3)))
	}

	title := theme.Title.Width(cw).Render("🏆 Top Collectors")
	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, title, "", body), width, height)
}

func (s *LeaderboardScreen) renderTable(cw, rows int) string {
	me := s.ctrl.Snapshot().User.ID
	total := s.ctrl.Catalog().Len()

	nameWidth := max(cw-34, 8)
	var lines []string
	lines = append(lines, theme.Hint.Render(fmt.Sprintf("%-4s %-*s %9s  %s", "#", nameWidth, "Name", "Stickers", "Title")))

	var myRow string
	for i, e := range s.entries {
		line := fmt.Sprintf("%-4d %-*s %4d/%-4d  %s %s",
			e.Rank, nameWidth, truncate(e.Name, nameWidth), e.UniqueStickers, total, TierIcon(e.Tier), e.Tier.Title())

		style := theme.Body
		if e.UserID == me {
			style = theme.Selected
			if i >= rows {
				myRow = style.Render(line)
			}
		}
		if i < rows {
			lines = append(lines, style.Render(line))
		}
	}
	if myRow != "" {
		lines = append(lines, theme.Hint.Render("…"), myRow)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
