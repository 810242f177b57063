// Package home is the main menu shown once a player is signed in.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/screens/book"
	"github.com/abhisek/edusticker/internal/screens/gacha"
	"github.com/abhisek/edusticker/internal/screens/leaderboard"
	"github.com/abhisek/edusticker/internal/screens/milestone"
	"github.com/abhisek/edusticker/internal/screens/profile"
	"github.com/abhisek/edusticker/internal/screens/trivia"
	"github.com/abhisek/edusticker/internal/ui/components"
	"github.com/abhisek/edusticker/internal/ui/layout"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

const logoutFlushTimeout = 5 * time.Second

const logoutSaveFailed = "Couldn't save your progress, so you're still signed in. Try logging out again."

type loggedOutMsg struct{}

// logoutFailedMsg keeps the player signed in when the final save fails.
type logoutFailedMsg struct {
	Err error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	ctrl      *game.Controller
	signedOut func() screen.Screen
	menu      components.Menu
	now       func() time.Time
	errMsg    string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. signedOut builds the screen shown after the
// player logs out.
func New(ctrl *game.Controller, signedOut func() screen.Screen) *HomeScreen {
	h := &HomeScreen{ctrl: ctrl, signedOut: signedOut, now: time.Now}
	cost := ctrl.Config().GachaCost

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PLAY TRIVIA", Action: func() tea.Cmd { return router.Push(trivia.New(ctrl)) }},
		{Label: fmt.Sprintf("PULL STICKER (%d)", cost), Action: func() tea.Cmd { return router.Push(gacha.New(ctrl)) }},
		{Label: "STICKER BOOK", Action: func() tea.Cmd { return router.Push(book.New(ctrl)) }},
		{Label: "LEADERBOARD", Action: func() tea.Cmd { return router.Push(leaderboard.New(ctrl)) }},
		{Label: "PROFILE", Action: func() tea.Cmd { return router.Push(profile.New(ctrl)) }},
		{Label: "LOG OUT", Action: h.logout},
		{Label: "EXIT GAME", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) logout() tea.Cmd {
	ctrl := h.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), logoutFlushTimeout)
		defer cancel()
		if err := ctrl.Flush(ctx); err != nil {
			log.Error().Err(err).Msg("final profile save before logout failed")
			return logoutFailedMsg{Err: err}
		}
		ctrl.Logout()
		return loggedOutMsg{}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
	}
	if h.ctrl.Snapshot().PendingMilestone != nil {
		hints = append(hints, layout.KeyHint{Key: "M", Description: "Claim reward"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedOutMsg:
		return h, router.Reset(h.signedOut())
	case logoutFailedMsg:
		h.errMsg = logoutSaveFailed
		return h, nil
	case tea.KeyPressMsg:
		h.errMsg = ""
		if msg.String() == "m" {
			if snap := h.ctrl.Snapshot(); snap.PendingMilestone != nil {
				return h, router.Push(milestone.New(h.ctrl, *snap.PendingMilestone))
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	snap := h.ctrl.Snapshot()
	cooldown := h.now().Before(snap.Trivia.CooldownEnd)
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	greeting := "Hi, " + snap.User.DisplayName + "!"
	sections = append(sections, theme.Title.Width(cw).Render(greeting))

	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(RenderMascot(mascotFor(snap, cooldown))))
	}

	sections = append(sections, h.renderStats(snap, cw))

	if snap.PendingMilestone != nil {
		sections = append(sections, theme.Warning.Width(cw).Align(lipgloss.Center).
			Render("★ A reward is waiting! Press M to claim it."))
	}
	if cooldown {
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).
			Render("Trivia is resting until midnight."))
	}

	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Align(lipgloss.Center).
			Render(h.errMsg))
	}

	sections = append(sections, components.ArcadeMenu(h.menu, cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStats(snap game.Snapshot, cw int) string {
	total := h.ctrl.Catalog().Len()
	coins := lipgloss.NewStyle().Foreground(theme.Coin).Bold(true).
		Render(fmt.Sprintf("● %d coins", snap.Coins))
	stickers := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).
		Render(fmt.Sprintf("✦ %d/%d stickers", len(snap.CollectedStickerIDs), total))
	milestones := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("♛ %d rewards", len(snap.AchievedMilestoneIDs)))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw).
		Align(lipgloss.Center).
		Render(coins + "   " + stickers + "   " + milestones)
}
