// Package milestone celebrates a reached collection milestone.
package milestone

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/ui/components"
	"github.com/abhisek/edusticker/internal/ui/layout"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

const trophy = `   ___________
  '._==_==_=_.'
  .-\:      /-.
 | (|:.     |) |
  '-|:.     |-'
    \::.    /
     '::. .'
       ) (
     _.' '._
    '-------'`

// MilestoneScreen shows one milestone until the player acknowledges it.
type MilestoneScreen struct {
	ctrl      *game.Controller
	milestone catalog.Milestone
	errMsg    string
}

var _ screen.Screen = (*MilestoneScreen)(nil)
var _ screen.KeyHintProvider = (*MilestoneScreen)(nil)

// New creates the screen for m.
func New(ctrl *game.Controller, m catalog.Milestone) *MilestoneScreen {
	return &MilestoneScreen{ctrl: ctrl, milestone: m}
}

// MilestoneID returns the id of the milestone being shown.
func (s *MilestoneScreen) MilestoneID() string {
	return s.milestone.ID
}

func (s *MilestoneScreen) Init() tea.Cmd { return nil }

func (s *MilestoneScreen) Title() string { return "Reward!" }

func (s *MilestoneScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Claim"},
		{Key: "Esc", Description: "Later"},
	}
}

func (s *MilestoneScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || kmsg.String() != "enter" {
		return s, nil
	}
	if err := s.ctrl.AcknowledgeMilestone(s.milestone.ID); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, router.Pop()
}

func (s *MilestoneScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(trophy),
		"",
		theme.Title.Width(cw - 6).Render(fmt.Sprintf("%d STICKERS!", s.milestone.Threshold)),
		"",
		theme.Body.Width(cw - 6).Align(lipgloss.Center).Render(s.milestone.Message),
	}
	if s.errMsg != "" {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	} else {
		sections = append(sections, "", theme.Hint.Render("Press Enter to claim your reward"))
	}

	card := components.ArcadeCard(lipgloss.JoinVertical(lipgloss.Center, sections...), cw)
	return layout.Center(card, width, height)
}
