// Package profile shows the player's account and lets them rename
// themselves.
package profile

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/ui/components"
	"github.com/abhisek/edusticker/internal/ui/layout"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

type renamedMsg struct {
	Err error
}

// ProfileScreen shows account details and progress.
type ProfileScreen struct {
	ctrl    *game.Controller
	editing bool
	saving  bool
	input   components.TextInput
	notice  string
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.EscapeHandler = (*ProfileScreen)(nil)

// New creates the profile screen.
func New(ctrl *game.Controller) *ProfileScreen {
	return &ProfileScreen{
		ctrl:  ctrl,
		input: components.NewTextInput("Display name", "Your name", 32),
	}
}

func (s *ProfileScreen) Init() tea.Cmd { return nil }

func (s *ProfileScreen) Title() string { return "Profile" }

// HandlesEscape reports whether Esc cancels an edit instead of leaving.
func (s *ProfileScreen) HandlesEscape() bool { return s.editing }

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{{Key: "Enter", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{{Key: "E", Description: "Edit name"}, {Key: "Esc", Description: "Back"}}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case renamedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = describe(msg.Err)
			return s, nil
		}
		s.editing = false
		s.input.Blur()
		s.notice = "Name saved!"
		return s, nil

	case tea.KeyPressMsg:
		if s.saving {
			return s, nil
		}
		if !s.editing {
			if msg.String() == "e" {
				s.editing = true
				s.errMsg, s.notice = "", ""
				s.input.SetValue(s.ctrl.Snapshot().User.DisplayName)
				return s, s.input.Focus()
			}
			return s, nil
		}
		switch msg.String() {
		case "esc":
			s.editing = false
			s.errMsg = ""
			s.input.Blur()
			return s, nil
		case "enter":
			return s, s.save()
		}
	}

	if !s.editing {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ProfileScreen) save() tea.Cmd {
	s.saving = true
	s.errMsg = ""
	ctrl, name := s.ctrl, s.input.Value()
	return func() tea.Msg {
		return renamedMsg{Err: ctrl.UpdateDisplayName(context.Background(), name)}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidName):
		return "Your name can't be empty."
	case errors.Is(err, game.ErrUpdateInProgress):
		return "Still saving your last change. Try again in a moment."
	default:
		return "Couldn't save your name. Try again later."
	}
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	snap := s.ctrl.Snapshot()
	total := s.ctrl.Catalog().Len()
	milestones := s.ctrl.Milestones()

	achieved := 0
	for _, m := range milestones {
		if m.Achieved {
			achieved++
		}
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
	row := func(k, v string) string {
		return label.Render(k) + theme.Body.Render(v)
	}

	sections := []string{theme.Title.Width(cw - 6).Render("My Profile"), ""}
	if s.editing {
		sections = append(sections, s.input.View())
	} else {
		sections = append(sections, row("Name", snap.User.DisplayName))
	}
	sections = append(sections,
		row("Email", snap.User.Email),
		row("Coins", fmt.Sprintf("%d", snap.Coins)),
		"",
		components.ProgressBar{Label: "Stickers", Value: len(snap.CollectedStickerIDs), Max: total, Width: cw - 8}.View(),
		components.ProgressBar{Label: "Rewards ", Value: achieved, Max: len(milestones), Width: cw - 8}.View(),
	)

	switch {
	case s.saving:
		sections = append(sections, "", theme.Hint.Render("Saving..."))
	case s.errMsg != "":
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	case s.notice != "":
		sections = append(sections, "", theme.Correct.Render(s.notice))
	}
	if snap.Degraded {
		sections = append(sections, "", theme.Warning.Render("Offline: progress is not being saved"))
	}

	card := components.ArcadeCard(lipgloss.JoinVertical(lipgloss.Left, sections...), cw)
	return layout.Center(card, width, height)
}
