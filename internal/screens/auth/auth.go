// Package auth is the sign-in and registration screen.
package auth

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/ui/components"
	"github.com/abhisek/edusticker/internal/ui/layout"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

type authDoneMsg struct {
	Err error
}

// AuthScreen collects credentials and signs the player in.
type AuthScreen struct {
	ctrl   *game.Controller
	home   func() screen.Screen
	mode   mode
	inputs [3]components.TextInput
	focus  int
	busy   bool
	errMsg string
}

var _ screen.Screen = (*AuthScreen)(nil)
var _ screen.KeyHintProvider = (*AuthScreen)(nil)

// New creates the screen. home builds the screen shown after sign-in.
func New(ctrl *game.Controller, home func() screen.Screen) *AuthScreen {
	s := &AuthScreen{
		ctrl: ctrl,
		home: home,
		inputs: [3]components.TextInput{
			components.NewTextInput("Display name", "What should we call you?", 32),
			components.NewTextInput("Email", "you@example.com", 128),
			components.NewPasswordInput("Password"),
		},
		focus: fieldEmail,
	}
	return s
}

func (s *AuthScreen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *AuthScreen) Title() string {
	if s.mode == modeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (s *AuthScreen) KeyHints() []layout.KeyHint {
	other := "Create account"
	if s.mode == modeRegister {
		other = "Have an account"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: other},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *AuthScreen) fields() []int {
	if s.mode == modeRegister {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (s *AuthScreen) moveFocus(delta int) tea.Cmd {
	fields := s.fields()
	pos := 0
	for i, f := range fields {
		if f == s.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)

	s.inputs[s.focus].Blur()
	s.focus = fields[pos]
	return s.inputs[s.focus].Focus()
}

func (s *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		s.busy = false
		if msg.Err != nil && !errors.Is(msg.Err, game.ErrProfileLoadDegraded) {
			s.errMsg = describe(msg.Err)
			return s, nil
		}
		return s, router.Reset(s.home())

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "ctrl+r":
			if s.mode == modeLogin {
				s.mode = modeRegister
			} else {
				s.mode = modeLogin
			}
			s.errMsg = ""
			s.inputs[s.focus].Blur()
			s.focus = s.fields()[0]
			return s, s.inputs[s.focus].Focus()
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *AuthScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.inputs[fieldEmail].Value())
	password := s.inputs[fieldPassword].Value()
	name := strings.TrimSpace(s.inputs[fieldName].Value())

	switch {
	case email == "" || password == "":
		s.errMsg = "Please enter your email and password."
		return nil
	case s.mode == modeRegister && name == "":
		s.errMsg = "Please choose a display name."
		return nil
	}

	s.busy = true
	s.errMsg = ""
	ctrl, register := s.ctrl, s.mode == modeRegister
	return func() tea.Msg {
		ctx := context.Background()
		if register {
			return authDoneMsg{Err: ctrl.Register(ctx, email, password, name)}
		}
		return authDoneMsg{Err: ctrl.Login(ctx, email, password)}
	}
}

// describe turns a sign-in failure into a message for the player.
func describe(err error) string {
	var regErr *game.RegistrationError
	if errors.As(err, &regErr) {
		switch regErr.Reason {
		case game.ReasonInvalidEmail:
			return "That email address doesn't look right."
		case game.ReasonWeakPassword:
			return "Password must be at least 6 characters."
		case game.ReasonEmailInUse:
			return "An account with that email already exists."
		case game.ReasonInvalidName:
			return "Please choose a display name."
		default:
			return "Registration is unavailable right now. Try again later."
		}
	}
	if errors.Is(err, game.ErrAuthenticationFailed) {
		return "Email or password is incorrect."
	}
	return "Something went wrong: " + err.Error()
}

func (s *AuthScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	heading := "Welcome back!"
	if s.mode == modeRegister {
		heading = "Join the sticker hunt!"
	}
	sections = append(sections, theme.Title.Width(cw).Render(heading), "")

	for _, f := range s.fields() {
		sections = append(sections, s.inputs[f].View(), "")
	}

	switch {
	case s.busy:
		sections = append(sections, theme.Hint.Render("Signing in..."))
	case s.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw-6).Render(s.errMsg))
	default:
		sections = append(sections, theme.Hint.Render("Press Enter to continue"))
	}

	card := components.ArcadeCard(lipgloss.JoinVertical(lipgloss.Left, sections...), cw)
	return layout.Center(card, width, height)
}
