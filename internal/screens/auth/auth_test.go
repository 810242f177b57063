package auth

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edusticker/internal/auth"
	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/screens/screentest"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newScreen(t *testing.T, env *screentest.Env) *AuthScreen {
	t.Helper()
	s := New(env.Ctrl, func() screen.Screen { return &stubScreen{} })
	s.Init()
	return s
}

func send(s *AuthScreen, msg tea.Msg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

func typeText(s *AuthScreen, text string) {
	screentest.Type(text, func(m tea.Msg) { send(s, m) })
}

func TestSubmit_RequiresCredentials(t *testing.T) {
	s := newScreen(t, screentest.New(t))
	if cmd := send(s, screentest.Key("enter")); cmd != nil {
		t.Fatal("empty form produced a command")
	}
	if !strings.Contains(s.errMsg, "email and password") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestRegisterFlow(t *testing.T) {
	env := screentest.New(t)
	s := newScreen(t, env)

	send(s, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	if s.mode != modeRegister || s.focus != fieldName {
		t.Fatalf("mode=%v focus=%d after ctrl+r", s.mode, s.focus)
	}
	if s.Title() != "Create Account" {
		t.Errorf("Title() = %q", s.Title())
	}

	typeText(s, "Ayu")
	send(s, screentest.Key("tab"))
	typeText(s, "ayu@example.com")
	send(s, screentest.Key("tab"))
	typeText(s, "hunter22")

	cmd := send(s, screentest.Key("enter"))
	if cmd == nil {
		t.Fatal("submit produced no command")
	}
	if !s.busy {
		t.Error("screen not busy while signing in")
	}

	next := send(s, cmd())
	if next == nil {
		t.Fatal("successful sign-in did not navigate")
	}
	if _, ok := next().(router.ResetScreenMsg); !ok {
		t.Errorf("navigation message = %T, want router.ResetScreenMsg", next())
	}

	snap := env.Ctrl.Snapshot()
	if !snap.SignedIn || snap.User.DisplayName != "Ayu" {
		t.Errorf("snapshot = %+v", snap.User)
	}
}

func TestLoginFailure(t *testing.T) {
	env := screentest.SignedIn(t)
	env.Ctrl.Logout()
	s := newScreen(t, env)

	typeText(s, screentest.Email)
	send(s, screentest.Key("tab"))
	typeText(s, "wrong-password")
	cmd := send(s, screentest.Key("enter"))
	if cmd == nil {
		t.Fatal("submit produced no command")
	}

	if next := send(s, cmd()); next != nil {
		t.Error("failed sign-in navigated away")
	}
	if s.errMsg != "Email or password is incorrect." {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if s.busy {
		t.Error("screen still busy")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&game.RegistrationError{Reason: game.ReasonEmailInUse, Err: auth.ErrEmailInUse}, "already exists"},
		{&game.RegistrationError{Reason: game.ReasonWeakPassword}, "at least 6"},
		{&game.RegistrationError{Reason: game.ReasonInvalidEmail}, "doesn't look right"},
		{&game.RegistrationError{Reason: game.ReasonUnavailable}, "unavailable"},
		{fmt.Errorf("%w: %w", game.ErrAuthenticationFailed, auth.ErrInvalidCredentials), "incorrect"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := describe(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("describe(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}
