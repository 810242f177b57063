package app

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/screens/milestone"
	"github.com/abhisek/edusticker/internal/screens/screentest"
	"github.com/abhisek/edusticker/internal/screens/welcome"
	"github.com/abhisek/edusticker/internal/ui/layout"
)

type escScreen struct {
	handles bool
	got     []string
}

func (s *escScreen) Init() tea.Cmd { return nil }
func (s *escScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		s.got = append(s.got, k.String())
	}
	return s, nil
}
func (s *escScreen) View(int, int) string { return "" }
func (s *escScreen) Title() string        { return "Stub" }
func (s *escScreen) HandlesEscape() bool  { return s.handles }

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func nextEvent(t *testing.T, m AppModel, kind game.EventKind) game.Event {
	t.Helper()
	for {
		select {
		case ev := <-m.events:
			if ev.Kind == kind {
				return ev
			}
		default:
			t.Fatalf("no %v event queued", kind)
		}
	}
}

func TestNew_StartsAtWelcome(t *testing.T) {
	env := screentest.New(t)
	m := New(env.Ctrl)
	defer m.Close()

	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok || m.router.Depth() != 1 {
		t.Errorf("initial screen = %T (depth %d)", m.router.Active(), m.router.Depth())
	}
	if m.status() != (layout.Status{}) {
		t.Errorf("status = %+v, want zero when signed out", m.status())
	}
}

func TestMilestoneEventPushesScreenOnce(t *testing.T) {
	env := screentest.SignedIn(t)
	m := New(env.Ctrl)
	defer m.Close()

	for i := 1; i <= 10; i++ {
		if _, err := env.Ctrl.CollectSticker(fmt.Sprintf("s%d", i)); err != nil {
			t.Fatal(err)
		}
	}
	ev := nextEvent(t, m, game.EventMilestone)

	m, _ = update(t, m, screen.GameEventMsg{Event: ev})
	s, ok := m.router.Active().(*milestone.MilestoneScreen)
	if !ok || s.MilestoneID() != "m1" {
		t.Fatalf("active = %T, want milestone m1", m.router.Active())
	}

	m, _ = update(t, m, screen.GameEventMsg{Event: ev})
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2 (no duplicate push)", m.router.Depth())
	}

	got := m.status()
	if got.Stickers != 10 || got.Total != 100 || got.Coins != 100 {
		t.Errorf("status = %+v", got)
	}
}

func TestSaveFailureNotice(t *testing.T) {
	env := screentest.SignedIn(t)
	m := New(env.Ctrl)
	defer m.Close()

	m, _ = update(t, m, screen.GameEventMsg{Event: game.Event{Kind: game.EventSaveFailed, Err: errors.New("disk full")}})
	if m.footerNotice() != noticeSaveFailed {
		t.Errorf("notice = %q", m.footerNotice())
	}

	m, _ = update(t, m, screen.GameEventMsg{Event: game.Event{Kind: game.EventSession}})
	if m.footerNotice() != "" {
		t.Errorf("notice = %q after session change", m.footerNotice())
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name      string
		handles   bool
		wantPop   bool
		forwarded bool
	}{
		{"app pops", false, true, false},
		{"screen handles", true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := screentest.New(t)
			m := New(env.Ctrl)
			defer m.Close()

			stub := &escScreen{handles: tt.handles}
			m.router.Push(stub)

			_, cmd := update(t, m, screentest.Key("esc"))
			popped := false
			if cmd != nil {
				_, popped = cmd().(router.PopScreenMsg)
			}
			if popped != tt.wantPop {
				t.Errorf("popped = %v, want %v", popped, tt.wantPop)
			}
			if forwarded := len(stub.got) == 1; forwarded != tt.forwarded {
				t.Errorf("forwarded = %v, want %v", forwarded, tt.forwarded)
			}
		})
	}
}

func TestEscapeAtRoot(t *testing.T) {
	env := screentest.New(t)
	m := New(env.Ctrl)
	defer m.Close()

	if _, cmd := update(t, m, screentest.Key("esc")); cmd != nil {
		t.Error("esc at the root produced a command")
	}
}

func TestBell(t *testing.T) {
	tests := []struct {
		sound game.Sound
		want  int
	}{
		{game.SoundRewardFanfare, 2},
		{game.SoundStickerReveal, 1},
		{game.SoundCorrectAnswer, 1},
		{game.SoundIncorrectAnswer, 1},
		{game.SoundGachaSpin, 0},
		{game.SoundClick, 0},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		NewBell(&buf).Play(tt.sound)
		if got := bytes.Count(buf.Bytes(), []byte{'\a'}); got != tt.want || buf.Len() != tt.want {
			t.Errorf("Play(%s) wrote %q, want %d bells", tt.sound, buf.String(), tt.want)
		}
	}
}
