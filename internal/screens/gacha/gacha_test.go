package gacha

import (
	"strings"
	"testing"

	"github.com/abhisek/edusticker/internal/minigame"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screens/screentest"
)

func cellsWhere(g *minigame.Gate, star bool) []int {
	var out []int
	for i, c := range g.Cells() {
		if c.Star == star {
			out = append(out, i)
		}
	}
	return out
}

func TestPull_NotEnoughCoins(t *testing.T) {
	env := screentest.SignedIn(t)
	if !env.Ctrl.SpendCoins(90) {
		t.Fatal("SpendCoins(90) failed")
	}

	s := New(env.Ctrl)
	s.Update(screentest.Key("enter"))

	if s.phase != phaseReady {
		t.Errorf("phase = %v, want ready", s.phase)
	}
	if !strings.Contains(s.errMsg, "25 coins") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if got := env.Ctrl.Snapshot().Coins; got != 10 {
		t.Errorf("coins = %d, want 10", got)
	}
}

func TestPull_Win(t *testing.T) {
	env := screentest.SignedIn(t)
	s := New(env.Ctrl)
	s.Update(screentest.Key("enter"))
	if s.phase != phasePlaying {
		t.Fatalf("phase = %v, want playing (err=%q)", s.phase, s.errMsg)
	}
	if got := env.Ctrl.Snapshot().Coins; got != 75 {
		t.Errorf("coins = %d, want 75", got)
	}

	for _, i := range cellsWhere(s.gate, true) {
		s.flip(i)
	}

	if s.phase != phaseRevealed || s.result == nil {
		t.Fatalf("phase = %v result = %v", s.phase, s.result)
	}
	if s.result.Duplicate {
		t.Error("first sticker reported as duplicate")
	}
	if n := len(env.Ctrl.Snapshot().CollectedStickerIDs); n != 1 {
		t.Errorf("collected = %d, want 1", n)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "NEW!") || !strings.Contains(view, s.result.Sticker.Name) {
		t.Error("reveal view missing sticker or NEW tag")
	}

	s.Update(screentest.Key("enter"))
	if s.phase != phasePlaying || s.result != nil {
		t.Errorf("pull again: phase = %v result = %v", s.phase, s.result)
	}
}

func TestPull_Lose(t *testing.T) {
	env := screentest.SignedIn(t)
	s := New(env.Ctrl)
	s.Update(screentest.Key("enter"))

	s.flip(cellsWhere(s.gate, false)[0])

	if s.phase != phaseLost {
		t.Fatalf("phase = %v, want lost", s.phase)
	}
	if env.Ctrl.PendingPull() != nil {
		t.Error("pull still pending after loss")
	}
	if got := env.Ctrl.Snapshot().Coins; got != 75 {
		t.Errorf("coins = %d, want 75 (no refund)", got)
	}
	if !strings.Contains(s.View(100, 40), "skull") {
		t.Error("lost view missing")
	}
}

func TestEscapeAbandonsPull(t *testing.T) {
	env := screentest.SignedIn(t)
	s := New(env.Ctrl)
	s.Update(screentest.Key("enter"))

	_, cmd := s.Update(screentest.Key("esc"))
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("cmd() = %T, want router.PopScreenMsg", cmd())
	}
	if env.Ctrl.PendingPull() != nil {
		t.Error("pull not abandoned")
	}
}

func TestResumesPendingPull(t *testing.T) {
	env := screentest.SignedIn(t)
	gate, err := env.Ctrl.BeginPull()
	if err != nil {
		t.Fatal(err)
	}

	s := New(env.Ctrl)
	if s.phase != phasePlaying || s.gate != gate {
		t.Errorf("phase = %v, resumed gate = %v", s.phase, s.gate == gate)
	}
}

func TestBoardCursor(t *testing.T) {
	env := screentest.SignedIn(t)
	s := New(env.Ctrl)
	s.Update(screentest.Key("enter"))

	steps := []struct {
		key  string
		want int
	}{
		{"right", 1},
		{"right", 2},
		{"right", 2},
		{"down", 5},
		{"down", 5},
		{"left", 4},
		{"up", 1},
		{"left", 0},
		{"left", 0},
		{"up", 0},
	}
	for _, st := range steps {
		s.Update(screentest.Key(st.key))
		if s.cursor != st.want {
			t.Fatalf("after %s: cursor = %d, want %d", st.key, s.cursor, st.want)
		}
	}
}
