package book

import (
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/screens/screentest"
)

func TestView_ShowsCollection(t *testing.T) {
	env := screentest.SignedIn(t)
	for _, id := range []string{"s1", "s61"} {
		if _, err := env.Ctrl.CollectSticker(id); err != nil {
			t.Fatal(err)
		}
	}

	b := New(env.Ctrl)
	view := b.View(120, 60)
	for _, want := range []string{"Busy Bee", hiddenLabel, "2/100", "COMMON 1/60"} {
		if !strings.Contains(view, want) {
			t.Errorf("common tab missing %q", want)
		}
	}
	if strings.Contains(view, "Orangutan") {
		t.Error("rare sticker shown on the common tab")
	}

	b.Update(screentest.Key("right"))
	if !strings.Contains(b.View(120, 60), "Orangutan") {
		t.Error("rare tab missing collected sticker")
	}
}

func TestTabsWrap(t *testing.T) {
	env := screentest.SignedIn(t)
	b := New(env.Ctrl)

	b.Update(screentest.Key("left"))
	if tabs[b.tab] != catalog.RarityEpic {
		t.Errorf("left from first tab = %v, want epic", tabs[b.tab])
	}
	b.Update(screentest.Key("right"))
	if tabs[b.tab] != catalog.RarityCommon {
		t.Errorf("right from last tab = %v, want common", tabs[b.tab])
	}
}

func TestScrollIsClamped(t *testing.T) {
	env := screentest.SignedIn(t)
	b := New(env.Ctrl)

	for i := 0; i < 100; i++ {
		b.Update(screentest.Key("down"))
	}
	b.View(100, 30)
	if b.scroll == 0 || b.scroll >= 100 {
		t.Errorf("scroll = %d, want clamped to the last page", b.scroll)
	}

	b.Update(screentest.Key("right"))
	if b.scroll != 0 {
		t.Errorf("scroll = %d after switching tab, want 0", b.scroll)
	}
}

func TestStickersFor(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		rarity      catalog.Rarity
		count       int
		first, last string
	}{
		{catalog.RarityCommon, 60, "s1", "s60"},
		{catalog.RarityRare, 30, "s61", "s90"},
		{catalog.RarityEpic, 10, "s91", "s100"},
	}
	for _, tt := range tests {
		got := stickersFor(cat, tt.rarity)
		if len(got) != tt.count || got[0].ID != tt.first || got[len(got)-1].ID != tt.last {
			t.Errorf("stickersFor(%s): %d stickers %s..%s", tt.rarity, len(got), got[0].ID, got[len(got)-1].ID)
		}
	}
}

func TestRenderMilestones(t *testing.T) {
	ms := []game.MilestoneStatus{
		{Milestone: catalog.Milestone{ID: "m1", Threshold: 10}, Achieved: true},
		{Milestone: catalog.Milestone{ID: "m2", Threshold: 25}},
		{Milestone: catalog.Milestone{ID: "m3", Threshold: 50}},
	}
	out := renderMilestones(ms, 30)
	for _, want := range []string{
		fmt.Sprintf("✓ %3d", 10),
		fmt.Sprintf("★ %3d", 25),
		fmt.Sprintf("○ %3d", 50),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderMilestones missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Koi", 13, "Koi"},
		{"Proboscis Monkey", 13, "Proboscis Mo…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
