package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	taglineAt    = 1200 * time.Millisecond
)

const stickerArt = `╭─────────╮
│  ★   ★  │
│    ◡    │
│ ◆  ●  ▲ │
╰─────────╯`

var sparkleFrames = []string{"★", "✦", "✧"}

type tickMsg time.Time

// WelcomeScreen shows a short splash and then hands over to the screen
// produced by next. Any key skips ahead.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.ticks++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(stickerArt)
	if w.ticks > 0 {
		sparkle := sparkleFrames[w.ticks%len(sparkleFrames)]
		left := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		right := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)
		lines := strings.Split(art, "\n")
		for i := range lines {
			if i%2 == 0 {
				lines[i] = left + "  " + lines[i] + "  " + right
			} else {
				lines[i] = "   " + lines[i] + "   "
			}
		}
		art = strings.Join(lines, "\n")
	}

	sections := []string{art}
	if w.elapsed >= bannerAt {
		sections = append(sections, "", RenderBanner(width))
	}
	if w.elapsed >= taglineAt {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Answer questions. Earn coins. Collect them all!"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
