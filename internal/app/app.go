// Package app is the root Bubble Tea model: it owns the screen stack and
// bridges controller events into the program loop.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/screens/auth"
	"github.com/abhisek/edusticker/internal/screens/home"
	"github.com/abhisek/edusticker/internal/screens/milestone"
	"github.com/abhisek/edusticker/internal/screens/welcome"
	"github.com/abhisek/edusticker/internal/ui/layout"
)

// eventBuffer bounds how many controller events may queue between renders.
// Events beyond it are dropped; every screen re-reads the snapshot on
// render, so only milestone and save-failure notices can be lost.
const eventBuffer = 64

const (
	noticeOffline    = "Offline: progress is not being saved"
	noticeSaveFailed = "Couldn't save progress. We'll retry on your next change."
)

// navigator builds the screens that need to refer to each other.
type navigator struct {
	ctrl *game.Controller
}

func (n navigator) home() screen.Screen   { return home.New(n.ctrl, n.signIn) }
func (n navigator) signIn() screen.Screen { return auth.New(n.ctrl, n.home) }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl   *game.Controller
	router *router.Router
	events chan game.Event
	unsub  func()
	notice string
	width  int
	height int
}

// New creates the app, starting at the welcome screen.
func New(ctrl *game.Controller) AppModel {
	nav := navigator{ctrl: ctrl}
	next := nav.signIn
	if ctrl.Snapshot().SignedIn {
		next = nav.home
	}

	events := make(chan game.Event, eventBuffer)
	unsub := ctrl.Subscribe(func(ev game.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	return AppModel{
		ctrl:   ctrl,
		router: router.New(welcome.New(next)),
		events: events,
		unsub:  unsub,
	}
}

// Close stops listening to the controller.
func (m AppModel) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m AppModel) listen() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return screen.GameEventMsg{Event: <-events}
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.listen())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.GameEventMsg:
		cmds := []tea.Cmd{m.listen(), m.router.Update(msg)}
		switch msg.Event.Kind {
		case game.EventSaveFailed:
			m.notice = noticeSaveFailed
		case game.EventSession:
			m.notice = ""
		case game.EventMilestone:
			if ms := msg.Event.Milestone; ms != nil && !m.showingMilestone(ms.ID) {
				cmds = append(cmds, m.router.Push(milestone.New(m.ctrl, *ms)))
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) showingMilestone(id string) bool {
	s, ok := m.router.Active().(*milestone.MilestoneScreen)
	return ok && s.MilestoneID() == id
}

func (m AppModel) status() layout.Status {
	snap := m.ctrl.Snapshot()
	if !snap.Loaded {
		return layout.Status{}
	}
	return layout.Status{
		Coins:    snap.Coins,
		Stickers: len(snap.CollectedStickerIDs),
		Total:    m.ctrl.Catalog().Len(),
	}
}

func (m AppModel) footerNotice() string {
	if m.ctrl.Snapshot().Degraded {
		return noticeOffline
	}
	return m.notice
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.footerNotice(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctrl *game.Controller) error {
	m := New(ctrl)
	defer m.Close()

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
