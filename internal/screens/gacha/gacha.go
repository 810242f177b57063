// Package gacha is the sticker pull screen: pay, win the star gate, then
// reveal the sticker.
package gacha

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/minigame"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/ui/components"
	"github.com/abhisek/edusticker/internal/ui/layout"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

const gridCols = 3

type phase int

const (
	phaseReady phase = iota
	phasePlaying
	phaseLost
	phaseRevealed
)

// GachaScreen walks the player through one pull at a time.
type GachaScreen struct {
	ctrl   *game.Controller
	phase  phase
	gate   *minigame.Gate
	cursor int
	result *game.PullResult
	errMsg string
}

var _ screen.Screen = (*GachaScreen)(nil)
var _ screen.KeyHintProvider = (*GachaScreen)(nil)
var _ screen.EscapeHandler = (*GachaScreen)(nil)

// New creates the screen, resuming a pull already in progress.
func New(ctrl *game.Controller) *GachaScreen {
	s := &GachaScreen{ctrl: ctrl}
	if g := ctrl.PendingPull(); g != nil {
		s.gate = g
		s.phase = phasePlaying
	}
	return s
}

func (s *GachaScreen) Init() tea.Cmd { return nil }

func (s *GachaScreen) Title() string { return "Sticker Pull" }

// HandlesEscape reports true: leaving forfeits a pull in progress.
func (s *GachaScreen) HandlesEscape() bool { return true }

func (s *GachaScreen) KeyHints() []layout.KeyHint {
	if s.phase == phasePlaying {
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Enter", Description: "Flip"},
			{Key: "Esc", Description: "Give up"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Pull"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GachaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	if key == "esc" {
		s.ctrl.AbandonPull()
		s.ctrl.ClearLastPulled()
		return s, router.Pop()
	}

	switch s.phase {
	case phasePlaying:
		s.handleBoardKey(key)
	default:
		if key == "enter" || key == "space" {
			s.pull()
		}
	}
	return s, nil
}

func (s *GachaScreen) pull() {
	s.ctrl.ClearLastPulled()
	s.result = nil
	gate, err := s.ctrl.BeginPull()
	if err != nil {
		if errors.Is(err, game.ErrInsufficientCoins) {
			s.errMsg = fmt.Sprintf("You need %d coins to pull. Play trivia to earn more!", s.ctrl.Config().GachaCost)
		} else {
			s.errMsg = err.Error()
		}
		return
	}
	s.errMsg = ""
	s.gate = gate
	s.cursor = 0
	s.phase = phasePlaying
}

func (s *GachaScreen) handleBoardKey(key string) {
	switch key {
	case "left", "h":
		if s.cursor%gridCols > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor%gridCols < gridCols-1 {
			s.cursor++
		}
	case "up", "k":
		if s.cursor >= gridCols {
			s.cursor -= gridCols
		}
	case "down", "j":
		if s.cursor+gridCols < minigame.CellCount {
			s.cursor += gridCols
		}
	case "enter", "space":
		s.flip(s.cursor)
	}
}

func (s *GachaScreen) flip(index int) {
	state, err := s.ctrl.RevealCell(index)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	if state == minigame.Playing {
		return
	}

	res, err := s.ctrl.ClaimPull()
	switch {
	case err != nil:
		s.errMsg = err.Error()
		s.phase = phaseReady
	case res == nil:
		s.phase = phaseLost
	default:
		s.result = res
		s.phase = phaseRevealed
	}
}

func (s *GachaScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	cost := s.ctrl.Config().GachaCost
	coins := s.ctrl.Snapshot().Coins

	var sections []string
	switch s.phase {
	case phaseReady:
		sections = append(sections,
			theme.Title.Width(cw-6).Render("Sticker Machine"),
			"",
			theme.Body.Render(fmt.Sprintf("Each pull costs %d coins. You have %d.", cost, coins)),
			theme.Hint.Render("Find all 5 stars to win a sticker. Watch out for the skull!"),
			"",
			components.ArcadeButton("PULL!", coins >= cost, coins < cost),
		)
	case phasePlaying:
		sections = append(sections,
			theme.Title.Width(cw-6).Render(fmt.Sprintf("Find the stars! %d/%d", s.gate.Found(), minigame.WinCells)),
			"",
			renderBoard(s.gate, s.cursor, true),
		)
	case phaseLost:
		sections = append(sections,
			theme.Incorrect.Render("Oh no, the skull!"),
			"",
			renderBoard(s.gate, -1, false),
			"",
			theme.Hint.Render("No sticker this time. Press Enter to try again."),
		)
	case phaseRevealed:
		sections = append(sections, s.renderReveal(cw)...)
	}

	if s.errMsg != "" {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Error).Width(cw-6).Align(lipgloss.Center).Render(s.errMsg))
	}

	card := components.ArcadeCard(lipgloss.JoinVertical(lipgloss.Center, sections...), cw)
	return layout.Center(card, width, height)
}

func (s *GachaScreen) renderReveal(cw int) []string {
	res := s.result
	tag := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Success).Bold(true).Padding(0, 1).Render("NEW!")
	if res.Duplicate {
		tag = lipgloss.NewStyle().Foreground(theme.Text).Background(theme.Border).Padding(0, 1).Render("Duplicate")
	}
	return []string{
		theme.Title.Width(cw - 6).Render("You got a sticker!"),
		"",
		components.StickerCard(res.Sticker, min(cw-8, 36)),
		"",
		tag,
		"",
		theme.Hint.Render("Press Enter to pull again"),
	}
}

// renderBoard draws the gate as a grid. Unrevealed cells stay face-down
// while hide is set; a finished board passes false to show everything.
func renderBoard(g *minigame.Gate, cursor int, hide bool) string {
	cells := g.Cells()
	base := lipgloss.NewStyle().Width(7).Align(lipgloss.Center).Border(lipgloss.RoundedBorder())

	var rows []string
	for r := 0; r < minigame.CellCount/gridCols; r++ {
		row := make([]string, gridCols)
		for c := 0; c < gridCols; c++ {
			i := r*gridCols + c
			cell := cells[i]

			face := "?"
			style := base.BorderForeground(theme.Border).Foreground(theme.TextDim)
			if cell.Revealed || !hide {
				if cell.Star {
					face = "★"
					style = style.Foreground(theme.ArcadeYellow)
				} else {
					face = "☠"
					style = style.Foreground(theme.Error)
				}
				if !cell.Revealed {
					style = style.Faint(true)
				}
			}
			if i == cursor {
				style = style.BorderForeground(theme.ArcadeCyan).Bold(true)
			}
			row[i%gridCols] = style.Render(face)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}
