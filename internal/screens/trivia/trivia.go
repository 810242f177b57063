// Package trivia is the question-and-answer screen that earns coins.
package trivia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/router"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/ui/components"
	"github.com/abhisek/edusticker/internal/ui/layout"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

// TriviaScreen runs one trivia session at a time.
type TriviaScreen struct {
	ctrl    *game.Controller
	spinner spinner.Model

	loading   bool
	locked    bool
	remaining string
	errMsg    string

	choice   components.MultiChoice
	hasQ     bool
	index    int
	answered *game.AnswerResult
	summary  *game.RoundSummary
	earned   int
}

var _ screen.Screen = (*TriviaScreen)(nil)
var _ screen.KeyHintProvider = (*TriviaScreen)(nil)
var _ screen.EscapeHandler = (*TriviaScreen)(nil)

// New creates the trivia screen.
func New(ctrl *game.Controller) *TriviaScreen {
	return &TriviaScreen{
		ctrl: ctrl,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

// Init starts a session unless trivia is on cooldown.
func (s *TriviaScreen) Init() tea.Cmd {
	if s.checkLock() {
		return countdownTick()
	}
	return s.begin()
}

func (s *TriviaScreen) Title() string { return "Trivia" }

// HandlesEscape reports true: leaving abandons the session.
func (s *TriviaScreen) HandlesEscape() bool { return true }

func (s *TriviaScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.hasQ && s.answered == nil:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Pick"},
			{Key: "Esc", Description: "Quit round"},
		}
	case s.hasQ:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Esc", Description: "Quit round"}}
	case s.errMsg != "" || (s.summary != nil && !s.locked):
		return []layout.KeyHint{{Key: "Enter", Description: "Play"}, {Key: "Esc", Description: "Back"}}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

func (s *TriviaScreen) checkLock() bool {
	s.remaining = s.ctrl.CooldownRemaining(context.Background())
	s.locked = s.remaining != ""
	return s.locked
}

func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}

func (s *TriviaScreen) begin() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	s.summary = nil
	s.earned = 0
	ctrl := s.ctrl
	start := func() tea.Msg {
		return startedMsg{Err: ctrl.StartTrivia(context.Background())}
	}
	return tea.Batch(s.spinner.Tick, start)
}

// loadQuestion syncs the choice component with the controller's current
// question.
func (s *TriviaScreen) loadQuestion() {
	snap := s.ctrl.Snapshot().Trivia
	if snap.Question == nil {
		s.hasQ = false
		return
	}
	s.hasQ = true
	s.index = snap.Index
	s.answered = nil
	s.choice = components.NewMultiChoice(snap.Question.Text, snap.Question.Options)
}

func (s *TriviaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		s.loading = false
		switch {
		case msg.Err == nil:
			s.loadQuestion()
		case errors.Is(msg.Err, game.ErrTriviaLocked):
			s.checkLock()
			return s, countdownTick()
		case errors.Is(msg.Err, context.Canceled):
		default:
			s.errMsg = "We couldn't get the questions ready. Check your connection and try again."
		}
		return s, nil

	case answeredMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		res := msg.Result
		s.answered = &res
		s.earned += res.CoinsAwarded
		if q := s.ctrl.Snapshot().Trivia.Question; q != nil {
			s.choice.Reveal(q.CorrectIndex)
		}
		return s, nil

	case countdownTickMsg:
		if !s.locked {
			return s, nil
		}
		if s.checkLock() {
			return s, countdownTick()
		}
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TriviaScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" {
		s.ctrl.AbandonTrivia()
		return s, router.Pop()
	}
	if s.loading {
		return s, nil
	}

	switch {
	case s.hasQ && s.answered == nil:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Chosen >= 0 {
			return s, s.submit(s.choice.Chosen)
		}
		return s, cmd

	case s.hasQ:
		if msg.String() == "enter" {
			return s, s.advance()
		}

	case msg.String() == "enter" && !s.locked:
		return s, s.begin()
	}
	return s, nil
}

func (s *TriviaScreen) submit(choice int) tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		res, err := ctrl.SubmitAnswer(context.Background(), choice)
		return answeredMsg{Result: res, Err: err}
	}
}

func (s *TriviaScreen) advance() tea.Cmd {
	done, err := s.ctrl.Advance()
	if err != nil {
		s.errMsg = err.Error()
		s.hasQ = false
		return nil
	}
	if !done {
		s.loadQuestion()
		return nil
	}

	s.hasQ = false
	s.answered = nil
	s.summary = s.ctrl.Snapshot().Trivia.Last
	if s.summary != nil && s.summary.GameOver && s.checkLock() {
		return countdownTick()
	}
	return nil
}

func (s *TriviaScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.loading:
		body = s.spinner.View() + " " + theme.Body.Render(
			fmt.Sprintf("Getting %d questions ready...", s.ctrl.Config().QuestionsPerSession))
	case s.summary != nil:
		body = s.viewSummary(cw)
	case s.locked:
		body = s.viewLocked(cw)
	case s.hasQ:
		body = s.viewQuestion(cw)
	case s.errMsg != "":
		body = lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Width(cw-6).Align(lipgloss.Center).Render(s.errMsg),
			"",
			theme.Hint.Render("Press Enter to try again"))
	default:
		body = theme.Hint.Render("Press Enter to play")
	}

	card := components.ArcadeCard(body, cw)
	return layout.Center(card, width, height)
}
