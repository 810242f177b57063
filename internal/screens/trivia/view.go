package trivia

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/ui/theme"
)

func hearts(lives, maxLives int) string {
	full := lipgloss.NewStyle().Foreground(theme.Error).Render(strings.Repeat("♥", lives))
	empty := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Repeat("♡", maxLives-lives))
	return full + empty
}

func (s *TriviaScreen) viewQuestion(cw int) string {
	snap := s.ctrl.Snapshot().Trivia

	topic := ""
	if snap.Question != nil {
		topic = snap.Question.Topic
	}
	status := fmt.Sprintf("Question %d/%d", s.index+1, snap.Total)
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Width((cw-6)/2).Render(status),
		lipgloss.NewStyle().Width((cw-6)-(cw-6)/2).Align(lipgloss.Right).Render(hearts(snap.Lives, snap.MaxLives)),
	)

	sections := []string{header, theme.Hint.Render(topic), "", s.choice.View()}

	if res := s.answered; res != nil {
		if res.Correct {
			sections = append(sections, theme.Correct.Render(fmt.Sprintf("Correct! +%d coins", res.CoinsAwarded)))
		} else {
			sections = append(sections, theme.Incorrect.Render("Oops! The answer was "+res.CorrectText))
		}
		if res.GameOver {
			sections = append(sections, theme.Warning.Render("Out of lives!"))
		}
		sections = append(sections, "", theme.Hint.Render("Press Enter to continue"))
	}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *TriviaScreen) viewSummary(cw int) string {
	sum := s.summary
	title := "Round complete!"
	if sum.GameOver {
		title = "Game over"
	}

	sections := []string{
		theme.Title.Width(cw - 6).Render(title),
		"",
		theme.Body.Render(fmt.Sprintf("You answered %d of %d correctly.", sum.Correct, sum.Questions)),
		lipgloss.NewStyle().Foreground(theme.Coin).Bold(true).Render(fmt.Sprintf("● +%d coins", s.earned)),
		"",
	}
	if s.locked {
		sections = append(sections,
			theme.Warning.Render("Trivia unlocks at midnight."),
			theme.Hint.Render("Time left: "+s.remaining))
	} else {
		sections = append(sections, theme.Hint.Render("Press Enter to play again"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func (s *TriviaScreen) viewLocked(cw int) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Width(cw-6).Render("Trivia is resting"),
		"",
		theme.Body.Render("You ran out of lives today. Come back after midnight!"),
		"",
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(s.remaining),
	)
}
