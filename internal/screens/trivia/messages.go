package trivia

import (
	"time"

	"github.com/abhisek/edusticker/internal/game"
)

// startedMsg is sent when the question batch has loaded or failed.
type startedMsg struct {
	Err error
}

// answeredMsg is sent when an answer has been scored.
type answeredMsg struct {
	Result game.AnswerResult
	Err    error
}

// countdownTickMsg is sent every second while trivia is on cooldown.
type countdownTickMsg time.Time
