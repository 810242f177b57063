package trivia

import (
	"errors"
	"fmt"
)

// Phase is the trivia session lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseActive
	PhaseCompleted
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

var (
	ErrInvalidChoice   = errors.New("answer choice out of range")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswered     = errors.New("current question not answered yet")
	ErrRoundOver       = errors.New("round is over")
)

// Result is the outcome of answering one question.
type Result struct {
	Correct     bool
	CorrectText string
	GameOver    bool
}

// Round is one session of questions sharing a pool of lives. A Round is
// not safe for concurrent use.
type Round struct {
	questions []Question
	index     int
	lives     int
	maxLives  int
	answered  bool
	correct   int
	phase     Phase
}

// NewRound starts an active round over questions with the given lives.
func NewRound(questions []Question, lives int) (*Round, error) {
	if len(questions) == 0 {
		return nil, errors.New("round needs at least one question")
	}
	if lives < 1 {
		return nil, fmt.Errorf("round needs at least one life, got %d", lives)
	}
	return &Round{
		questions: questions,
		lives:     lives,
		maxLives:  lives,
		phase:     PhaseActive,
	}, nil
}

// Answer scores choice against the current question. A wrong answer costs a
// life; losing the last one ends the round in PhaseGameOver.
func (r *Round) Answer(choice int) (Result, error) {
	if r.phase != PhaseActive {
		return Result{}, ErrRoundOver
	}
	if r.answered {
		return Result{}, ErrAlreadyAnswered
	}
	q := r.questions[r.index]
	if choice < 0 || choice >= len(q.Options) {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	r.answered = true
	res := Result{Correct: q.IsCorrect(choice), CorrectText: q.CorrectText()}
	if res.Correct {
		r.correct++
		return res, nil
	}

	r.lives--
	if r.lives <= 0 {
		r.lives = 0
		r.phase = PhaseGameOver
		res.GameOver = true
	}
	return res, nil
}

// Advance moves past the current question. It reports true when the round
// has finished, either because the last question was answered or because
// the round already ended in game over.
func (r *Round) Advance() (bool, error) {
	switch r.phase {
	case PhaseGameOver, PhaseCompleted:
		return true, nil
	case PhaseActive:
	default:
		return false, ErrRoundOver
	}
	if !r.answered {
		return false, ErrNotAnswered
	}
	if r.index == len(r.questions)-1 {
		r.phase = PhaseCompleted
		return true, nil
	}
	r.index++
	r.answered = false
	return false, nil
}

// Current returns the question at the current index.
func (r *Round) Current() Question { return r.questions[r.index] }

// Index returns the zero-based position of the current question.
func (r *Round) Index() int { return r.index }

// Len returns the number of questions in the round.
func (r *Round) Len() int { return len(r.questions) }

// Lives returns the lives left.
func (r *Round) Lives() int { return r.lives }

// MaxLives returns the lives the round started with.
func (r *Round) MaxLives() int { return r.maxLives }

// Answered reports whether the current question has been answered.
func (r *Round) Answered() bool { return r.answered }

// CorrectCount returns how many questions were answered correctly.
func (r *Round) CorrectCount() int { return r.correct }

// Phase returns PhaseActive, PhaseCompleted or PhaseGameOver.
func (r *Round) Phase() Phase { return r.phase }
