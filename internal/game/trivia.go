package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/edusticker/internal/lockout"
	"github.com/abhisek/edusticker/internal/trivia"
)

type triviaState struct {
	phase       trivia.Phase
	round       *trivia.Round
	cancel      context.CancelFunc
	loadSeq     int
	cooldownEnd time.Time
	last        *RoundSummary
}

// RoundSummary describes the most recently finished trivia session.
type RoundSummary struct {
	Questions int
	Correct   int
	GameOver  bool
}

// AnswerResult is returned by SubmitAnswer.
type AnswerResult struct {
	Correct      bool
	CorrectText  string
	GameOver     bool
	CoinsAwarded int
}

// TriviaLocked reports whether a cooldown blocks new trivia sessions and
// when it ends. An expired cooldown is cleared as a side effect.
func (c *Controller) TriviaLocked(ctx context.Context) (bool, time.Time) {
	c.mu.Lock()
	sess := c.session
	if sess == nil {
		c.mu.Unlock()
		return false, time.Time{}
	}
	end := sess.trivia.cooldownEnd
	if end.IsZero() {
		c.mu.Unlock()
		return false, time.Time{}
	}
	if c.now().Before(end) {
		c.mu.Unlock()
		return true, end
	}
	sess.trivia.cooldownEnd = time.Time{}
	uid := sess.user.ID
	c.mu.Unlock()

	if err := c.keeper.Clear(ctx, uid); err != nil {
		c.log.Warn().Err(err).Str("user_id", uid).Msg("could not clear expired trivia cooldown")
	}
	c.publish(Event{Kind: EventTrivia})
	return false, time.Time{}
}

// CooldownRemaining returns the time left on the cooldown, formatted as
// "Hh Mm Ss", or "" when not locked.
func (c *Controller) CooldownRemaining(ctx context.Context) string {
	locked, end := c.TriviaLocked(ctx)
	if !locked {
		return ""
	}
	return lockout.FormatRemaining(end.Sub(c.now()))
}

// StartTrivia fetches a full batch of questions and starts a session. The
// batch is fetched sequentially and is all or nothing: on any failure, or
// if ctx is cancelled, the controller returns to idle and a
// *TriviaStartError is returned.
func (c *Controller) StartTrivia(ctx context.Context) error {
	if locked, _ := c.TriviaLocked(ctx); locked {
		return ErrTriviaLocked
	}

	c.mu.Lock()
	sess, err := c.requireLoadedLocked()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if sess.trivia.phase != trivia.PhaseIdle {
		c.mu.Unlock()
		return fmt.Errorf("%w: trivia is %s", ErrInvalidState, sess.trivia.phase)
	}
	topics := trivia.PickTopics(c.rng, trivia.Topics, c.cfg.QuestionsPerSession)
	loadCtx, cancel := context.WithCancel(ctx)
	sess.trivia.phase = trivia.PhaseLoading
	sess.trivia.cancel = cancel
	sess.trivia.loadSeq++
	sess.trivia.last = nil
	seq := sess.trivia.loadSeq
	uid := sess.user.ID
	c.mu.Unlock()
	c.publish(Event{Kind: EventTrivia})

	questions, err := trivia.FetchAll(loadCtx, c.questions, topics)
	cancel()

	var round *trivia.Round
	if err == nil {
		round, err = trivia.NewRound(questions, c.cfg.Lives)
	}

	c.mu.Lock()
	if c.session != sess {
		c.mu.Unlock()
		return &TriviaStartError{Err: ErrNotAuthenticated}
	}
	if sess.trivia.phase != trivia.PhaseLoading || sess.trivia.loadSeq != seq {
		// Abandoned while loading.
		c.mu.Unlock()
		return &TriviaStartError{Err: context.Canceled}
	}
	sess.trivia.cancel = nil
	if err != nil {
		sess.trivia.phase = trivia.PhaseIdle
		c.mu.Unlock()
		c.log.Warn().Err(err).Str("user_id", uid).Msg("trivia batch failed")
		c.publish(Event{Kind: EventTrivia})
		return &TriviaStartError{Err: err}
	}
	sess.trivia.phase = trivia.PhaseActive
	sess.trivia.round = round
	c.mu.Unlock()

	c.log.Info().Str("user_id", uid).Int("questions", len(questions)).Msg("trivia session started")
	c.publish(Event{Kind: EventTrivia})
	return nil
}

// SubmitAnswer scores choice against the current question. A correct
// answer earns the bonus; losing the last life ends the session and starts
// a cooldown until the next local midnight.
func (c *Controller) SubmitAnswer(ctx context.Context, choice int) (AnswerResult, error) {
	c.mu.Lock()
	sess, err := c.requireLoadedLocked()
	if err != nil {
		c.mu.Unlock()
		return AnswerResult{}, err
	}
	if sess.trivia.phase != trivia.PhaseActive {
		c.mu.Unlock()
		return AnswerResult{}, fmt.Errorf("%w: trivia is %s", ErrInvalidState, sess.trivia.phase)
	}

	res, err := sess.trivia.round.Answer(choice)
	if err != nil {
		c.mu.Unlock()
		if errors.Is(err, trivia.ErrInvalidChoice) {
			return AnswerResult{}, fmt.Errorf("%w: %w", ErrInvalidChoice, err)
		}
		return AnswerResult{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	out := AnswerResult{Correct: res.Correct, CorrectText: res.CorrectText, GameOver: res.GameOver}
	sound := SoundIncorrectAnswer
	events := []Event{{Kind: EventTrivia}}
	if res.Correct {
		sess.progress.coins += c.cfg.CorrectAnswerBonus
		out.CoinsAwarded = c.cfg.CorrectAnswerBonus
		c.markDirtyLocked()
		sound = SoundCorrectAnswer
		events = append(events, Event{Kind: EventProfile})
	}
	if res.GameOver {
		sess.trivia.phase = trivia.PhaseGameOver
		sess.trivia.cooldownEnd = lockout.NextMidnight(c.now())
	}
	uid := sess.user.ID
	c.mu.Unlock()

	if res.GameOver {
		if _, err := c.keeper.Start(ctx, uid); err != nil {
			c.log.Warn().Err(err).Str("user_id", uid).Msg("could not persist trivia cooldown")
		}
		c.log.Info().Str("user_id", uid).Msg("trivia game over")
	}

	c.publish(events...)
	c.play(sound)
	return out, nil
}

// Advance moves to the next question. It reports true when the session is
// over (last question done, or game over), after which trivia is idle.
func (c *Controller) Advance() (bool, error) {
	c.mu.Lock()
	sess, err := c.requireLoadedLocked()
	if err != nil {
		c.mu.Unlock()
		return false, err
	}
	phase := sess.trivia.phase
	if phase != trivia.PhaseActive && phase != trivia.PhaseGameOver {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: trivia is %s", ErrInvalidState, phase)
	}

	round := sess.trivia.round
	done, err := round.Advance()
	if err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if done {
		sess.trivia.last = &RoundSummary{
			Questions: round.Len(),
			Correct:   round.CorrectCount(),
			GameOver:  round.Phase() == trivia.PhaseGameOver,
		}
		sess.trivia.phase = trivia.PhaseIdle
		sess.trivia.round = nil
	}
	c.mu.Unlock()

	c.publish(Event{Kind: EventTrivia})
	return done, nil
}

// AbandonTrivia drops the current session, or cancels a batch still
// loading. Lives lost so far do not start a cooldown.
func (c *Controller) AbandonTrivia() {
	c.mu.Lock()
	sess := c.session
	if sess == nil || sess.trivia.phase == trivia.PhaseIdle {
		c.mu.Unlock()
		return
	}
	if sess.trivia.cancel != nil {
		sess.trivia.cancel()
		sess.trivia.cancel = nil
	}
	sess.trivia.phase = trivia.PhaseIdle
	sess.trivia.round = nil
	c.mu.Unlock()

	c.publish(Event{Kind: EventTrivia})
}
