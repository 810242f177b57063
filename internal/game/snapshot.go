package game

import (
	"slices"
	"time"

	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/trivia"
)

// Snapshot is a consistent, read-only copy of the controller state for
// rendering.
type Snapshot struct {
	SignedIn bool
	Loaded   bool
	User     User

	Coins                int
	CollectedStickerIDs  []string
	AchievedMilestoneIDs []string
	PendingMilestone     *catalog.Milestone
	LastPulled           *PullResult
	PullInProgress       bool

	// Degraded is set when the profile failed to load and progress is not
	// being saved.
	Degraded     bool
	UpdatingName bool

	Trivia TriviaSnapshot
}

// TriviaSnapshot describes the trivia session.
type TriviaSnapshot struct {
	Phase       trivia.Phase
	Question    *trivia.Question
	Index       int
	Total       int
	Lives       int
	MaxLives    int
	Answered    bool
	Correct     int
	CooldownEnd time.Time
	Last        *RoundSummary
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.session
	if sess == nil {
		return Snapshot{}
	}

	s := Snapshot{
		SignedIn:       true,
		User:           sess.user,
		Degraded:       sess.degraded,
		UpdatingName:   sess.updatingName,
		PullInProgress: sess.pull != nil,
	}
	if p := sess.progress; p != nil {
		s.Loaded = true
		s.Coins = p.coins
		s.CollectedStickerIDs = slices.Clone(p.stickers)
		s.AchievedMilestoneIDs = slices.Clone(p.milestones)
	}
	if m, ok := c.catalog.Milestone(sess.pendingMilestone); ok {
		s.PendingMilestone = &m
	}
	if sess.lastPulled != nil {
		res := *sess.lastPulled
		s.LastPulled = &res
	}

	t := sess.trivia
	s.Trivia = TriviaSnapshot{
		Phase:       t.phase,
		MaxLives:    c.cfg.Lives,
		Lives:       c.cfg.Lives,
		Total:       c.cfg.QuestionsPerSession,
		CooldownEnd: t.cooldownEnd,
	}
	if t.last != nil {
		last := *t.last
		s.Trivia.Last = &last
	}
	if r := t.round; r != nil {
		q := r.Current()
		q.Options = slices.Clone(q.Options)
		s.Trivia.Question = &q
		s.Trivia.Index = r.Index()
		s.Trivia.Total = r.Len()
		s.Trivia.Lives = r.Lives()
		s.Trivia.MaxLives = r.MaxLives()
		s.Trivia.Answered = r.Answered()
		s.Trivia.Correct = r.CorrectCount()
	}
	return s
}

// HasSticker reports whether the signed-in player owns the sticker.
func (c *Controller) HasSticker(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.progress != nil && c.session.progress.hasSticker(id)
}
