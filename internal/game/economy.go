package game

import (
	"fmt"

	"github.com/abhisek/edusticker/internal/catalog"
)

// AddCoins credits amount coins.
func (c *Controller) AddCoins(amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	c.mu.Lock()
	sess, err := c.requireLoadedLocked()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	sess.progress.coins += amount
	c.markDirtyLocked()
	c.mu.Unlock()

	c.publish(Event{Kind: EventProfile})
	return nil
}

// SpendCoins debits amount coins and reports whether it did. It returns
// false, changing nothing, when the balance is too low, the amount is not
// positive or nobody is signed in.
func (c *Controller) SpendCoins(amount int) bool {
	c.mu.Lock()
	ok := c.spendLocked(amount)
	c.mu.Unlock()

	if ok {
		c.publish(Event{Kind: EventProfile})
	}
	return ok
}

func (c *Controller) spendLocked(amount int) bool {
	sess, err := c.requireLoadedLocked()
	if err != nil || amount <= 0 || sess.progress.coins < amount {
		return false
	}
	sess.progress.coins -= amount
	c.markDirtyLocked()
	return true
}

// PullResult is the most recently collected sticker.
type PullResult struct {
	Sticker   catalog.Sticker
	Duplicate bool
}

// CollectSticker adds the sticker to the collection. Collecting a sticker
// already owned changes nothing except LastPulled. A new sticker can surface
// a milestone (see evaluateMilestonesLocked).
func (c *Controller) CollectSticker(id string) (PullResult, error) {
	c.mu.Lock()
	res, events, err := c.collectLocked(id)
	c.mu.Unlock()
	if err != nil {
		return PullResult{}, err
	}

	c.publish(events...)
	if len(events) > 1 {
		c.play(SoundRewardFanfare)
	}
	return res, nil
}

func (c *Controller) collectLocked(id string) (PullResult, []Event, error) {
	sess, err := c.requireLoadedLocked()
	if err != nil {
		return PullResult{}, nil, err
	}
	st, ok := c.catalog.Sticker(id)
	if !ok {
		return PullResult{}, nil, fmt.Errorf("%w: %q", ErrUnknownSticker, id)
	}

	res := PullResult{Sticker: st, Duplicate: !sess.progress.addSticker(id)}
	sess.lastPulled = &res

	events := []Event{{Kind: EventProfile}}
	if !res.Duplicate {
		c.markDirtyLocked()
		if m, ok := c.evaluateMilestonesLocked(); ok {
			events = append(events, Event{Kind: EventMilestone, Milestone: &m})
		}
	}
	return res, events, nil
}

// LastPulled returns the most recently collected sticker, if any.
func (c *Controller) LastPulled() *PullResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.lastPulled == nil {
		return nil
	}
	res := *c.session.lastPulled
	return &res
}

// ClearLastPulled discards the reveal pointer.
func (c *Controller) ClearLastPulled() {
	c.mu.Lock()
	if c.session != nil {
		c.session.lastPulled = nil
	}
	c.mu.Unlock()
}

// evaluateMilestonesLocked surfaces at most one milestone as the pending
// reward: the highest-threshold milestone the collection qualifies for that
// is not yet achieved. If a lower milestone is already pending, the pointer
// moves up to the higher one; the lower one is achieved together with it on
// acknowledgement. It reports whether a milestone was newly surfaced, so no
// milestone is ever surfaced twice.
func (c *Controller) evaluateMilestonesLocked() (catalog.Milestone, bool) {
	sess := c.session
	count := len(sess.progress.stickers)

	var best catalog.Milestone
	found := false
	for _, m := range c.catalog.Milestones() {
		if m.Threshold <= count && !sess.progress.hasMilestone(m.ID) {
			best, found = m, true
		}
	}
	if !found || best.ID == sess.pendingMilestone {
		return catalog.Milestone{}, false
	}
	if cur, ok := c.catalog.Milestone(sess.pendingMilestone); ok && cur.Threshold >= best.Threshold {
		return catalog.Milestone{}, false
	}

	sess.pendingMilestone = best.ID
	c.log.Info().Str("user_id", sess.user.ID).Str("milestone", best.ID).Msg("milestone reached")
	return best, true
}

// PendingMilestone returns the milestone awaiting acknowledgement.
func (c *Controller) PendingMilestone() (catalog.Milestone, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.pendingMilestone == "" {
		return catalog.Milestone{}, false
	}
	return c.catalog.Milestone(c.session.pendingMilestone)
}

// AcknowledgeMilestone marks the pending milestone achieved, along with
// every lower-threshold milestone, and clears the pending pointer.
func (c *Controller) AcknowledgeMilestone(id string) error {
	c.mu.Lock()
	sess, err := c.requireLoadedLocked()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if sess.pendingMilestone == "" || sess.pendingMilestone != id {
		c.mu.Unlock()
		return fmt.Errorf("%w: milestone %q is not pending", ErrInvalidState, id)
	}

	ack, _ := c.catalog.Milestone(id)
	for _, m := range c.catalog.Milestones() {
		if m.Threshold <= ack.Threshold {
			sess.progress.addMilestone(m.ID)
		}
	}
	sess.pendingMilestone = ""
	c.markDirtyLocked()

	events := []Event{{Kind: EventProfile}}
	if m, ok := c.evaluateMilestonesLocked(); ok {
		events = append(events, Event{Kind: EventMilestone, Milestone: &m})
	}
	c.mu.Unlock()

	c.publish(events...)
	return nil
}

// MilestoneStatus is a catalog milestone with the player's achieved flag.
type MilestoneStatus struct {
	catalog.Milestone
	Achieved bool
}

// Milestones returns every milestone in threshold order with its achieved
// flag for the signed-in player.
func (c *Controller) Milestones() []MilestoneStatus {
	ms := c.catalog.Milestones()
	out := make([]MilestoneStatus, len(ms))

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range ms {
		out[i].Milestone = m
		if c.session != nil && c.session.progress != nil {
			out[i].Achieved = c.session.progress.hasMilestone(m.ID)
		}
	}
	return out
}
