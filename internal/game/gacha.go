package game

import (
	"fmt"

	"github.com/abhisek/edusticker/internal/minigame"
)

// BeginPull pays for a sticker pull and returns the gate that must be won
// to claim it. The coins are spent up front and are not refunded if the
// gate is lost. Returns ErrInsufficientCoins, with no state change, when
// the balance is below the gacha cost.
func (c *Controller) BeginPull() (*minigame.Gate, error) {
	c.mu.Lock()
	sess, err := c.requireLoadedLocked()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if sess.pull != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: a pull is already in progress", ErrInvalidState)
	}
	if !c.spendLocked(c.cfg.GachaCost) {
		c.mu.Unlock()
		return nil, ErrInsufficientCoins
	}
	gate := minigame.New(c.rng)
	sess.pull = gate
	sess.lastPulled = nil
	c.mu.Unlock()

	c.publish(Event{Kind: EventProfile}, Event{Kind: EventPull})
	c.play(SoundGachaSpin)
	return gate, nil
}

// RevealCell uncovers a cell on the pending pull's gate.
func (c *Controller) RevealCell(index int) (minigame.State, error) {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return minigame.Playing, ErrNotAuthenticated
	}
	gate := c.session.pull
	c.mu.Unlock()
	if gate == nil {
		return minigame.Playing, ErrNoPendingPull
	}

	state := gate.Reveal(index)
	c.publish(Event{Kind: EventPull})
	c.play(SoundClick)
	return state, nil
}

// PendingPull returns the gate of the pull in progress, if any.
func (c *Controller) PendingPull() *minigame.Gate {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	return c.session.pull
}

// ClaimPull finishes the pending pull. A won gate grants one sticker drawn
// uniformly from the whole catalog (duplicates possible); a lost gate
// grants nothing and returns a nil result. A gate still in play is an
// ErrInvalidState.
func (c *Controller) ClaimPull() (*PullResult, error) {
	c.mu.Lock()
	sess, err := c.requireLoadedLocked()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	gate := sess.pull
	if gate == nil {
		c.mu.Unlock()
		return nil, ErrNoPendingPull
	}

	switch gate.State() {
	case minigame.Playing:
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: the gate is still in play", ErrInvalidState)
	case minigame.Lost:
		sess.pull = nil
		c.mu.Unlock()
		c.log.Info().Str("user_id", sess.user.ID).Msg("sticker pull lost")
		c.publish(Event{Kind: EventPull})
		return nil, nil
	}

	if !gate.Claim() {
		c.mu.Unlock()
		return nil, ErrNoPendingPull
	}
	sess.pull = nil
	sticker := c.catalog.At(c.rng.IntN(c.catalog.Len()))
	res, events, err := c.collectLocked(sticker.ID)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.log.Info().Str("user_id", sess.user.ID).Str("sticker", sticker.ID).Bool("duplicate", res.Duplicate).Msg("sticker pulled")
	c.publish(append(events, Event{Kind: EventPull})...)
	c.play(SoundStickerReveal)
	if len(events) > 1 {
		c.play(SoundRewardFanfare)
	}
	return &res, nil
}

// AbandonPull discards the pending pull without refund.
func (c *Controller) AbandonPull() {
	c.mu.Lock()
	if c.session == nil || c.session.pull == nil {
		c.mu.Unlock()
		return
	}
	c.session.pull = nil
	c.mu.Unlock()

	c.publish(Event{Kind: EventPull})
}
