package game

import (
	"context"

	"github.com/abhisek/edusticker/internal/store"
)

// markDirtyLocked records that the progress triple changed and makes sure a
// flusher is running. There is never more than one flusher, so at most one
// profile write is outstanding; changes made while a write is in flight are
// picked up by the flusher's next pass. Degraded sessions are never saved
// so that a failed load cannot overwrite the stored profile with defaults.
func (c *Controller) markDirtyLocked() {
	if c.session == nil || c.session.degraded {
		return
	}
	c.dirty = true
	if c.saving {
		return
	}
	c.saving = true
	c.saveIdle = make(chan struct{})
	go c.flushLoop()
}

func (c *Controller) flushLoop() {
	for {
		c.mu.Lock()
		if !c.dirty || c.session == nil {
			c.dirty = false
			c.saving = false
			close(c.saveIdle)
			c.mu.Unlock()
			return
		}
		c.dirty = false
		uid := c.session.user.ID
		p := c.session.progress.profile(uid)
		c.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.SaveTimeout)
		err := c.profiles.Put(ctx, p, store.ProgressFields...)
		cancel()

		c.mu.Lock()
		c.saveErr = err
		c.mu.Unlock()

		if err != nil {
			c.log.Warn().Err(err).Str("user_id", uid).Msg("profile save failed")
			c.publish(Event{Kind: EventSaveFailed, Err: err})
			continue
		}
		c.log.Debug().Str("user_id", uid).Int("coins", p.Coins).Int("stickers", len(p.CollectedStickerIDs)).Msg("profile saved")
	}
}

// Flush waits until no save is pending or in flight and returns the result
// of the last write. If the last write failed, it is retried first.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	if !c.saving && c.saveErr != nil {
		c.markDirtyLocked()
	}
	if !c.saving {
		err := c.saveErr
		c.mu.Unlock()
		return err
	}
	idle := c.saveIdle
	c.mu.Unlock()

	select {
	case <-idle:
	case <-ctx.Done():
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveErr
}
