package game

import (
	"slices"

	"github.com/abhisek/edusticker/internal/catalog"
)

// EventKind identifies what changed.
type EventKind int

const (
	// EventSession fires on login, logout and profile load.
	EventSession EventKind = iota
	// EventProfile fires when coins, stickers, milestones or the display name change.
	EventProfile
	// EventMilestone fires when a milestone is surfaced as the pending reward.
	EventMilestone
	// EventTrivia fires on every trivia phase, question or lives change.
	EventTrivia
	// EventPull fires when a sticker pull starts, progresses or finishes.
	EventPull
	// EventSaveFailed fires when a background profile save fails.
	EventSaveFailed
)

func (k EventKind) String() string {
	switch k {
	case EventSession:
		return "session"
	case EventProfile:
		return "profile"
	case EventMilestone:
		return "milestone"
	case EventTrivia:
		return "trivia"
	case EventPull:
		return "pull"
	case EventSaveFailed:
		return "save_failed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after the state change it describes.
type Event struct {
	Kind EventKind

	// Milestone is set for EventMilestone.
	Milestone *catalog.Milestone

	// Err is set for EventSaveFailed.
	Err error
}

// Subscribe registers fn to receive events and returns a function that
// removes it. fn runs on the goroutine that caused the change, after the
// controller lock is released, so it may call back into the controller.
func (c *Controller) Subscribe(fn func(Event)) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) publish(events ...Event) {
	if len(events) == 0 {
		return
	}

	c.subsMu.Lock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	// Deliver in subscription order.
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.subsMu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}
