package game

import (
	"slices"

	"github.com/abhisek/edusticker/internal/store"
)

// progress is the persisted triple: coins, stickers and milestones. Ids keep
// insertion order; the sets enforce uniqueness.
type progress struct {
	coins        int
	stickers     []string
	stickerSet   map[string]struct{}
	milestones   []string
	milestoneSet map[string]struct{}
}

func newProgress(coins int) *progress {
	return &progress{
		coins:        coins,
		stickers:     []string{},
		stickerSet:   make(map[string]struct{}),
		milestones:   []string{},
		milestoneSet: make(map[string]struct{}),
	}
}

func (p *progress) hasSticker(id string) bool {
	_, ok := p.stickerSet[id]
	return ok
}

func (p *progress) addSticker(id string) bool {
	if p.hasSticker(id) {
		return false
	}
	p.stickerSet[id] = struct{}{}
	p.stickers = append(p.stickers, id)
	return true
}

func (p *progress) hasMilestone(id string) bool {
	_, ok := p.milestoneSet[id]
	return ok
}

func (p *progress) addMilestone(id string) bool {
	if p.hasMilestone(id) {
		return false
	}
	p.milestoneSet[id] = struct{}{}
	p.milestones = append(p.milestones, id)
	return true
}

// profile projects the progress fields onto a store.Profile for a merge write.
func (p *progress) profile(userID string) *store.Profile {
	return &store.Profile{
		ID:                   userID,
		Coins:                p.coins,
		CollectedStickerIDs:  slices.Clone(p.stickers),
		AchievedMilestoneIDs: slices.Clone(p.milestones),
	}
}
