package game

import (
	"context"
	"fmt"

	"github.com/abhisek/edusticker/internal/leaderboard"
	"github.com/abhisek/edusticker/internal/store"
)

// Leaderboard ranks every stored profile by unique stickers collected.
func (c *Controller) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	return BuildLeaderboard(ctx, c.profiles, c.catalog.Len())
}

// ProfileLister is the read side of the profile store used for ranking.
type ProfileLister interface {
	All(ctx context.Context) ([]store.Profile, error)
}

// BuildLeaderboard ranks the profiles returned by repo.
func BuildLeaderboard(ctx context.Context, repo ProfileLister, catalogSize int) ([]leaderboard.Entry, error) {
	profiles, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	collectors := make([]leaderboard.Collector, len(profiles))
	for i, p := range profiles {
		collectors[i] = leaderboard.Collector{
			UserID:      p.ID,
			DisplayName: p.DisplayName,
			Email:       p.Email,
			StickerIDs:  p.CollectedStickerIDs,
		}
	}
	return leaderboard.Build(collectors, catalogSize), nil
}
