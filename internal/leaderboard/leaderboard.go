// Package leaderboard ranks collectors by the number of unique stickers
// they hold.
package leaderboard

import (
	"cmp"
	"slices"
	"strings"
)

// Tier is the title a collector earns from their rank or completion.
type Tier string

const (
	TierGrandScholar       Tier = "grand_scholar"
	TierStickerExpert      Tier = "sticker_expert"
	TierSeasonedCollector  Tier = "seasoned_collector"
	TierDedicatedCollector Tier = "dedicated_collector"
	TierCollector          Tier = "collector"
)

// AllTiers returns all tiers from highest to lowest.
func AllTiers() []Tier {
	return []Tier{
		TierGrandScholar,
		TierStickerExpert,
		TierSeasonedCollector,
		TierDedicatedCollector,
		TierCollector,
	}
}

// Title returns the human-readable title for the tier.
func (t Tier) Title() string {
	switch t {
	case TierGrandScholar:
		return "Grand Scholar"
	case TierStickerExpert:
		return "Sticker Expert"
	case TierSeasonedCollector:
		return "Seasoned Collector"
	case TierDedicatedCollector:
		return "Dedicated Collector"
	default:
		return "Collector"
	}
}

// AnonymousName is shown for collectors with neither a display name nor an email.
const AnonymousName = "Anonymous"

// Collector is the input projection of one profile.
type Collector struct {
	UserID      string
	DisplayName string
	Email       string
	StickerIDs  []string
}

// Entry is one ranked row.
type Entry struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	UniqueStickers int    `json:"uniqueStickers"`
	Tier           Tier   `json:"tier"`
}

// Build ranks collectors by unique sticker count (descending), breaking
// ties by name (ascending), and assigns ranks 1..n and tiers. catalogSize
// is the total number of stickers and drives the completion tier.
func Build(collectors []Collector, catalogSize int) []Entry {
	entries := make([]Entry, len(collectors))
	for i, c := range collectors {
		entries[i] = Entry{
			UserID:         c.UserID,
			Name:           displayName(c),
			UniqueStickers: uniqueCount(c.StickerIDs),
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.UniqueStickers, a.UniqueStickers); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Tier = TierFor(entries[i].Rank, entries[i].UniqueStickers, catalogSize)
	}
	return entries
}

// TierFor classifies a collector by rank, falling back to completion.
func TierFor(rank, unique, catalogSize int) Tier {
	switch rank {
	case 1:
		return TierGrandScholar
	case 2:
		return TierStickerExpert
	case 3:
		return TierSeasonedCollector
	}
	if catalogSize > 0 && unique*2 >= catalogSize {
		return TierDedicatedCollector
	}
	return TierCollector
}

func displayName(c Collector) string {
	if n := strings.TrimSpace(c.DisplayName); n != "" {
		return n
	}
	if c.Email != "" {
		return c.Email
	}
	return AnonymousName
}

func uniqueCount(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
