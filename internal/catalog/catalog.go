package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// Sticker is a collectible item. Stickers are immutable and shared by all users.
type Sticker struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Rarity      Rarity `json:"rarity"`
	ImageRef    string `json:"imageRef"`
	Description string `json:"description"`
}

// Milestone unlocks a one-time reward message once a user holds Threshold
// unique stickers.
type Milestone struct {
	ID        string `json:"id"`
	Threshold int    `json:"threshold"`
	Message   string `json:"message"`
}

var (
	ErrEmptyCatalog     = errors.New("catalog has no stickers")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrInvalidThreshold = errors.New("invalid milestone threshold")
)

// Catalog is the fixed set of stickers and milestones. It is safe for
// concurrent use because it is never mutated after New returns.
type Catalog struct {
	stickers   []Sticker
	byID       map[string]int
	milestones []Milestone
}

// New validates and builds a catalog. Milestones are ordered by ascending
// threshold regardless of input order.
func New(stickers []Sticker, milestones []Milestone) (*Catalog, error) {
	if len(stickers) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		stickers: make([]Sticker, len(stickers)),
		byID:     make(map[string]int, len(stickers)),
	}
	copy(c.stickers, stickers)

	for i, s := range c.stickers {
		if s.ID == "" {
			return nil, fmt.Errorf("sticker %d: empty id", i)
		}
		if !s.Rarity.Valid() {
			return nil, fmt.Errorf("sticker %s: unknown rarity %q", s.ID, s.Rarity)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("sticker %s: %w", s.ID, ErrDuplicateID)
		}
		c.byID[s.ID] = i
	}

	seen := make(map[string]bool, len(milestones))
	for _, m := range milestones {
		if seen[m.ID] {
			return nil, fmt.Errorf("milestone %s: %w", m.ID, ErrDuplicateID)
		}
		if m.Threshold <= 0 || m.Threshold > len(stickers) {
			return nil, fmt.Errorf("milestone %s: %w: %d", m.ID, ErrInvalidThreshold, m.Threshold)
		}
		seen[m.ID] = true
	}

	c.milestones = make([]Milestone, len(milestones))
	copy(c.milestones, milestones)
	sort.SliceStable(c.milestones, func(i, j int) bool {
		return c.milestones[i].Threshold < c.milestones[j].Threshold
	})

	return c, nil
}

// Stickers returns a copy of all stickers in catalog order.
func (c *Catalog) Stickers() []Sticker {
	out := make([]Sticker, len(c.stickers))
	copy(out, c.stickers)
	return out
}

// Len returns the number of stickers in the catalog.
func (c *Catalog) Len() int {
	return len(c.stickers)
}

// At returns the sticker at position i (0-based).
func (c *Catalog) At(i int) Sticker {
	return c.stickers[i]
}

// Sticker looks up a sticker by id.
func (c *Catalog) Sticker(id string) (Sticker, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Sticker{}, false
	}
	return c.stickers[i], true
}

// Has reports whether id names a catalog sticker.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Milestones returns all milestones ordered by ascending threshold.
func (c *Catalog) Milestones() []Milestone {
	out := make([]Milestone, len(c.milestones))
	copy(out, c.milestones)
	return out
}

// Milestone looks up a milestone by id.
func (c *Catalog) Milestone(id string) (Milestone, bool) {
	for _, m := range c.milestones {
		if m.ID == id {
			return m, true
		}
	}
	return Milestone{}, false
}

// CountByRarity returns how many catalog stickers exist per rarity.
func (c *Catalog) CountByRarity() map[Rarity]int {
	counts := make(map[Rarity]int, 3)
	for _, s := range c.stickers {
		counts[s.Rarity]++
	}
	return counts
}
