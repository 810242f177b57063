package store

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
)

// MemoryProfileRepo is an in-process ProfileRepo. Nothing survives the
// process; it backs guest play and tests.
type MemoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

// NewMemoryProfileRepo returns an empty repo.
func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{profiles: make(map[string]Profile)}
}

func (r *MemoryProfileRepo) Get(_ context.Context, id string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := cloneProfile(p)
	return &cp, nil
}

func (r *MemoryProfileRepo) Put(_ context.Context, p *Profile, fields ...ProfileField) error {
	if p.ID == "" {
		return errors.New("put profile: empty id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.profiles[p.ID]
	cur.ID = p.ID
	for f, v := range fieldValues(p, fields) {
		switch f {
		case FieldDisplayName:
			cur.DisplayName = v.(string)
		case FieldEmail:
			cur.Email = v.(string)
		case FieldPhotoRef:
			cur.PhotoRef = v.(string)
		case FieldCoins:
			cur.Coins = v.(int)
		case FieldCollectedStickers:
			cur.CollectedStickerIDs = slices.Clone(v.([]string))
		case FieldAchievedMilestones:
			cur.AchievedMilestoneIDs = slices.Clone(v.([]string))
		}
	}
	r.profiles[p.ID] = cur
	return nil
}

func (r *MemoryProfileRepo) All(_ context.Context) ([]Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneProfile(p Profile) Profile {
	p.CollectedStickerIDs = slices.Clone(p.CollectedStickerIDs)
	p.AchievedMilestoneIDs = slices.Clone(p.AchievedMilestoneIDs)
	return p
}
