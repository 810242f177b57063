// Package lockout tracks the trivia cooldown that starts after a user runs
// out of lives. The cooldown is stored on the local device only.
package lockout

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// KeyPrefix is prepended to the user id to form the storage key.
const KeyPrefix = "triviaCooldown:"

// Store is a local string key/value store.
type Store interface {
	// Get returns the value for key, or ok=false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Keeper reads and writes per-user cooldowns.
type Keeper struct {
	store Store
	now   func() time.Time
}

// NewKeeper creates a Keeper. A nil now uses time.Now.
func NewKeeper(store Store, now func() time.Time) *Keeper {
	if now == nil {
		now = time.Now
	}
	return &Keeper{store: store, now: now}
}

// Key returns the storage key for userID.
func Key(userID string) string {
	return KeyPrefix + userID
}

// NextMidnight returns the start of the next local day after t.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// Start begins a cooldown for userID that ends at the next local midnight
// and returns that end time.
func (k *Keeper) Start(ctx context.Context, userID string) (time.Time, error) {
	end := NextMidnight(k.now())
	value := strconv.FormatInt(end.UnixMilli(), 10)
	if err := k.store.Set(ctx, Key(userID), value); err != nil {
		return time.Time{}, fmt.Errorf("store cooldown: %w", err)
	}
	return end, nil
}

// Until returns the cooldown end for userID and whether it is still in the
// future. Expired or unreadable entries are removed.
func (k *Keeper) Until(ctx context.Context, userID string) (time.Time, bool, error) {
	key := Key(userID)
	raw, ok, err := k.store.Get(ctx, key)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read cooldown: %w", err)
	}
	if !ok {
		return time.Time{}, false, nil
	}

	ms, perr := strconv.ParseInt(raw, 10, 64)
	end := time.UnixMilli(ms)
	if perr == nil && k.now().Before(end) {
		return end, true, nil
	}

	if err := k.store.Delete(ctx, key); err != nil {
		return time.Time{}, false, fmt.Errorf("clear cooldown: %w", err)
	}
	return time.Time{}, false, nil
}

// IsLocked reports whether userID is currently in a cooldown.
func (k *Keeper) IsLocked(ctx context.Context, userID string) (bool, error) {
	_, locked, err := k.Until(ctx, userID)
	return locked, err
}

// Clear removes any cooldown for userID.
func (k *Keeper) Clear(ctx context.Context, userID string) error {
	return k.store.Delete(ctx, Key(userID))
}

// FormatRemaining renders a duration as "Hh Mm Ss". Negative durations
// render as zero.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	s := int(d%time.Minute) / int(time.Second)
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

