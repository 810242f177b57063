package lockout

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

type memStore struct {
	data   map[string]string
	setErr error
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestNextMidnight(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 3, 14, 15, 30, 0, 0, loc), time.Date(2026, 3, 15, 0, 0, 0, 0, loc)},
		{time.Date(2026, 3, 14, 0, 0, 0, 0, loc), time.Date(2026, 3, 15, 0, 0, 0, 0, loc)},
		{time.Date(2026, 12, 31, 23, 59, 59, 0, loc), time.Date(2027, 1, 1, 0, 0, 0, 0, loc)},
		{time.Date(2028, 2, 28, 12, 0, 0, 0, loc), time.Date(2028, 2, 29, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		if got := NextMidnight(tt.in); !got.Equal(tt.want) {
			t.Errorf("NextMidnight(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKeeper_StartAndExpire(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 5, 1, 20, 0, 0, 0, time.Local)}
	store := newMemStore()
	k := NewKeeper(store, clock.Now)

	end, err := k.Start(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := NextMidnight(clock.t); !end.Equal(want) {
		t.Errorf("Start() end = %v, want %v", end, want)
	}

	raw := store.data["triviaCooldown:u1"]
	if raw != strconv.FormatInt(end.UnixMilli(), 10) {
		t.Errorf("stored value = %q, want epoch millis of %v", raw, end)
	}

	locked, err := k.IsLocked(ctx, "u1")
	if err != nil || !locked {
		t.Fatalf("IsLocked() = %v, %v; want true", locked, err)
	}

	// Other users are unaffected.
	if locked, _ := k.IsLocked(ctx, "u2"); locked {
		t.Error("u2 locked by u1's cooldown")
	}

	clock.t = end.Add(time.Millisecond)
	locked, err = k.IsLocked(ctx, "u1")
	if err != nil || locked {
		t.Fatalf("IsLocked() after expiry = %v, %v; want false", locked, err)
	}
	if _, ok := store.data["triviaCooldown:u1"]; ok {
		t.Error("expired cooldown not cleared")
	}
}

func TestKeeper_CorruptValueCleared(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.data[Key("u1")] = "not-a-number"
	k := NewKeeper(store, nil)

	locked, err := k.IsLocked(ctx, "u1")
	if err != nil || locked {
		t.Fatalf("IsLocked() = %v, %v; want false, nil", locked, err)
	}
	if len(store.data) != 0 {
		t.Error("corrupt cooldown not cleared")
	}
}

func TestKeeper_StartStoreError(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("disk full")
	k := NewKeeper(store, nil)

	if _, err := k.Start(context.Background(), "u1"); err == nil {
		t.Fatal("expected error from Start")
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0h 0m 0s"},
		{-time.Minute, "0h 0m 0s"},
		{59 * time.Second, "0h 0m 59s"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3h 4m 5s"},
		{23*time.Hour + 59*time.Minute + 59*time.Second + 600*time.Millisecond, "24h 0m 0s"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
