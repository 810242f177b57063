package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDBCounter atomic.Int64

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, testDBCounter.Add(1))
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edusticker.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ProfileRepo().Put(ctx, &Profile{ID: "u1", Coins: 42}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	p, err := s.ProfileRepo().Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 42, p.Coins)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestOpen_Reopen.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProfileRepo_GetMissing(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()

	p, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfileRepo_RoundTrip(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	want := &Profile{
		ID:                   "u1",
		DisplayName:          "Sari",
		Email:                "sari@example.com",
		PhotoRef:             "avatars/sari.png",
		Coins:                75,
		CollectedStickerIDs:  []string{"s1", "s7", "s99"},
		AchievedMilestoneIDs: []string{"m1"},
	}
	require.NoError(t, repo.Put(ctx, want))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProfileRepo_MergePut(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &Profile{
		ID:                  "u1",
		DisplayName:         "Budi",
		Email:               "budi@example.com",
		Coins:               100,
		CollectedStickerIDs: []string{"s1"},
	}))

	// Only progress fields; the display name must survive.
	require.NoError(t, repo.Put(ctx, &Profile{
		ID:                   "u1",
		DisplayName:          "ignored",
		Coins:                80,
		CollectedStickerIDs:  []string{"s1", "s2"},
		AchievedMilestoneIDs: nil,
	}, ProgressFields...))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Budi", got.DisplayName)
	assert.Equal(t, "budi@example.com", got.Email)
	assert.Equal(t, 80, got.Coins)
	assert.Equal(t, []string{"s1", "s2"}, got.CollectedStickerIDs)
	assert.Empty(t, got.AchievedMilestoneIDs)
}

func TestProfileRepo_MergeCreatesWithDefaults(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &Profile{ID: "u1", DisplayName: "Nia"}, FieldDisplayName))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Nia", got.DisplayName)
	assert.Equal(t, 0, got.Coins)
	assert.Empty(t, got.CollectedStickerIDs)
}

func TestProfileRepo_RejectsNegativeCoins(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	err := repo.Put(context.Background(), &Profile{ID: "u1", Coins: -5})
	assert.Error(t, err)
}

func TestProfileRepo_All(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Put(ctx, &Profile{ID: id, CollectedStickerIDs: []string{id}}))
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, []string{"c"}, all[2].CollectedStickerIDs)
}

func TestAccountRepo(t *testing.T) {
	repo := openTestStore(t).AccountRepo()
	ctx := context.Background()

	a := &Account{ID: "u1", Email: "Kid@Example.com ", PasswordHash: "hash", DisplayName: "Kid"}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.ByEmail(ctx, "kid@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "kid@example.com", got.Email)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.False(t, got.CreatedAt.IsZero())

	err = repo.Create(ctx, &Account{ID: "u2", Email: "KID@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	missing, err := repo.ByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountRepo_UpdateDisplayName(t *testing.T) {
	repo := openTestStore(t).AccountRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Account{ID: "u1", Email: "a@b.c", PasswordHash: "h"}))
	require.NoError(t, repo.UpdateDisplayName(ctx, "u1", "Ayu"))

	got, err := repo.ByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "Ayu", got.DisplayName)

	assert.ErrorIs(t, repo.UpdateDisplayName(ctx, "ghost", "x"), ErrNotFound)
}

func TestLocalRepo(t *testing.T) {
	repo := openTestStore(t).LocalRepo()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "triviaCooldown:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "triviaCooldown:u1", "1700000000000"))
	require.NoError(t, repo.Set(ctx, "triviaCooldown:u1", "1800000000000"))

	v, ok, err := repo.Get(ctx, "triviaCooldown:u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1800000000000", v)

	require.NoError(t, repo.Delete(ctx, "triviaCooldown:u1"))
	require.NoError(t, repo.Delete(ctx, "triviaCooldown:u1"))
	_, ok, err = repo.Get(ctx, "triviaCooldown:u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
}

func TestEventRepo_LLMEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "trivia", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "trivia", InputTokens: 120, OutputTokens: 40, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "other", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, ErrorMessage: "boom", RequestBody: "[user]\nhi"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "openai", all[0].Provider, "newest first")
	assert.False(t, all[0].Success)
	assert.Equal(t, "boom", all[0].ErrorMessage)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	trivia, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "trivia", Limit: 1})
	require.NoError(t, err)
	require.Len(t, trivia, 1)
	assert.Equal(t, 120, trivia[0].InputTokens)

	one, err := repo.GetLLMEvent(ctx, all[0].ID)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "[user]\nhi", one.RequestBody)

	none, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, none)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "trivia", Calls: 2, InputTokens: 220, OutputTokens: 90, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "claude-haiku-4-5", Calls: 2, InputTokens: 220, OutputTokens: 90}, byModel[0])
}

func TestMemoryProfileRepo(t *testing.T) {
	repo := NewMemoryProfileRepo()
	ctx := context.Background()

	p := &Profile{ID: "u1", DisplayName: "A", Coins: 10, CollectedStickerIDs: []string{"s1"}}
	require.NoError(t, repo.Put(ctx, p))

	// Mutating the caller's slice must not leak into the repo.
	p.CollectedStickerIDs[0] = "tampered"

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, got.CollectedStickerIDs)

	require.NoError(t, repo.Put(ctx, &Profile{ID: "u1", Coins: 3}, FieldCoins))
	got, _ = repo.Get(ctx, "u1")
	assert.Equal(t, "A", got.DisplayName)
	assert.Equal(t, 3, got.Coins)

	missing, err := repo.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDocumentData(t *testing.T) {
	p := &Profile{ID: "u1", DisplayName: "A", Coins: 7}

	data := documentData(p, ProgressFields)
	assert.Equal(t, map[string]any{
		"coins":                7,
		"collectedStickerIds":  []string{},
		"achievedMilestoneIds": []string{},
	}, data)

	all := documentData(p, nil)
	assert.Len(t, all, len(AllProfileFields))
	assert.Equal(t, "A", all["displayName"])
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("EDUSTICKER_DB", want)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EDUSTICKER_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "edusticker", "edusticker.db"), got)
}
