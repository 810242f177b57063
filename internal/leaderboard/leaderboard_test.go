package leaderboard

import "testing"

func TestBuild_RanksByUniqueCount(t *testing.T) {
	entries := Build([]Collector{
		{UserID: "a", DisplayName: "A", StickerIDs: []string{"1", "2", "3"}},
		{UserID: "b", DisplayName: "B", StickerIDs: []string{"1", "2", "3", "4"}},
		{UserID: "c", DisplayName: "C", StickerIDs: []string{"5", "6"}},
	}, 100)

	want := []struct {
		name  string
		rank  int
		count int
	}{
		{"B", 1, 4},
		{"A", 2, 3},
		{"C", 3, 2},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		e := entries[i]
		if e.Name != w.name || e.Rank != w.rank || e.UniqueStickers != w.count {
			t.Errorf("entry[%d] = %s rank %d count %d, want %s rank %d count %d",
				i, e.Name, e.Rank, e.UniqueStickers, w.name, w.rank, w.count)
		}
	}
}

func TestBuild_TieBreakByName(t *testing.T) {
	entries := Build([]Collector{
		{UserID: "z", DisplayName: "zed", StickerIDs: []string{"1"}},
		{UserID: "a", DisplayName: "Amy", StickerIDs: []string{"2"}},
		{UserID: "m", DisplayName: "mo", StickerIDs: []string{"3"}},
	}, 100)

	got := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	want := []string{"Amy", "mo", "zed"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBuild_EqualEntriesKeepInputOrder(t *testing.T) {
	entries := Build([]Collector{
		{UserID: "first", DisplayName: "Sam", StickerIDs: []string{"1", "2"}},
		{UserID: "second", DisplayName: "sam", StickerIDs: []string{"3", "4"}},
		{UserID: "top", DisplayName: "Zoe", StickerIDs: []string{"1", "2", "3"}},
	}, 100)

	got := []string{entries[0].UserID, entries[1].UserID, entries[2].UserID}
	want := []string{"top", "first", "second"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBuild_CountsUniqueIDsOnly(t *testing.T) {
	entries := Build([]Collector{
		{UserID: "a", DisplayName: "A", StickerIDs: []string{"1", "1", "2"}},
	}, 10)
	if entries[0].UniqueStickers != 2 {
		t.Errorf("UniqueStickers = %d, want 2", entries[0].UniqueStickers)
	}
}

func TestBuild_NameFallback(t *testing.T) {
	entries := Build([]Collector{
		{UserID: "1", DisplayName: "  ", Email: "kid@example.com", StickerIDs: []string{"a", "b"}},
		{UserID: "2", StickerIDs: []string{"a"}},
	}, 10)

	if entries[0].Name != "kid@example.com" {
		t.Errorf("entry[0].Name = %q, want email fallback", entries[0].Name)
	}
	if entries[1].Name != AnonymousName {
		t.Errorf("entry[1].Name = %q, want %q", entries[1].Name, AnonymousName)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		rank, unique, size int
		want               Tier
	}{
		{1, 0, 100, TierGrandScholar},
		{2, 0, 100, TierStickerExpert},
		{3, 0, 100, TierSeasonedCollector},
		{4, 50, 100, TierDedicatedCollector},
		{4, 49, 100, TierCollector},
		{9, 100, 100, TierDedicatedCollector},
		{5, 3, 0, TierCollector},
	}
	for _, tt := range tests {
		if got := TierFor(tt.rank, tt.unique, tt.size); got != tt.want {
			t.Errorf("TierFor(%d, %d, %d) = %s, want %s", tt.rank, tt.unique, tt.size, got, tt.want)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := Build(nil, 100); len(got) != 0 {
		t.Errorf("Build(nil) = %v, want empty", got)
	}
}

func TestTierTitles(t *testing.T) {
	seen := map[string]bool{}
	for _, tier := range AllTiers() {
		title := tier.Title()
		if title == "" || seen[title] {
			t.Errorf("tier %s has empty or duplicate title %q", tier, title)
		}
		seen[title] = true
	}
}
