package catalog

// Rarity represents how rare a sticker is.
type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"
)

// AllRarities returns all rarity levels in ascending order.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic}
}

// DisplayName returns a human-readable name for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	default:
		return string(r)
	}
}

// Valid reports whether r is a known rarity.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic:
		return true
	}
	return false
}

// rarityForPosition assigns rarity by 1-based catalog position.
func rarityForPosition(pos int) Rarity {
	switch {
	case pos > 90:
		return RarityEpic
	case pos > 60:
		return RarityRare
	default:
		return RarityCommon
	}
}
