package catalog

import (
	"fmt"
	"sync"
)

// stickerNames lists the default collection in catalog order. Position
// determines rarity: the first 60 are common, the next 30 rare, the last 10 epic.
var stickerNames = [100]string{
	// Garden
	"Busy Bee", "Ladybird", "Garden Snail", "Earthworm", "Honey Ant",
	"Dragonfly", "Grasshopper", "Caterpillar", "Monarch", "Firefly",
	// Pond
	"Tadpole", "Pond Frog", "Water Strider", "Mallard", "Koi",
	"Newt", "Heron", "Otter", "Kingfisher", "Lily Turtle",
	// Farm
	"Hen", "Piglet", "Lamb", "Goat Kid", "Calf",
	"Pony", "Duckling", "Rooster", "Donkey", "Barn Cat",
	// Forest
	"Squirrel", "Hedgehog", "Red Fox", "Badger", "Woodpecker",
	"Owlet", "Deer Fawn", "Chipmunk", "Raccoon", "Mole",
	// Shore
	"Hermit Crab", "Starfish", "Seagull", "Sand Dollar", "Clownfish",
	"Sea Urchin", "Pelican", "Puffin", "Seahorse", "Jellyfish",
	// Savanna
	"Meerkat", "Zebra Foal", "Warthog", "Gazelle", "Ostrich",
	"Hyena", "Giraffe", "Hippo", "Buffalo", "Flamingo",
	// Rainforest
	"Orangutan", "Sun Bear", "Hornbill", "Tapir", "Tree Frog",
	"Slow Loris", "Proboscis Monkey", "Cassowary", "Birdwing", "Tarsier",
	// Polar
	"Penguin", "Arctic Fox", "Walrus", "Snowy Owl", "Narwhal",
	"Polar Bear", "Reindeer", "Harp Seal", "Beluga", "Ermine",
	// Deep Sea
	"Anglerfish", "Giant Squid", "Manta Ray", "Hammerhead", "Sea Turtle",
	"Octopus", "Sperm Whale", "Nautilus", "Dumbo Octopus", "Coelacanth",
	// Legends
	"Komodo Dragon", "Javan Rhino", "Sumatran Tiger", "Bird of Paradise", "Maleo",
	"Anoa", "Bali Starling", "Dugong", "Javan Hawk-Eagle", "Blue Whale",
}

var defaultMilestones = []Milestone{
	{ID: "m1", Threshold: 10, Message: "Wow! You've collected 10 unique stickers! Keep up the great work!"},
	{ID: "m2", Threshold: 25, Message: "Fantastic! 25 unique stickers! You're a dedicated collector!"},
	{ID: "m3", Threshold: 50, Message: "Amazing! 50 unique stickers! Halfway through the whole collection!"},
	{ID: "m4", Threshold: 75, Message: "Incredible! 75 unique stickers! You're becoming a true scholar of the wild!"},
	{ID: "m5", Threshold: 100, Message: "Congratulations! You've collected all 100 stickers! You are a Master Sticker Scholar!"},
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in 100-sticker catalog with milestones at
// 10, 25, 50, 75 and 100 unique stickers.
func Default() *Catalog {
	defaultOnce.Do(func() {
		stickers := make([]Sticker, len(stickerNames))
		for i, name := range stickerNames {
			pos := i + 1
			stickers[i] = Sticker{
				ID:          fmt.Sprintf("s%d", pos),
				Name:        name,
				Rarity:      rarityForPosition(pos),
				ImageRef:    fmt.Sprintf("stickers/s%d.png", pos),
				Description: fmt.Sprintf("A fascinating creature, the %s, waiting in your sticker book.", name),
			}
		}

		c, err := New(stickers, defaultMilestones)
		if err != nil {
			panic(fmt.Sprintf("catalog: invalid built-in data: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
