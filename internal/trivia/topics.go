package trivia

import "math/rand/v2"

// Topics is the fixed list a session draws question topics from.
var Topics = []string{
	"Indonesian Language",
	"Indonesian History",
	"Basic Mathematics",
	"Social Studies",
	"Natural Sciences",
	"Indonesian Geography",
	"Indonesian Culture",
	"World General Knowledge",
}

// PickTopics draws n topics uniformly at random from topics, independently
// for each slot. Repeats are allowed.
func PickTopics(rng *rand.Rand, topics []string, n int) []string {
	if len(topics) == 0 || n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = topics[rng.IntN(len(topics))]
	}
	return out
}
