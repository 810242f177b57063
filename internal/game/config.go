package game

import "time"

// Config holds the economy and session constants.
type Config struct {
	// InitialCoins seeds a brand-new profile.
	InitialCoins int

	// GachaCost is the price of one sticker pull.
	GachaCost int

	// CorrectAnswerBonus is awarded for each correct trivia answer.
	CorrectAnswerBonus int

	// QuestionsPerSession is the number of questions fetched per trivia session.
	QuestionsPerSession int

	// Lives is the number of wrong answers that end a trivia session.
	Lives int

	// SaveTimeout bounds a single profile write.
	SaveTimeout time.Duration
}

// DefaultConfig returns the standard game constants.
func DefaultConfig() Config {
	return Config{
		InitialCoins:        100,
		GachaCost:           25,
		CorrectAnswerBonus:  5,
		QuestionsPerSession: 10,
		Lives:               3,
		SaveTimeout:         10 * time.Second,
	}
}
