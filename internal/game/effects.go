package game

// Sound names a feedback cue.
type Sound string

const (
	SoundGachaSpin       Sound = "gachaSpin"
	SoundStickerReveal   Sound = "stickerReveal"
	SoundCorrectAnswer   Sound = "correctAnswer"
	SoundIncorrectAnswer Sound = "incorrectAnswer"
	SoundRewardFanfare   Sound = "rewardFanfare"
	SoundClick           Sound = "click"
)

// Effects plays feedback cues. Play is called after the state change and
// outside the controller lock; implementations must return promptly.
type Effects interface {
	Play(Sound)
}

type nopEffects struct{}

func (nopEffects) Play(Sound) {}

func (c *Controller) play(sounds ...Sound) {
	for _, s := range sounds {
		c.effects.Play(s)
	}
}
