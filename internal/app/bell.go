package app

import (
	"bytes"
	"io"
	"sync"

	"github.com/abhisek/edusticker/internal/game"
)

// Bell plays sound cues as terminal bells. It writes to its own stream so
// it never blocks the renderer.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

var _ game.Effects = (*Bell)(nil)

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// rings returns how many bells a sound is worth. Frequent cues stay silent.
func rings(s game.Sound) int {
	switch s {
	case game.SoundRewardFanfare:
		return 2
	case game.SoundStickerReveal, game.SoundCorrectAnswer, game.SoundIncorrectAnswer:
		return 1
	default:
		return 0
	}
}

func (b *Bell) Play(s game.Sound) {
	n := rings(s)
	if n == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write(bytes.Repeat([]byte{'\a'}, n))
}
