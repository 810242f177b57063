package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: a reward is waiting
	MascotSleepy                           // Dim, closed eyes: trivia is on cooldown
	MascotWorried                          // Orange: progress is not being saved
)

const mascotIdle = `╭─────╮
│ ◕ ◕ │
│  ◡  │
╰┬───┬╯
 ╰ ★ ╯`

const mascotCelebrating = `╭─────╮
│ ★ ★ │
│  ▽  │ ♪
╰┬───┬╯
 ╰ ★ ╯`

const mascotSleepy = `╭─────╮ z
│ - - │z
│  ﹏  │
╰┬───┬╯
 ╰ ★ ╯`

const mascotWorried = `╭─────╮
│ ◔ ◔ │ !
│  ︵  │
╰┬───┬╯
 ╰ ★ ╯`

// mascotFor picks the variant from the player's state. A pending reward
// wins over everything else.
func mascotFor(snap game.Snapshot, cooldown bool) MascotVariant {
	switch {
	case snap.PendingMilestone != nil:
		return MascotCelebrating
	case snap.Degraded:
		return MascotWorried
	case cooldown:
		return MascotSleepy
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotSleepy:
		art, fg = mascotSleepy, theme.TextDim
	case MascotWorried:
		art, fg = mascotWorried, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
