package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

// RarityColor returns the display color for a rarity.
func RarityColor(r catalog.Rarity) color.Color {
	switch r {
	case catalog.RarityEpic:
		return theme.RarityEpic
	case catalog.RarityRare:
		return theme.RarityRare
	default:
		return theme.RarityCommon
	}
}

// RarityBadge renders the rarity as an upper-case label with stars.
func RarityBadge(r catalog.Rarity) string {
	stars := "★"
	switch r {
	case catalog.RarityRare:
		stars = "★★"
	case catalog.RarityEpic:
		stars = "★★★"
	}
	return lipgloss.NewStyle().
		Foreground(RarityColor(r)).
		Bold(true).
		Render(stars + " " + strings.ToUpper(string(r)))
}

// StickerCard renders a sticker face-up at width w.
func StickerCard(s catalog.Sticker, w int) string {
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.Name)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Width(w - 6).Align(lipgloss.Center).Render(s.Description)

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(RarityColor(s.Rarity)).
		Width(w).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, name, RarityBadge(s.Rarity), "", desc))
}
