// Package book is the sticker album: every sticker in the catalog, grouped
// by rarity, with the player's collection filled in.
package book

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/screen"
	"github.com/abhisek/edusticker/internal/ui/components"
	"github.com/abhisek/edusticker/internal/ui/layout"
	"github.com/abhisek/edusticker/internal/ui/theme"
)

const (
	cellWidth   = 14
	hiddenLabel = "???"
)

var tabs = []catalog.Rarity{catalog.RarityCommon, catalog.RarityRare, catalog.RarityEpic}

// BookScreen shows the sticker album.
type BookScreen struct {
	ctrl   *game.Controller
	tab    int
	scroll int
}

var _ screen.Screen = (*BookScreen)(nil)
var _ screen.KeyHintProvider = (*BookScreen)(nil)

// New creates the sticker book.
func New(ctrl *game.Controller) *BookScreen {
	return &BookScreen{ctrl: ctrl}
}

func (b *BookScreen) Init() tea.Cmd { return nil }

func (b *BookScreen) Title() string { return "Sticker Book" }

func (b *BookScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Rarity"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (b *BookScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return b, nil
	}
	switch kmsg.String() {
	case "left", "h":
		b.tab = (b.tab + len(tabs) - 1) % len(tabs)
		b.scroll = 0
	case "right", "l", "tab":
		b.tab = (b.tab + 1) % len(tabs)
		b.scroll = 0
	case "up", "k":
		if b.scroll > 0 {
			b.scroll--
		}
	case "down", "j":
		b.scroll++
	}
	return b, nil
}

// stickersFor returns the catalog stickers of rarity r in catalog order.
func stickersFor(cat *catalog.Catalog, r catalog.Rarity) []catalog.Sticker {
	var out []catalog.Sticker
	for _, s := range cat.Stickers() {
		if s.Rarity == r {
			out = append(out, s)
		}
	}
	return out
}

func (b *BookScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	snap := b.ctrl.Snapshot()
	cat := b.ctrl.Catalog()

	owned := make(map[string]bool, len(snap.CollectedStickerIDs))
	for _, id := range snap.CollectedStickerIDs {
		owned[id] = true
	}

	progress := components.ProgressBar{
		Label: "Collected",
		Value: len(snap.CollectedStickerIDs),
		Max:   cat.Len(),
		Width: cw,
	}

	compact := layout.IsCompactHeight(height + 8)
	milestoneLines := 0
	if !compact {
		milestoneLines = len(cat.Milestones()) + 2
	}
	visibleRows := max(height-10-milestoneLines, 2)

	sections := []string{
		progress.View(),
		b.renderTabs(cat, owned),
		b.renderGrid(stickersFor(cat, tabs[b.tab]), owned, cw, visibleRows),
	}
	if !compact {
		sections = append(sections, renderMilestones(b.ctrl.Milestones(), len(snap.CollectedStickerIDs)))
	}

	return layout.Center(strings.Join(sections, "\n\n"), width, height)
}

func (b *BookScreen) renderTabs(cat *catalog.Catalog, owned map[string]bool) string {
	counts := cat.CountByRarity()
	have := make(map[catalog.Rarity]int, len(tabs))
	for id := range owned {
		if s, ok := cat.Sticker(id); ok {
			have[s.Rarity]++
		}
	}

	parts := make([]string, len(tabs))
	for i, r := range tabs {
		label := fmt.Sprintf(" %s %d/%d ", strings.ToUpper(string(r)), have[r], counts[r])
		style := lipgloss.NewStyle().Foreground(components.RarityColor(r))
		if i == b.tab {
			style = style.Bold(true).Reverse(true)
		}
		parts[i] = style.Render(label)
	}
	return strings.Join(parts, "  ")
}

func (b *BookScreen) renderGrid(stickers []catalog.Sticker, owned map[string]bool, cw, visibleRows int) string {
	cols := max(cw/cellWidth, 1)
	rows := (len(stickers) + cols - 1) / cols
	b.scroll = min(b.scroll, max(rows-visibleRows, 0))

	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	var lines []string
	for r := b.scroll; r < rows && r < b.scroll+visibleRows; r++ {
		var row []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(stickers) {
				break
			}
			s := stickers[i]
			if owned[s.ID] {
				row = append(row, cell.Foreground(components.RarityColor(s.Rarity)).Render(truncate(s.Name, cellWidth-1)))
			} else {
				row = append(row, cell.Foreground(theme.TextDim).Render(hiddenLabel))
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	if rows > visibleRows {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("rows %d-%d of %d", b.scroll+1, min(b.scroll+visibleRows, rows), rows)))
	}
	return strings.Join(lines, "\n")
}

func renderMilestones(ms []game.MilestoneStatus, count int) string {
	lines := []string{theme.Subtitle.Render("Rewards")}
	for _, m := range ms {
		mark, style := "○", lipgloss.NewStyle().Foreground(theme.TextDim)
		switch {
		case m.Achieved:
			mark, style = "✓", lipgloss.NewStyle().Foreground(theme.Success)
		case count >= m.Threshold:
			mark, style = "★", lipgloss.NewStyle().Foreground(theme.ArcadeYellow)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %3d stickers", mark, m.Threshold)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
