// Package minigame implements the reveal-the-stars gate that must be won
// before a paid sticker pull is granted.
package minigame

import (
	"math/rand/v2"
	"sync"
)

const (
	// CellCount is the number of cells on the board.
	CellCount = 6

	// WinCells is the number of star cells that must be found to win.
	WinCells = 5
)

// State is the gate's lifecycle state.
type State int

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Cell is a single board position.
type Cell struct {
	Star     bool
	Revealed bool
}

// Gate is one board of the mini-game. Methods are safe for concurrent use.
type Gate struct {
	mu      sync.Mutex
	cells   [CellCount]Cell
	found   int
	state   State
	claimed bool
}

// New builds a board with WinCells stars and one skull, shuffled with rng.
// A nil rng uses the global source.
func New(rng *rand.Rand) *Gate {
	g := &Gate{state: Playing}
	for i := 0; i < WinCells; i++ {
		g.cells[i].Star = true
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(CellCount, func(i, j int) {
		g.cells[i], g.cells[j] = g.cells[j], g.cells[i]
	})
	return g
}

// Reveal uncovers the cell at index and returns the resulting state.
// Out-of-range indices, already revealed cells and finished games are no-ops.
func (g *Gate) Reveal(index int) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Playing || index < 0 || index >= CellCount {
		return g.state
	}
	c := &g.cells[index]
	if c.Revealed {
		return g.state
	}
	c.Revealed = true

	if !c.Star {
		g.state = Lost
		return g.state
	}

	g.found++
	if g.found == WinCells {
		g.state = Won
	}
	return g.state
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Found returns the number of stars revealed so far.
func (g *Gate) Found() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.found
}

// Cells returns a copy of the board. Hidden cells still carry their Star
// flag; renderers must only show it for revealed cells or finished games.
func (g *Gate) Cells() [CellCount]Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cells
}

// Claim consumes the win. It returns true exactly once, and only for a won gate.
func (g *Gate) Claim() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Won || g.claimed {
		return false
	}
	g.claimed = true
	return true
}
