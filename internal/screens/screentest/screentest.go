// Package screentest builds a signed-in controller over an in-memory store
// for screen tests.
package screentest

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"testing"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/edusticker/internal/auth"
	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/store"
	"github.com/abhisek/edusticker/internal/trivia"
)

// Email and Password are the credentials of the account SignedIn creates.
const (
	Email    = "kid@example.com"
	Password = "secret1"
)

var dbCounter atomic.Int64

// Env is a controller with its backing store.
type Env struct {
	Ctrl  *game.Controller
	Store *store.Store
}

// New returns a signed-out controller.
func New(t *testing.T) *Env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	rng := rand.New(rand.NewPCG(3, 5))
	ctrl := game.New(game.DefaultConfig(), game.Deps{
		Auth:      auth.NewService(st.AccountRepo(), bcrypt.MinCost),
		Profiles:  st.ProfileRepo(),
		Lockouts:  st.LocalRepo(),
		Questions: trivia.NewStaticGenerator(rand.New(rand.NewPCG(9, 9))),
		Catalog:   catalog.Default(),
		Rand:      rng,
	})
	t.Cleanup(func() { ctrl.Flush(context.Background()) })
	return &Env{Ctrl: ctrl, Store: st}
}

// SignedIn returns a controller with a freshly registered player.
func SignedIn(t *testing.T) *Env {
	t.Helper()
	env := New(t)
	if err := env.Ctrl.Register(context.Background(), Email, Password, "Kid"); err != nil {
		t.Fatalf("register: %v", err)
	}
	return env
}

// Key builds a key press for a named key or a single printable character.
func Key(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	r := []rune(name)[0]
	return tea.KeyPressMsg{Code: r, Text: name}
}

// Type sends each rune of text as a key press to update.
func Type(text string, update func(tea.Msg)) {
	for _, r := range text {
		update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}
