package cmd

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/edusticker/internal/auth"
	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/game"
	"github.com/abhisek/edusticker/internal/llm"
	"github.com/abhisek/edusticker/internal/store"
	"github.com/abhisek/edusticker/internal/trivia"
)

// Profile store backends selected by EDUSTICKER_PROFILE_STORE.
const (
	profileStoreSQLite    = "sqlite"
	profileStoreFirestore = "firestore"
	profileStoreMemory    = "memory"
)

// backend is everything a command needs from persistence.
type backend struct {
	store    *store.Store
	profiles store.ProfileRepo
	closers  []func() error
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			log.Warn().Err(err).Msg("closing backend")
		}
	}
}

// openBackend opens the sqlite store and the configured profile repository.
func openBackend(ctx context.Context, dbPath string) (*backend, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	b := &backend{store: st, closers: []func() error{st.Close}}

	kind := os.Getenv("EDUSTICKER_PROFILE_STORE")
	switch kind {
	case "", profileStoreSQLite:
		b.profiles = st.ProfileRepo()
	case profileStoreMemory:
		b.profiles = store.NewMemoryProfileRepo()
	case profileStoreFirestore:
		project := os.Getenv("EDUSTICKER_FIRESTORE_PROJECT")
		if project == "" {
			b.Close()
			return nil, fmt.Errorf("EDUSTICKER_FIRESTORE_PROJECT is required for the firestore profile store")
		}
		client, err := firestore.NewClient(ctx, project)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect to firestore: %w", err)
		}
		b.closers = append(b.closers, client.Close)
		b.profiles = store.NewFirestoreProfileRepo(client)
	default:
		b.Close()
		return nil, fmt.Errorf("unknown profile store %q", kind)
	}
	log.Debug().Str("profile_store", kind).Str("db", dbPath).Msg("backend opened")
	return b, nil
}

// questionGenerator returns an LLM-backed generator when a provider is
// configured, and the built-in question bank otherwise.
func questionGenerator(ctx context.Context, events store.EventRepo) trivia.Generator {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			log.Info().Msg("no LLM provider configured, using the built-in question bank")
			return trivia.NewStaticGenerator(nil)
		}
		cfg = discovered
	}

	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		log.Warn().Err(err).Msg("LLM provider unavailable, using the built-in question bank")
		return trivia.NewStaticGenerator(nil)
	}
	log.Info().Str("provider", cfg.Provider).Str("model", provider.ModelID()).Msg("LLM question generator ready")
	return trivia.New(provider, trivia.ConfigFromEnv())
}

// newController wires the game controller over b.
func newController(ctx context.Context, b *backend, effects game.Effects) *game.Controller {
	logger := log.Logger
	return game.New(game.DefaultConfig(), game.Deps{
		Auth:      auth.NewService(b.store.AccountRepo(), bcrypt.DefaultCost),
		Profiles:  b.profiles,
		Lockouts:  b.store.LocalRepo(),
		Questions: questionGenerator(ctx, b.store.EventRepo()),
		Catalog:   catalog.Default(),
		Effects:   effects,
		Logger:    &logger,
	})
}
