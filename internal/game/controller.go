// Package game implements the game state controller: the single owner of a
// signed-in player's coins, sticker collection, milestones, trivia session
// and sticker pulls. Views drive it through intent methods and observe it
// through Subscribe and Snapshot.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/edusticker/internal/auth"
	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/lockout"
	"github.com/abhisek/edusticker/internal/minigame"
	"github.com/abhisek/edusticker/internal/store"
	"github.com/abhisek/edusticker/internal/trivia"
	"github.com/rs/zerolog"
)

// Authenticator is the identity backend. *auth.Service implements it.
type Authenticator interface {
	Register(ctx context.Context, email, password, displayName string) (*auth.Identity, error)
	Login(ctx context.Context, email, password string) (*auth.Identity, error)
	UpdateDisplayName(ctx context.Context, userID, name string) error
}

// Deps are the controller's collaborators. Auth, Profiles, Lockouts,
// Questions and Catalog are required.
type Deps struct {
	Auth      Authenticator
	Profiles  store.ProfileRepo
	Lockouts  lockout.Store
	Questions trivia.Generator
	Catalog   *catalog.Catalog

	// Effects defaults to silence.
	Effects Effects
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// Rand defaults to a randomly seeded source.
	Rand *rand.Rand
}

// User is the signed-in identity.
type User struct {
	ID          string
	Email       string
	DisplayName string
}

// session is everything that exists only while a user is signed in.
type session struct {
	user     User
	progress *progress // nil until the profile is loaded

	degraded     bool
	updatingName bool

	pendingMilestone string
	lastPulled       *PullResult
	pull             *minigame.Gate

	trivia triviaState
}

// Controller owns all mutable game state for one process. All methods are
// safe for concurrent use.
type Controller struct {
	cfg       Config
	auth      Authenticator
	profiles  store.ProfileRepo
	keeper    *lockout.Keeper
	questions trivia.Generator
	catalog   *catalog.Catalog
	effects   Effects
	log       zerolog.Logger
	now       func() time.Time

	mu      sync.Mutex
	rng     *rand.Rand
	session *session

	// Saver state, guarded by mu.
	dirty    bool
	saving   bool
	saveIdle chan struct{}
	saveErr  error

	subsMu  sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// New creates a signed-out controller.
func New(cfg Config, deps Deps) *Controller {
	c := &Controller{
		cfg:       cfg,
		auth:      deps.Auth,
		profiles:  deps.Profiles,
		questions: deps.Questions,
		catalog:   deps.Catalog,
		effects:   deps.Effects,
		now:       deps.Now,
		rng:       deps.Rand,
		subs:      make(map[int]func(Event)),
	}
	if c.effects == nil {
		c.effects = nopEffects{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if deps.Logger != nil {
		c.log = deps.Logger.With().Str("component", "game").Logger()
	} else {
		c.log = zerolog.Nop()
	}
	c.keeper = lockout.NewKeeper(deps.Lockouts, c.now)
	return c
}

// Config returns the controller's constants.
func (c *Controller) Config() Config { return c.cfg }

// Catalog returns the sticker catalog.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Register creates an account, signs it in and seeds its profile. A
// non-nil error wrapping ErrProfileLoadDegraded leaves a usable session.
func (c *Controller) Register(ctx context.Context, email, password, displayName string) error {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return &RegistrationError{Reason: ReasonInvalidName, Err: ErrInvalidName}
	}
	if c.signedIn() {
		return ErrInvalidState
	}

	id, err := c.auth.Register(ctx, email, password, name)
	if err != nil {
		return registrationError(err)
	}
	c.log.Info().Str("user_id", id.ID).Msg("account registered")
	return c.begin(ctx, id)
}

func registrationError(err error) *RegistrationError {
	reason := ReasonUnavailable
	switch {
	case errors.Is(err, auth.ErrInvalidEmail):
		reason = ReasonInvalidEmail
	case errors.Is(err, auth.ErrWeakPassword):
		reason = ReasonWeakPassword
	case errors.Is(err, auth.ErrEmailInUse):
		reason = ReasonEmailInUse
	}
	return &RegistrationError{Reason: reason, Err: err}
}

// Login authenticates and loads the profile. A non-nil error wrapping
// ErrProfileLoadDegraded leaves a usable session.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	if c.signedIn() {
		return ErrInvalidState
	}
	id, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	return c.begin(ctx, id)
}

func (c *Controller) begin(ctx context.Context, id *auth.Identity) error {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		return ErrInvalidState
	}
	c.session = &session{user: User{ID: id.ID, Email: id.Email, DisplayName: id.DisplayName}}
	c.mu.Unlock()

	c.publish(Event{Kind: EventSession})
	return c.LoadProfile(ctx)
}

// loadedLocked reports whether the session holds real, saveable progress.
func (s *session) loadedLocked() bool {
	return s.progress != nil && !s.degraded
}

func (c *Controller) signedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// LoadProfile reads the signed-in user's profile, seeding a default one on
// first sign-in, and restores any trivia cooldown. When the profile cannot
// be read or seeded the session continues on an in-memory default profile
// that is never written back, and the returned error wraps
// ErrProfileLoadDegraded. Only a degraded session may be reloaded; a loaded
// one returns ErrInvalidState so unsaved progress is never replaced.
func (c *Controller) LoadProfile(ctx context.Context) error {
	c.mu.Lock()
	sess := c.session
	if sess != nil && sess.loadedLocked() {
		c.mu.Unlock()
		return ErrInvalidState
	}
	c.mu.Unlock()
	if sess == nil {
		return ErrNotAuthenticated
	}
	uid := sess.user.ID

	p, err := c.profiles.Get(ctx, uid)
	if err == nil && p == nil {
		p = c.defaultProfile(sess.user)
		if err = c.profiles.Put(ctx, p); err == nil {
			c.log.Info().Str("user_id", uid).Msg("seeded new profile")
		}
	}

	cooldown, locked, lerr := c.keeper.Until(ctx, uid)
	if lerr != nil {
		c.log.Warn().Err(lerr).Str("user_id", uid).Msg("could not read trivia cooldown")
	}

	c.mu.Lock()
	if c.session != sess {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	if sess.loadedLocked() {
		// A concurrent load finished first.
		c.mu.Unlock()
		return ErrInvalidState
	}
	if err != nil {
		c.log.Warn().Err(err).Str("user_id", uid).Msg("profile load degraded, using defaults")
		sess.progress = newProgress(c.cfg.InitialCoins)
		sess.degraded = true
	} else {
		sess.progress = c.progressFrom(p)
		sess.degraded = false
		if name := strings.TrimSpace(p.DisplayName); name != "" {
			sess.user.DisplayName = name
		}
	}
	if locked {
		sess.trivia.cooldownEnd = cooldown
	}
	events := []Event{{Kind: EventSession}}
	var sounds []Sound
	if m, ok := c.evaluateMilestonesLocked(); ok {
		events = append(events, Event{Kind: EventMilestone, Milestone: &m})
		sounds = append(sounds, SoundRewardFanfare)
	}
	c.mu.Unlock()

	c.publish(events...)
	c.play(sounds...)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrProfileLoadDegraded, err)
	}
	return nil
}

func (c *Controller) defaultProfile(u User) *store.Profile {
	return &store.Profile{
		ID:                   u.ID,
		DisplayName:          u.DisplayName,
		Email:                u.Email,
		Coins:                c.cfg.InitialCoins,
		CollectedStickerIDs:  []string{},
		AchievedMilestoneIDs: []string{},
	}
}

// progressFrom adopts a stored profile, dropping ids the catalog does not
// know and any duplicates.
func (c *Controller) progressFrom(p *store.Profile) *progress {
	pr := newProgress(max(p.Coins, 0))
	for _, id := range p.CollectedStickerIDs {
		if c.catalog.Has(id) {
			pr.addSticker(id)
		}
	}
	for _, id := range p.AchievedMilestoneIDs {
		if _, ok := c.catalog.Milestone(id); ok {
			pr.addMilestone(id)
		}
	}
	return pr
}

// Logout ends the session. A trivia batch still loading is cancelled and
// nothing is saved after this returns, though a save already in flight
// completes.
func (c *Controller) Logout() {
	c.mu.Lock()
	sess := c.session
	if sess == nil {
		c.mu.Unlock()
		return
	}
	if sess.trivia.cancel != nil {
		sess.trivia.cancel()
	}
	c.session = nil
	c.dirty = false
	c.saveErr = nil
	c.mu.Unlock()

	c.log.Info().Str("user_id", sess.user.ID).Msg("signed out")
	c.publish(Event{Kind: EventSession})
}

// UpdateDisplayName renames the signed-in user in both the identity backend
// and the profile. If the profile write fails the identity change is rolled
// back. Only one update may be in flight.
func (c *Controller) UpdateDisplayName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}

	c.mu.Lock()
	sess := c.session
	if sess == nil {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	if sess.updatingName {
		c.mu.Unlock()
		return ErrUpdateInProgress
	}
	sess.updatingName = true
	old := sess.user.DisplayName
	uid := sess.user.ID
	c.mu.Unlock()

	err := c.auth.UpdateDisplayName(ctx, uid, name)
	if err == nil {
		err = c.profiles.Put(ctx, &store.Profile{ID: uid, DisplayName: name}, store.FieldDisplayName)
		if err != nil {
			if rerr := c.auth.UpdateDisplayName(context.WithoutCancel(ctx), uid, old); rerr != nil {
				c.log.Error().Err(rerr).Str("user_id", uid).Msg("could not roll back display name")
			}
		}
	}

	c.mu.Lock()
	sess.updatingName = false
	if err == nil && c.session == sess {
		sess.user.DisplayName = name
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn().Err(err).Str("user_id", uid).Msg("display name update failed")
		return fmt.Errorf("update display name: %w", err)
	}
	c.publish(Event{Kind: EventProfile})
	return nil
}

// requireLoadedLocked returns the session once its profile is available.
func (c *Controller) requireLoadedLocked() (*session, error) {
	if c.session == nil {
		return nil, ErrNotAuthenticated
	}
	if c.session.progress == nil {
		return nil, ErrInvalidState
	}
	return c.session, nil
}
