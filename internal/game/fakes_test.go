package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhisek/edusticker/internal/auth"
	"github.com/abhisek/edusticker/internal/catalog"
	"github.com/abhisek/edusticker/internal/store"
	"github.com/abhisek/edusticker/internal/trivia"
)

type fakeUser struct {
	identity auth.Identity
	password string
}

type fakeAuth struct {
	mu          sync.Mutex
	users       map[string]*fakeUser
	byID        map[string]*fakeUser
	registerErr error
	updateErr   error
	updateGate  chan struct{}
	updates     []string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: make(map[string]*fakeUser), byID: make(map[string]*fakeUser)}
}

func (a *fakeAuth) Register(_ context.Context, email, password, displayName string) (*auth.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.registerErr != nil {
		return nil, a.registerErr
	}
	if len(password) < auth.MinPasswordLength {
		return nil, auth.ErrWeakPassword
	}
	if _, ok := a.users[email]; ok {
		return nil, auth.ErrEmailInUse
	}
	u := &fakeUser{
		identity: auth.Identity{ID: fmt.Sprintf("user-%d", len(a.users)+1), Email: email, DisplayName: displayName},
		password: password,
	}
	a.users[email] = u
	a.byID[u.identity.ID] = u
	id := u.identity
	return &id, nil
}

func (a *fakeAuth) Login(_ context.Context, email, password string) (*auth.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u, ok := a.users[email]
	if !ok || u.password != password {
		return nil, auth.ErrInvalidCredentials
	}
	id := u.identity
	return &id, nil
}

func (a *fakeAuth) UpdateDisplayName(_ context.Context, userID, name string) error {
	a.mu.Lock()
	gate := a.updateGate
	a.mu.Unlock()
	if gate != nil {
		<-gate
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.updates = append(a.updates, name)
	if a.updateErr != nil {
		return a.updateErr
	}
	if u, ok := a.byID[userID]; ok {
		u.identity.DisplayName = name
	}
	return nil
}

// spyProfiles wraps the in-memory repo with failure injection, an optional
// gate that holds every Put, and write accounting.
type spyProfiles struct {
	*store.MemoryProfileRepo

	mu      sync.Mutex
	getErr  error
	putErr  error
	putGate chan struct{}

	puts        atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newSpyProfiles() *spyProfiles {
	return &spyProfiles{MemoryProfileRepo: store.NewMemoryProfileRepo()}
}

func (s *spyProfiles) setGetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

func (s *spyProfiles) setPutErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErr = err
}

func (s *spyProfiles) setGate(ch chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putGate = ch
}

func (s *spyProfiles) Get(ctx context.Context, id string) (*store.Profile, error) {
	s.mu.Lock()
	err := s.getErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.MemoryProfileRepo.Get(ctx, id)
}

func (s *spyProfiles) Put(ctx context.Context, p *store.Profile, fields ...store.ProfileField) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	s.puts.Add(1)

	s.mu.Lock()
	gate, err := s.putGate, s.putErr
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return err
	}
	return s.MemoryProfileRepo.Put(ctx, p, fields...)
}

type memLockouts struct {
	mu sync.Mutex
	kv map[string]string
}

func newMemLockouts() *memLockouts {
	return &memLockouts{kv: make(map[string]string)}
}

func (m *memLockouts) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *memLockouts) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}

func (m *memLockouts) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.kv, key)
	return nil
}

func (m *memLockouts) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.kv[key]
	return ok
}

// fakeQuestions always answers with option 0 correct. failAt makes the
// nth call (1-based) fail; block makes every call wait for ctx.
type fakeQuestions struct {
	mu     sync.Mutex
	calls  int
	failAt int
	block  bool
}

var errGenerator = errors.New("generator down")

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func (q *fakeQuestions) Generate(ctx context.Context, topic string) (*trivia.Question, error) {
	q.mu.Lock()
	q.calls++
	n, failAt, block := q.calls, q.failAt, q.block
	q.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if n == failAt {
		return nil, errGenerator
	}
	return &trivia.Question{
		Topic:        topic,
		Text:         fmt.Sprintf("Question %d?", n),
		Options:      []string{"right", "wrong 1", "wrong 2", "wrong 3"},
		CorrectIndex: 0,
	}, nil
}

func (q *fakeQuestions) callCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls
}

type recordEffects struct {
	mu     sync.Mutex
	sounds []Sound
}

func (r *recordEffects) Play(s Sound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sounds = append(r.sounds, s)
}

func (r *recordEffects) played() []Sound {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sound(nil), r.sounds...)
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type harness struct {
	ctrl      *Controller
	auth      *fakeAuth
	profiles  *spyProfiles
	lockouts  *memLockouts
	questions *fakeQuestions
	effects   *recordEffects
	clock     *testClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		auth:      newFakeAuth(),
		profiles:  newSpyProfiles(),
		lockouts:  newMemLockouts(),
		questions: &fakeQuestions{},
		effects:   &recordEffects{},
		clock:     &testClock{t: time.Date(2026, time.March, 10, 15, 4, 5, 0, time.Local)},
	}
	h.ctrl = h.newController()
	return h
}

// newController builds another controller over the same backends, as a
// restarted process would.
func (h *harness) newController() *Controller {
	c := New(DefaultConfig(), Deps{
		Auth:      h.auth,
		Profiles:  h.profiles,
		Lockouts:  h.lockouts,
		Questions: h.questions,
		Catalog:   catalog.Default(),
		Effects:   h.effects,
		Now:       h.clock.Now,
		Rand:      rand.New(rand.NewPCG(7, 11)),
	})
	return c
}

// signUp registers a player and waits for the seed write.
func (h *harness) signUp(t *testing.T) {
	t.Helper()
	if err := h.ctrl.Register(context.Background(), "kid@example.com", "secret1", "Kid"); err != nil {
		t.Fatalf("register: %v", err)
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) add(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) milestones() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var ids []string
	for _, ev := range l.events {
		if ev.Kind == EventMilestone {
			ids = append(ids, ev.Milestone.ID)
		}
	}
	return ids
}

func (l *eventLog) count(kind EventKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func watch(c *Controller) *eventLog {
	l := &eventLog{}
	c.Subscribe(l.add)
	return l
}
