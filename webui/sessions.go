package webui

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"roadwaysledger/ledger"
)

const (
	sessionCookie  = "ledger_session"
	sessionIdleTTL = 12 * time.Hour
)

type sessionEntry struct {
	app      *ledger.App
	lastSeen time.Time
}

// sessionStore gives every browser its own ledger.App, keyed by a random
// cookie value. Entries idle longer than ttl are dropped.
type sessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	newApp  func() *ledger.App
	ttl     time.Duration
	now     func() time.Time
	secure  bool
}

func newSessionStore(newApp func() *ledger.App, now func() time.Time, secure bool) *sessionStore {
	return &sessionStore{
		entries: map[string]*sessionEntry{},
		newApp:  newApp,
		ttl:     sessionIdleTTL,
		now:     now,
		secure:  secure,
	}
}

// lookup returns the browser's app, or false when it has none.
func (s *sessionStore) lookup(r *http.Request) (*ledger.App, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[c.Value]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, c.Value)
		return nil, false
	}
	e.lastSeen = now
	return e.app, true
}

// get returns the browser's app, starting a new session when needed.
func (s *sessionStore) get(w http.ResponseWriter, r *http.Request) *ledger.App {
	if app, ok := s.lookup(r); ok {
		return app
	}

	id := uuid.NewString()
	app := s.newApp()
	now := s.now()

	s.mu.Lock()
	s.pruneLocked(now)
	s.entries[id] = &sessionEntry{app: app, lastSeen: now}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return app
}

func (s *sessionStore) pruneLocked(now time.Time) {
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
		}
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
