// Package session holds the authenticated identity of one storefront user.
// A Session is read by every component that needs the user's email; only the
// paired Listener, handed to the authentication flow, writes it.
package session

import (
	"context"
	"sync"
	"time"

	"grocery.GO/model/entity"
)

type Session struct {
	id       string
	mu       sync.RWMutex
	identity *entity.Identity
}

// Identity returns the current identity, if any.
func (s *Session) Identity() (entity.Identity, bool) {
	if s == nil {
		return entity.Identity{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return entity.Identity{}, false
	}
	return *s.identity, true
}

// Email is empty when nobody is signed in.
func (s *Session) Email() string {
	ident, _ := s.Identity()
	return ident.Email
}

func (s *Session) Authenticated() bool {
	return s.Email() != ""
}

func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Listener is the single writer of a Session. Changes are persisted to the
// store so the next request restores them.
type Listener struct {
	s     *Session
	store Store
	ttl   time.Duration
}

// Authenticated records a new identity.
func (l *Listener) Authenticated(ctx context.Context, ident entity.Identity) error {
	l.s.mu.Lock()
	l.s.identity = &ident
	l.s.mu.Unlock()
	if l.store == nil {
		return nil
	}
	return l.store.Save(ctx, l.s.id, ident, l.ttl)
}

// SignedOut clears the identity.
func (l *Listener) SignedOut(ctx context.Context) error {
	l.s.mu.Lock()
	l.s.identity = nil
	l.s.mu.Unlock()
	if l.store == nil {
		return nil
	}
	return l.store.Delete(ctx, l.s.id)
}

// New returns an anonymous session and its writer, not backed by a store.
func New(id string) (*Session, *Listener) {
	s := &Session{id: id}
	return s, &Listener{s: s}
}

// Open restores session id from store. A store failure yields an anonymous
// session together with the error.
func Open(ctx context.Context, store Store, id string, ttl time.Duration) (*Session, *Listener, error) {
	s := &Session{id: id}
	l := &Listener{s: s, store: store, ttl: ttl}
	ident, err := store.Load(ctx, id)
	if err != nil {
		return s, l, err
	}
	if ident != nil {
		s.identity = ident
	}
	return s, l, nil
}

// ForIdentity is a signed-in session with no persistence, used by the CLI.
func ForIdentity(ident entity.Identity) *Session {
	return &Session{identity: &ident}
}
