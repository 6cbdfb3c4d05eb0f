// Package identity signs storefront users up and in against an external
// authentication service.
package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"

	"grocery.GO/core/apperr"
	"grocery.GO/model/entity"
)

// Provider is keyed by email and password and hands back an opaque identity.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (entity.Identity, error)
	SignIn(ctx context.Context, email, password string) (entity.Identity, error)
	SignOut(ctx context.Context, ident entity.Identity) error
	// Restore resolves a previously issued id token.
	Restore(ctx context.Context, idToken string) (entity.Identity, error)
}

// Memory is a process-local provider for development and tests.
type Memory struct {
	mu       sync.Mutex
	users    map[string]memoryUser
	sessions map[string]string
}

type memoryUser struct {
	uid      string
	password string
}

func NewMemory() *Memory {
	return &Memory{users: map[string]memoryUser{}, sessions: map[string]string{}}
}

func (m *Memory) SignUp(_ context.Context, email, password string) (entity.Identity, error) {
	const op = "identity.SignUp"
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 6 {
		return entity.Identity{}, apperr.Validation(op, "Password should be at least 6 characters")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; ok {
		return entity.Identity{}, apperr.Validation(op, "Email already in use")
	}
	u := memoryUser{uid: token(), password: password}
	m.users[email] = u
	return m.issue(email, u), nil
}

func (m *Memory) SignIn(_ context.Context, email, password string) (entity.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok || u.password != password {
		return entity.Identity{}, apperr.Unauthenticated("identity.SignIn", "Invalid email or password")
	}
	return m.issue(email, u), nil
}

func (m *Memory) SignOut(_ context.Context, ident entity.Identity) error {
	m.mu.Lock()
	delete(m.sessions, ident.IDToken)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Restore(_ context.Context, idToken string) (entity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, ok := m.sessions[idToken]
	if !ok {
		return entity.Identity{}, apperr.Unauthenticated("identity.Restore", "Session expired")
	}
	return entity.Identity{UID: m.users[email].uid, Email: email, IDToken: idToken}, nil
}

// issue must be called with m.mu held.
func (m *Memory) issue(email string, u memoryUser) entity.Identity {
	tok := token()
	m.sessions[tok] = email
	return entity.Identity{UID: u.uid, Email: email, IDToken: tok, RefreshToken: token()}
}

func token() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
