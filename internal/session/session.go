// Package session resolves the signed-in admin user and ends sessions
// against the authentication backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors.
var (
	// ErrNotSignedIn is returned when the backend reports no active session.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrBackend wraps unexpected backend responses.
	ErrBackend = errors.New("auth backend error")
)

// User is the signed-in user record. Fields holds the raw record so that the
// displayed username field is configurable.
type User struct {
	ID     string
	Fields map[string]any
}

// Display returns the value of field as text, or "" when absent.
func (u *User) Display(field string) string {
	if u == nil || u.Fields == nil {
		return ""
	}
	v, ok := u.Fields[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Key returns the identifier used as the user-menu key.
func (u *User) Key() string {
	if u == nil || u.ID == "" {
		return "key"
	}
	return u.ID
}

// Authenticator is the subset of the backend used by Provider.
type Authenticator interface {
	Me(ctx context.Context, creds Credentials) (*User, error)
	SignOut(ctx context.Context, creds Credentials) error
}

// Provider holds the signed-in user state for one request.
type Provider struct {
	auth  Authenticator
	creds Credentials

	mu       sync.RWMutex
	user     *User
	signedIn bool
}

// NewProvider creates a provider that authenticates with creds.
// The state is empty until Refetch is called.
func NewProvider(auth Authenticator, creds Credentials) *Provider {
	return &Provider{auth: auth, creds: creds}
}

// Refetch reloads the signed-in user from the backend.
// ErrNotSignedIn is not an error here; it clears the state.
func (p *Provider) Refetch(ctx context.Context) error {
	user, err := p.auth.Me(ctx, p.creds)
	if err != nil && !errors.Is(err, ErrNotSignedIn) {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.user = user
	p.signedIn = err == nil && user != nil
	return nil
}

// User returns the signed-in user, or nil.
func (p *Provider) User() *User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// SignedIn reports whether the last refetch found an active session.
func (p *Provider) SignedIn() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.signedIn
}

// SignOut issues one sign-out request and, on success, one refetch of the
// user state. It does not retry; a failed request is returned unchanged.
func (p *Provider) SignOut(ctx context.Context) error {
	if err := p.auth.SignOut(ctx, p.creds); err != nil {
		return err
	}
	return p.Refetch(ctx)
}
