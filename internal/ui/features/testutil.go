// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/rows"
	"github.com/leapstack-labs/crudshell/internal/session"
	"github.com/leapstack-labs/crudshell/internal/ui/notifier"
)

// SessionCookie is the backend cookie the fake backend issues on sign-in.
const SessionCookie = "backend_session"

// FakeBackend is an in-memory authentication backend. It accepts one
// username/password pair and treats any request carrying SessionCookie as
// signed in until SignOut is called.
type FakeBackend struct {
	Username string
	Password string
	User     *session.User
	// SignOutErr, when set, is returned by SignOut without ending the session.
	SignOutErr error

	mu           sync.Mutex
	signedOut    bool
	meCalls      int
	signOutCalls int
}

// Me implements session.Authenticator.
func (b *FakeBackend) Me(_ context.Context, creds session.Credentials) (*session.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.meCalls++
	if b.signedOut || !hasSessionCookie(creds) {
		return nil, session.ErrNotSignedIn
	}
	return b.User, nil
}

// SignOut implements session.Authenticator.
func (b *FakeBackend) SignOut(_ context.Context, creds session.Credentials) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signOutCalls++
	if b.SignOutErr != nil {
		return b.SignOutErr
	}
	b.signedOut = true
	if creds.SetCookie != nil {
		creds.SetCookie(&http.Cookie{Name: SessionCookie, Value: "", MaxAge: -1, Path: "/"})
	}
	return nil
}

// SignIn checks the credentials and issues SessionCookie.
func (b *FakeBackend) SignIn(_ context.Context, username, password string, creds session.Credentials) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if username != b.Username || password != b.Password {
		return session.ErrNotSignedIn
	}
	b.signedOut = false
	if creds.SetCookie != nil {
		creds.SetCookie(&http.Cookie{Name: SessionCookie, Value: "s1", Path: "/", HttpOnly: true})
	}
	return nil
}

// Calls returns how many Me and SignOut calls the backend has served.
func (b *FakeBackend) Calls() (me, signOut int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.meCalls, b.signOutCalls
}

func hasSessionCookie(creds session.Credentials) bool {
	for _, c := range creds.Cookies {
		if c.Name == SessionCookie && c.Value != "" {
			return true
		}
	}
	return false
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Catalog      *catalog.Holder
	Backend      *FakeBackend
	Rows         rows.Static
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// DefaultModels is the catalog used when a test passes none.
var DefaultModels = []catalog.ModelDescriptor{
	{Name: "users", Category: "auth"},
	{Name: "groups", Category: "auth"},
	{Name: "orders", Category: "sales", Title: "Customer Orders"},
	{Name: "settings"},
}

// SetupTestFixture creates a fixture with a fake backend holding a signed-in
// user "ada" and a static row source.
func SetupTestFixture(t *testing.T, models ...catalog.ModelDescriptor) *TestFixture {
	t.Helper()

	if len(models) == 0 {
		models = DefaultModels
	}

	return &TestFixture{
		Catalog: catalog.NewHolder(catalog.Configuration{
			SiteName:      "Acme Admin",
			UsernameField: "email",
			Models:        models,
		}),
		Backend: &FakeBackend{
			Username: "ada",
			Password: "lovelace",
			User:     &session.User{ID: "u1", Fields: map[string]any{"email": "ada@example.com"}},
		},
		Rows: rows.Static{
			"users": {
				{"id": 1, "name": "ada"},
				{"id": 2, "name": "grace"},
			},
		},
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
	}
}

// SignedIn adds the backend session cookie to r.
func SignedIn(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "s1"})
	return r
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
