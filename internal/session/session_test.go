package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/crudshell/internal/testutil"
)

// fakeAuthBackend serves /me, /sign-in and /sign-out with a single signed-in flag.
type fakeAuthBackend struct {
	signedIn      atomic.Bool
	failSignOut   bool
	meCalls       atomic.Int32
	signOutCalls  atomic.Int32
	signOutBodies []string
}

func (f *fakeAuthBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		f.meCalls.Add(1)
		if !f.signedIn.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if c, err := r.Cookie("sid"); err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "email": "ada@example.com"})
	})
	mux.HandleFunc("POST /sign-out", func(w http.ResponseWriter, r *http.Request) {
		f.signOutCalls.Add(1)
		body, _ := io.ReadAll(r.Body)
		f.signOutBodies = append(f.signOutBodies, string(body))
		if f.failSignOut {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		f.signedIn.Store(false)
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "", MaxAge: -1})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /sign-in", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.signedIn.Store(true)
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc"})
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func setupBackend(t *testing.T) (*fakeAuthBackend, *Backend) {
	t.Helper()
	fake := &fakeAuthBackend{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	return fake, NewBackend(BackendConfig{BaseURL: srv.URL + "/", Logger: testutil.NewTestLogger(t)})
}

func signedInCreds() Credentials {
	return Credentials{Cookies: []*http.Cookie{{Name: "sid", Value: "abc"}}}
}

func TestBackend_Me(t *testing.T) {
	fake, backend := setupBackend(t)
	ctx := context.Background()

	_, err := backend.Me(ctx, signedInCreds())
	require.ErrorIs(t, err, ErrNotSignedIn)

	fake.signedIn.Store(true)
	user, err := backend.Me(ctx, signedInCreds())
	require.NoError(t, err)
	assert.Equal(t, "7", user.ID)
	assert.Equal(t, "ada@example.com", user.Display("email"))
	assert.Equal(t, "", user.Display("missing"))
}

func TestBackend_UnreachableIsBackendError(t *testing.T) {
	backend := NewBackend(BackendConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := backend.Me(context.Background(), Credentials{})
	assert.ErrorIs(t, err, ErrBackend)
}

func TestBackend_SignIn(t *testing.T) {
	fake, backend := setupBackend(t)

	var relayed []*http.Cookie
	creds := Credentials{SetCookie: func(c *http.Cookie) { relayed = append(relayed, c) }}

	err := backend.SignIn(context.Background(), "ada", "wrong", creds)
	require.ErrorIs(t, err, ErrNotSignedIn)

	require.NoError(t, backend.SignIn(context.Background(), "ada", "secret", creds))
	assert.True(t, fake.signedIn.Load())
	require.Len(t, relayed, 1)
	assert.Equal(t, "sid", relayed[0].Name)
}

func TestProvider_SignOutIssuesOneRequestAndOneRefetch(t *testing.T) {
	fake, backend := setupBackend(t)
	fake.signedIn.Store(true)
	ctx := context.Background()

	p := NewProvider(backend, signedInCreds())
	require.NoError(t, p.Refetch(ctx))
	require.True(t, p.SignedIn())
	assert.Equal(t, "7", p.User().Key())

	meBefore := fake.meCalls.Load()
	require.NoError(t, p.SignOut(ctx))

	assert.Equal(t, int32(1), fake.signOutCalls.Load())
	assert.Equal(t, []string{"{}"}, fake.signOutBodies)
	assert.Equal(t, meBefore+1, fake.meCalls.Load())
	assert.False(t, p.SignedIn())
	assert.Nil(t, p.User())
}

func TestProvider_SignOutFailureDoesNotRefetchOrRetry(t *testing.T) {
	fake, backend := setupBackend(t)
	fake.signedIn.Store(true)
	fake.failSignOut = true
	ctx := context.Background()

	p := NewProvider(backend, signedInCreds())
	require.NoError(t, p.Refetch(ctx))
	meBefore := fake.meCalls.Load()

	err := p.SignOut(ctx)

	require.ErrorIs(t, err, ErrBackend)
	assert.Equal(t, int32(1), fake.signOutCalls.Load())
	assert.Equal(t, meBefore, fake.meCalls.Load())
	assert.True(t, p.SignedIn())
}

type stubAuth struct {
	user *User
	err  error
}

func (s stubAuth) Me(context.Context, Credentials) (*User, error) { return s.user, s.err }
func (s stubAuth) SignOut(context.Context, Credentials) error     { return nil }

func TestProvider_RefetchPropagatesBackendErrors(t *testing.T) {
	p := NewProvider(stubAuth{err: errors.New("down")}, Credentials{})
	assert.EqualError(t, p.Refetch(context.Background()), "down")
	assert.False(t, p.SignedIn())
}

func TestUser_KeyFallback(t *testing.T) {
	var u *User
	assert.Equal(t, "key", u.Key())
	assert.Equal(t, "", u.Display("email"))
	assert.Equal(t, "key", (&User{}).Key())
}
