package ui

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/rows"
	"github.com/leapstack-labs/crudshell/internal/testutil"
	"github.com/leapstack-labs/crudshell/internal/ui/features"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	fixture := features.SetupTestFixture(t)
	if cfg.Catalog == nil {
		cfg.Catalog = fixture.Catalog
	}
	cfg.Backend = fixture.Backend
	if cfg.Rows == nil {
		cfg.Rows = fixture.Rows
	}
	cfg.SessionSecret = "test-secret-key-32-bytes-long!!"
	cfg.Logger = testutil.NewTestLogger(t)
	return NewServer(cfg)
}

func TestServer_Handler(t *testing.T) {
	s := newTestServer(t, Config{})
	h, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	req := features.SignedIn(httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Admin")
}

func TestServer_Reload(t *testing.T) {
	t.Run("swaps catalog and notifies", func(t *testing.T) {
		s := newTestServer(t, Config{
			Reload: func() (catalog.Configuration, error) {
				return catalog.Configuration{SiteName: "Reloaded"}, nil
			},
		})

		s.reload()

		assert.Equal(t, "Reloaded", s.Catalog().Load().SiteName)
		assert.Equal(t, uint64(1), s.Notifier().Reloads())
	})

	t.Run("added models become listable", func(t *testing.T) {
		db, err := sql.Open(rows.DriverSQLite, ":memory:")
		require.NoError(t, err)
		db.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = db.Close() })
		_, err = db.Exec(`CREATE TABLE invoices (id INTEGER PRIMARY KEY, note TEXT)`)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO invoices (note) VALUES ('net-30')`)
		require.NoError(t, err)

		s := newTestServer(t, Config{
			Rows: rows.NewSQLSource(db, rows.DriverSQLite, []string{"users"}, testutil.NewTestLogger(t)),
			Reload: func() (catalog.Configuration, error) {
				return catalog.Configuration{
					SiteName: "Reloaded",
					Models:   []catalog.ModelDescriptor{{Name: "users"}, {Name: "invoices"}},
				}, nil
			},
		})
		h, err := s.Handler()
		require.NoError(t, err)

		s.reload()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, features.SignedIn(httptest.NewRequest(http.MethodGet, "/list/invoices", nil)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "net-30")
		assert.NotContains(t, rec.Body.String(), "No data")
	})

	t.Run("failure keeps previous configuration", func(t *testing.T) {
		s := newTestServer(t, Config{
			Reload: func() (catalog.Configuration, error) {
				return catalog.Configuration{}, errors.New("bad yaml")
			},
		})

		s.reload()

		assert.Equal(t, "Acme Admin", s.Catalog().Load().SiteName)
		assert.Equal(t, uint64(0), s.Notifier().Reloads())
	})
}

func TestServer_WatchConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crudshell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site_name: One\n"), 0600))

	var calls atomic.Int32
	s := newTestServer(t, Config{
		Watch:      true,
		ConfigFile: path,
		Reload: func() (catalog.Configuration, error) {
			calls.Add(1)
			return catalog.Configuration{SiteName: "Two"}, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchConfig(ctx) }()

	// Unrelated files in the same directory are ignored.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600)
		_ = os.WriteFile(path, []byte("site_name: Two\n"), 0600)
		return s.Catalog().Load().SiteName == "Two"
	}, 5*time.Second, 200*time.Millisecond)

	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.GreaterOrEqual(t, s.Notifier().Reloads(), uint64(1))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
