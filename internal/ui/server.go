// Package ui provides the web admin shell server.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/rows"
	shellFeature "github.com/leapstack-labs/crudshell/internal/ui/features/shell"
	"github.com/leapstack-labs/crudshell/internal/ui/notifier"
	"github.com/leapstack-labs/crudshell/internal/ui/router"
)

const reloadDebounce = 100 * time.Millisecond

// ReloadFunc reads the configuration again after the config file changed.
type ReloadFunc func() (catalog.Configuration, error)

// Server is the admin shell server.
type Server struct {
	catalog      *catalog.Holder
	backend      shellFeature.Backend
	rows         rows.Source
	rowLimit     int
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	configFile   string
	reloadFn     ReloadFunc
	language     string
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Catalog       *catalog.Holder
	Backend       shellFeature.Backend
	Rows          rows.Source
	RowLimit      int
	Port          int
	Watch         bool
	ConfigFile    string
	Reload        ReloadFunc
	SessionSecret string
	Language      string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	holder := cfg.Catalog
	if holder == nil {
		holder = catalog.NewHolder(catalog.Configuration{})
	}

	return &Server{
		catalog:      holder,
		backend:      cfg.Backend,
		rows:         cfg.Rows,
		rowLimit:     cfg.RowLimit,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		configFile:   cfg.ConfigFile,
		reloadFn:     cfg.Reload,
		language:     cfg.Language,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Handler builds the routed handler with its middleware stack.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5, "text/html", "text/css"),
	)

	err := router.SetupRoutes(r, shellFeature.Deps{
		Catalog:      s.catalog,
		Backend:      s.backend,
		Rows:         s.rows,
		RowLimit:     s.rowLimit,
		SessionStore: s.sessionStore,
		Notifier:     s.notifier,
		Language:     s.language,
		Logger:       s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting admin shell", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.configFile != "" && s.reloadFn != nil {
		eg.Go(func() error {
			return s.watchConfig(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down admin shell...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Catalog returns the live configuration holder.
func (s *Server) Catalog() *catalog.Holder {
	return s.catalog
}

// watchConfig reloads the configuration when the config file changes. The
// parent directory is watched so that editors replacing the file are seen.
func (s *Server) watchConfig(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(s.configFile)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Error("failed to watch config directory", "error", err)
		return nil
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, s.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reload swaps in the re-read configuration and notifies open pages.
// A failed reload keeps the previous configuration.
func (s *Server) reload() {
	cfg, err := s.reloadFn()
	if err != nil {
		s.logger.Error("config reload failed, keeping previous configuration", "error", err)
		return
	}
	s.catalog.Store(cfg)
	if ms, ok := s.rows.(rows.ModelSetter); ok {
		ms.SetModels(cfg.ModelNames())
	}
	s.logger.Info("configuration reloaded", "models", len(cfg.Models))
	s.notifier.Broadcast()
}
