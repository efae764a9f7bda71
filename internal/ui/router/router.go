// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	shellFeature "github.com/leapstack-labs/crudshell/internal/ui/features/shell"
	"github.com/leapstack-labs/crudshell/internal/ui/resources"
)

// HealthPath answers liveness checks.
const HealthPath = "/healthz"

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps shellFeature.Deps) error {
	router.Get(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets
	router.Handle(resources.StaticPrefix+"*", resources.Handler())

	if err := shellFeature.SetupRoutes(router, deps); err != nil {
		return err
	}

	return nil
}
