package shell

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/crudshell/internal/menu"
	"github.com/leapstack-labs/crudshell/internal/ui/components"
)

// SetupRoutes configures routes for the shell feature.
func SetupRoutes(router chi.Router, deps Deps) error {
	handlers := NewHandlers(deps)

	router.Get(menu.RootPath, handlers.HandleDashboard)
	router.Get("/list/{model}", handlers.HandleList)
	router.Get(menu.SignInPath, handlers.HandleSignInPage)
	router.Post(menu.SignInPath, handlers.HandleSignIn)
	router.Post("/sign-out", handlers.HandleSignOut)
	router.Post(components.MenuSearchPath, handlers.HandleMenuSearch)
	router.Post("/shell/collapse", handlers.HandleCollapse)
	router.Get(UpdatesPath, handlers.HandleUpdates)

	return nil
}
