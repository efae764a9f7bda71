package shell

import (
	"errors"
	"net/http"

	"github.com/leapstack-labs/crudshell/internal/menu"
	"github.com/leapstack-labs/crudshell/internal/session"
	"github.com/leapstack-labs/crudshell/internal/ui/components"
)

const invalidCredentials = "Invalid username or password"

// HandleSignInPage renders the sign-in form.
func (h *Handlers) HandleSignInPage(w http.ResponseWriter, r *http.Request) {
	h.renderSignIn(w, r, http.StatusOK, "", "")
}

// HandleSignIn forwards the posted credentials to the backend and relays its
// session cookie. A rejected sign-in re-renders the form.
func (h *Handlers) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	err := h.deps.Backend.SignIn(r.Context(), username, password, session.CredentialsFromRequest(w, r))
	switch {
	case errors.Is(err, session.ErrNotSignedIn):
		h.renderSignIn(w, r, http.StatusUnauthorized, username, invalidCredentials)
		return
	case err != nil:
		h.logger.Error("sign-in failed", "username", username, "error", err)
		http.Error(w, "authentication backend unavailable", http.StatusBadGateway)
		return
	}

	h.logger.Debug("signed in", "username", username)
	_ = menu.Dispatch(menu.NavigateToDashboard{}, &pageNavigator{w: w, r: r})
}

func (h *Handlers) renderSignIn(w http.ResponseWriter, r *http.Request, status int, username, errText string) {
	cfg := h.deps.Catalog.Load()
	tr := h.locale(r).tr

	page := components.Page(components.PageData{
		Title: tr.T("Sign In") + " - " + cfg.SiteName,
		Lang:  tr.Tag().String(),
	}, components.SignIn(components.SignInData{
		SiteName: cfg.SiteName,
		Username: username,
		Error:    errText,
		T:        tr.T,
	}))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := components.Templ(page).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render sign-in page", "error", err)
	}
}
