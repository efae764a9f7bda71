package shell

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/crudshell/internal/menu"
	"github.com/leapstack-labs/crudshell/internal/session"
)

// pageNavigator carries out menu actions for plain page requests with HTTP redirects.
type pageNavigator struct {
	w        http.ResponseWriter
	r        *http.Request
	provider *session.Provider
}

func (n *pageNavigator) Navigate(path string) error {
	http.Redirect(n.w, n.r, path, http.StatusSeeOther)
	return nil
}

func (n *pageNavigator) SignOut() error {
	return signOut(n.r, n.provider, n)
}

// sseNavigator carries out menu actions for Datastar requests. The event
// stream is opened on first use so that backend cookies can still be relayed.
type sseNavigator struct {
	w        http.ResponseWriter
	r        *http.Request
	provider *session.Provider
	stream   *datastar.ServerSentEventGenerator
}

func (n *sseNavigator) sse() *datastar.ServerSentEventGenerator {
	if n.stream == nil {
		n.stream = datastar.NewSSE(n.w, n.r)
	}
	return n.stream
}

func (n *sseNavigator) Navigate(path string) error {
	return n.sse().Redirect(path)
}

func (n *sseNavigator) SignOut() error {
	return signOut(n.r, n.provider, n)
}

// signOut ends the session and navigates to the sign-in page once the
// refetched state reports it signed out.
func signOut(r *http.Request, p *session.Provider, nav menu.Handler) error {
	if err := p.SignOut(r.Context()); err != nil {
		return err
	}
	if p.SignedIn() {
		return nil
	}
	return nav.Navigate(menu.SignInPath)
}
