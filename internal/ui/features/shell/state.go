package shell

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// ViewSessionName is the cookie holding per-browser view state.
const ViewSessionName = "crudshell-view"

const (
	searchKey    = "search"
	collapsedKey = "collapsed"
)

// viewState is the per-session state of the shell. It never affects which
// models exist, only how the menu is filtered and laid out.
type viewState struct {
	Search    string
	Collapsed bool
}

func (h *Handlers) loadView(r *http.Request) (*sessions.Session, viewState) {
	sess, _ := h.deps.SessionStore.Get(r, ViewSessionName)
	var v viewState
	if sess == nil {
		return nil, v
	}
	v.Search, _ = sess.Values[searchKey].(string)
	v.Collapsed, _ = sess.Values[collapsedKey].(bool)
	return sess, v
}

// saveView persists v. It must run before an SSE stream writes its headers.
func (h *Handlers) saveView(w http.ResponseWriter, r *http.Request, sess *sessions.Session, v viewState) {
	if sess == nil {
		return
	}
	sess.Values[searchKey] = v.Search
	sess.Values[collapsedKey] = v.Collapsed
	if err := sess.Save(r, w); err != nil {
		h.logger.Warn("failed to save view state", "error", err)
	}
}
