package menu

import (
	"fmt"
	"net/url"
)

// Navigation targets.
const (
	RootPath   = "/"
	SignInPath = "/sign-in"
	listPrefix = "/list/"
)

// Action is a clickable menu outcome. The set of implementations is closed:
// NavigateToDashboard, NavigateToEntity and SignOut.
type Action interface {
	isAction()
}

// NavigateToDashboard routes to the dashboard root.
type NavigateToDashboard struct{}

// NavigateToEntity routes to the list view of one entity type.
type NavigateToEntity struct {
	Key string
}

// SignOut ends the current session.
type SignOut struct{}

func (NavigateToDashboard) isAction() {}
func (NavigateToEntity) isAction()    {}
func (SignOut) isAction()             {}

// ActionForKey maps a clicked menu key to its action.
func ActionForKey(key string) Action {
	switch key {
	case DashboardKey:
		return NavigateToDashboard{}
	case SignOutKey:
		return SignOut{}
	default:
		return NavigateToEntity{Key: key}
	}
}

// ListPath returns the per-entity listing path for key.
func ListPath(key string) string {
	return listPrefix + url.PathEscape(key)
}

// Handler receives dispatched actions.
type Handler interface {
	Navigate(path string) error
	SignOut() error
}

// Dispatch routes action to the matching Handler method.
func Dispatch(action Action, h Handler) error {
	switch a := action.(type) {
	case NavigateToDashboard:
		return h.Navigate(RootPath)
	case NavigateToEntity:
		return h.Navigate(ListPath(a.Key))
	case SignOut:
		return h.SignOut()
	default:
		return fmt.Errorf("unknown menu action %T", action)
	}
}

// Href returns the navigation target of a navigating action, or "" for SignOut.
func Href(action Action) string {
	switch a := action.(type) {
	case NavigateToDashboard:
		return RootPath
	case NavigateToEntity:
		return ListPath(a.Key)
	default:
		return ""
	}
}
