// Package shell provides the navigation shell pages and their interactive
// endpoints: menu search, sidebar collapse, sign-in and sign-out.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/display"
	"github.com/leapstack-labs/crudshell/internal/i18n"
	"github.com/leapstack-labs/crudshell/internal/menu"
	"github.com/leapstack-labs/crudshell/internal/rows"
	"github.com/leapstack-labs/crudshell/internal/session"
	"github.com/leapstack-labs/crudshell/internal/ui/components"
	"github.com/leapstack-labs/crudshell/internal/ui/notifier"
	"github.com/leapstack-labs/crudshell/internal/viewport"
)

// UpdatesPath is the long-lived SSE stream opened by every shell page.
const UpdatesPath = "/updates"

// Backend is the authentication backend used by the shell.
type Backend interface {
	session.Authenticator
	SignIn(ctx context.Context, username, password string, creds session.Credentials) error
}

// Deps are the dependencies of the shell handlers.
type Deps struct {
	Catalog      *catalog.Holder
	Backend      Backend
	Rows         rows.Source
	RowLimit     int
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	// Language is the preferred language used when Accept-Language has no match.
	Language string
	Logger   *slog.Logger
}

// Handlers provides HTTP handlers for the shell feature.
type Handlers struct {
	deps   Deps
	logger *slog.Logger

	mu      sync.Mutex
	locales map[language.Tag]*locale
}

type locale struct {
	tr      *i18n.Translator
	builder *menu.Builder
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Deps) *Handlers {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if deps.RowLimit <= 0 {
		deps.RowLimit = rows.DefaultLimit
	}
	if deps.Notifier == nil {
		deps.Notifier = notifier.New()
	}
	return &Handlers{
		deps:    deps,
		logger:  logger,
		locales: make(map[language.Tag]*locale),
	}
}

// locale returns the translator and menu builder for the request language.
// Builders are kept per language so each memoizes its own tree.
func (h *Handlers) locale(r *http.Request) *locale {
	tag := i18n.Match(r.Header.Get("Accept-Language"), h.deps.Language)

	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.locales[tag]; ok {
		return l
	}
	tr := i18n.New(tag)
	l := &locale{tr: tr, builder: menu.NewBuilder(tr.T)}
	h.locales[tag] = l
	return l
}

// shellData assembles the explicit view state of the shell for a request.
func (h *Handlers) shellData(r *http.Request, user *session.User, view viewState, selected string) components.ShellData {
	cfg := h.deps.Catalog.Load()
	l := h.locale(r)
	return components.ShellData{
		Config:      cfg,
		User:        user,
		Menu:        l.builder.Build(cfg.Models, view.Search),
		Search:      view.Search,
		Collapsed:   view.Collapsed,
		SelectedKey: selected,
		IsMobile:    viewport.Detect(r),
		T:           l.tr.T,
	}
}

// requireUser resolves the signed-in user. When there is none it redirects
// to the sign-in page and returns nil.
func (h *Handlers) requireUser(w http.ResponseWriter, r *http.Request) *session.User {
	p := session.NewProvider(h.deps.Backend, session.CredentialsFromRequest(w, r))
	if err := p.Refetch(r.Context()); err != nil {
		h.logger.Error("failed to fetch signed-in user", "error", err)
		http.Error(w, "authentication backend unavailable", http.StatusBadGateway)
		return nil
	}
	if !p.SignedIn() {
		_ = (&pageNavigator{w: w, r: r, provider: p}).Navigate(menu.SignInPath)
		return nil
	}
	return p.User()
}

// renderShell writes a complete shell page.
func (h *Handlers) renderShell(w http.ResponseWriter, r *http.Request, d components.ShellData, p components.ShellProps) {
	page := components.Page(components.PageData{
		Title:      p.Title,
		Lang:       h.locale(r).tr.Tag().String(),
		UpdatesURL: UpdatesPath,
	}, components.Shell(d, p))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Templ(page).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleDashboard renders the dashboard: the configured models as a table or cards.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}
	_, view := h.loadView(r)
	d := h.shellData(r, user, view, menu.DashboardKey)

	models := make([]display.Row, 0, len(d.Config.Models))
	for _, m := range d.Config.Models {
		models = append(models, display.Row{
			"name":     m.Name,
			"title":    catalog.TitleFromModel(m),
			"category": m.Category,
		})
	}
	props := display.Props{
		Columns: []display.Column{
			{Key: "title", Title: d.T("Title")},
			{Key: "name", Title: d.T("Name")},
			{Key: "category", Title: d.T("Category")},
		},
		Rows:   models,
		RowKey: "name",
	}

	h.renderShell(w, r, d, components.ShellProps{
		Title:    d.T("Dashboard"),
		Children: components.TableOrCards(props, d.IsMobile, d.T("No data")),
	})
}

// HandleList renders the rows of one model.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	name := chi.URLParam(r, "model")
	model, ok := h.deps.Catalog.Load().Model(name)
	if !ok {
		http.Error(w, "unknown model: "+name, http.StatusNotFound)
		return
	}
	_, view := h.loadView(r)
	d := h.shellData(r, user, view, model.Name)

	var props display.Props
	if h.deps.Rows != nil {
		cols, data, err := h.deps.Rows.List(r.Context(), model.Name, h.deps.RowLimit)
		switch {
		case errors.Is(err, rows.ErrUnknownModel):
			h.logger.Debug("no rows for model", "model", model.Name)
		case err != nil:
			h.logger.Error("failed to list rows", "model", model.Name, "error", err)
			http.Error(w, "failed to load rows", http.StatusInternalServerError)
			return
		default:
			props = display.Props{Columns: cols, Rows: data, RowKey: "id"}
		}
	}

	title := catalog.TitleFromModel(model)
	h.renderShell(w, r, d, components.ShellProps{
		Title: title,
		Breadcrumbs: g.Group([]g.Node{
			html.A(html.Href(menu.RootPath), g.Text(d.T("Dashboard"))),
			g.Text(" / " + title),
		}),
		HeaderActions: html.Span(html.Class("row-count"), g.Textf("%d", len(props.Rows))),
		Children:      components.TableOrCards(props, d.IsMobile, d.T("No data")),
	})
}

// HandleMenuSearch re-renders the menu fragment for the posted search text.
func (h *Handlers) HandleMenuSearch(w http.ResponseWriter, r *http.Request) {
	var signals components.Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := h.requireSSEUser(w, r)
	if user == nil {
		return
	}

	sess, view := h.loadView(r)
	view.Search = signals.Search
	h.saveView(w, r, sess, view)

	d := h.shellData(r, user, view, signals.Selected)
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(components.Templ(components.Menu(d.Menu, d.SelectedKey))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// HandleCollapse toggles the sidebar and re-renders it with the header.
func (h *Handlers) HandleCollapse(w http.ResponseWriter, r *http.Request) {
	var signals components.Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := h.requireSSEUser(w, r)
	if user == nil {
		return
	}

	sess, view := h.loadView(r)
	view.Collapsed = !view.Collapsed
	h.saveView(w, r, sess, view)

	d := h.shellData(r, user, view, signals.Selected)
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(components.Templ(components.Sidebar(d))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(components.Templ(components.Header(d))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// HandleSignOut ends the backend session and sends the browser to the
// sign-in page once the refetch reports it signed out.
func (h *Handlers) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	nav := &sseNavigator{
		w:        w,
		r:        r,
		provider: session.NewProvider(h.deps.Backend, session.CredentialsFromRequest(w, r)),
	}
	if err := menu.Dispatch(menu.SignOut{}, nav); err != nil {
		h.logger.Error("sign-out failed", "error", err)
		_ = nav.sse().ConsoleError(err)
	}
}

// HandleUpdates is the long-lived SSE stream of a shell page. After each
// configuration reload it patches the refresh trigger, and the browser
// re-posts its current search to get a menu built from the new catalog.
func (h *Handlers) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	if user := h.requireSSEUser(w, r); user == nil {
		return
	}

	ctx := r.Context()
	updates := h.deps.Notifier.Subscribe(ctx)
	sse := datastar.NewSSE(w, r)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			seq := h.deps.Notifier.Reloads()
			if err := sse.PatchElementTempl(components.Templ(components.Refresh(seq))); err != nil {
				h.logger.Debug("updates stream closed", "error", err)
				return
			}
		}
	}
}

// requireSSEUser is requireUser for Datastar requests: the redirect is sent
// as an SSE event.
func (h *Handlers) requireSSEUser(w http.ResponseWriter, r *http.Request) *session.User {
	p := session.NewProvider(h.deps.Backend, session.CredentialsFromRequest(w, r))
	if err := p.Refetch(r.Context()); err != nil {
		h.logger.Error("failed to fetch signed-in user", "error", err)
		_ = datastar.NewSSE(w, r).ConsoleError(err)
		return nil
	}
	if !p.SignedIn() {
		_ = (&sseNavigator{w: w, r: r, provider: p}).Navigate(menu.SignInPath)
		return nil
	}
	return p.User()
}
