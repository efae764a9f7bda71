package components

import (
	"encoding/json"
	"fmt"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/menu"
	"github.com/leapstack-labs/crudshell/internal/session"
)

// Element IDs targeted by SSE patches.
const (
	ShellID   = "shell"
	SidebarID = "shell-sidebar"
	MenuID    = "shell-menu"
	HeaderID  = "shell-header"
	RefreshID = "shell-refresh"
)

// MenuSearchPath is the endpoint that re-renders the menu for the posted search.
const MenuSearchPath = "/menu/search"

// ShellData is the explicit view state of the navigation shell.
type ShellData struct {
	Config      catalog.Configuration
	User        *session.User
	Menu        []menu.Item
	Search      string
	Collapsed   bool
	SelectedKey string
	IsMobile    bool
	T           func(string) string
}

func (d ShellData) t(s string) string {
	if d.T == nil {
		return s
	}
	return d.T(s)
}

// ShellProps are the slots of the content area.
type ShellProps struct {
	Title         string
	Breadcrumbs   g.Node
	ViewOnSite    string
	HeaderActions g.Node
	BottomActions g.Node
	IsLoading     bool
	Children      g.Node
}

// Shell renders the full-page layout: side menu, header and content area.
func Shell(d ShellData, p ShellProps) g.Node {
	return html.Div(
		html.ID(ShellID),
		html.Class("shell"),
		Sidebar(d),
		html.Div(
			html.Class("shell-main"),
			Header(d),
			Content(d, p),
		),
		Refresh(0),
	)
}

// Refresh renders the hidden element patched on every configuration reload.
// A non-zero seq makes the browser post its current signals to the menu
// search endpoint, so the menu is rebuilt from the search it shows.
func Refresh(seq uint64) g.Node {
	return html.Div(
		html.ID(RefreshID),
		g.Attr("hidden"),
		g.If(seq > 0, g.Attr("data-init", fmt.Sprintf("@post('%s?reload=%d')", MenuSearchPath, seq))),
	)
}

// Sidebar renders the collapsible side panel with the search box and menu.
func Sidebar(d ShellData) g.Node {
	class := "shell-sidebar"
	if d.Collapsed {
		class += " collapsed"
	}
	return html.Aside(
		html.ID(SidebarID),
		html.Class(class),
		g.Attr("data-signals", signals(d)),
		html.Div(
			html.Class("sidebar-search"),
			html.Input(
				html.Type("search"),
				html.Name("search"),
				html.Value(d.Search),
				html.Placeholder(d.t("Search By Menu")),
				g.Attr("data-bind:search"),
				g.Attr("data-on:input__debounce.150ms", "@post('"+MenuSearchPath+"')"),
			),
		),
		Menu(d.Menu, d.SelectedKey),
	)
}

// Menu renders the menu tree. Groups containing the selected entry are expanded.
func Menu(items []menu.Item, selectedKey string) g.Node {
	return html.Nav(
		html.ID(MenuID),
		html.Class("menu"),
		html.Ul(menuNodes(items, selectedKey)...),
	)
}

func menuNodes(items []menu.Item, selectedKey string) []g.Node {
	nodes := make([]g.Node, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case menu.KindDivider:
			nodes = append(nodes, html.Li(
				html.Class("menu-divider"),
				g.Attr("role", "separator"),
				g.Attr("data-key", it.Key),
			))
		case menu.KindGroup:
			open := containsKey(it.Children, selectedKey)
			nodes = append(nodes, html.Li(
				html.Class("menu-group"),
				g.Attr("data-key", it.Key),
				g.El("details",
					g.If(open, g.Attr("open")),
					g.El("summary", g.Text(it.Label)),
					html.Ul(menuNodes(it.Children, selectedKey)...),
				),
			))
		default:
			class := "menu-entry"
			if it.Key == selectedKey {
				class += " selected"
			}
			nodes = append(nodes, html.Li(
				html.Class(class),
				g.Attr("data-key", it.Key),
				html.A(html.Href(menu.Href(menu.ActionForKey(it.Key))), g.Text(it.Label)),
			))
		}
	}
	return nodes
}

func containsKey(items []menu.Item, key string) bool {
	_, ok := menu.Find(items, key)
	return ok
}

// Header renders the top bar: collapse toggle, branding, user and sign-out.
func Header(d ShellData) g.Node {
	icon := "⟨"
	if d.Collapsed {
		icon = "⟩"
	}

	return html.Header(
		html.ID(HeaderID),
		html.Class("shell-header"),
		html.Div(
			html.Class("header-left"),
			html.Button(
				html.Type("button"),
				html.Class("collapse-toggle"),
				g.Attr("aria-label", d.t("Toggle menu")),
				g.Attr("aria-expanded", boolAttr(!d.Collapsed)),
				g.Attr("data-on:click", "@post('/shell/collapse')"),
				g.Text(icon),
			),
			html.A(html.Href(menu.RootPath), html.Class("site-name"), g.Text(d.Config.SiteName)),
		),
		html.Div(
			html.Class("header-right"),
			g.If(!d.IsMobile, html.Span(
				html.Class("username"),
				g.Text(d.User.Display(d.Config.UsernameFieldOrDefault())),
			)),
			g.El("details",
				html.Class("user-menu"),
				g.Attr("data-key", d.User.Key()),
				g.El("summary", g.Attr("aria-label", "user"), g.Text("👤")),
				html.Ul(
					html.Li(
						g.Attr("data-key", menu.SignOutKey),
						html.Button(
							html.Type("button"),
							g.Attr("data-on:click", "@post('/sign-out')"),
							g.Text(d.t("Sign Out")),
						),
					),
				),
			),
		),
	)
}

// Content renders the breadcrumb strip and the main card.
func Content(d ShellData, p ShellProps) g.Node {
	var body g.Node
	if p.IsLoading {
		body = Skeleton()
	} else {
		body = g.Group([]g.Node{
			p.Children,
			g.If(p.BottomActions != nil, html.Div(html.Class("bottom-actions"), p.BottomActions)),
		})
	}

	return html.Main(
		html.Class("shell-content"),
		html.Div(
			html.Class("crumbs"),
			p.Breadcrumbs,
			g.If(p.ViewOnSite != "", html.A(
				html.Class("view-on-site"),
				html.Href(p.ViewOnSite),
				html.Target("_blank"),
				html.Rel("noreferrer"),
				g.Text("↗ "+d.t("View on site")),
			)),
		),
		html.Div(
			html.Class("card"),
			html.Div(
				html.Class("card-head"),
				html.H5(html.Class("card-title"), g.Text(p.Title)),
				g.If(p.HeaderActions != nil, html.Div(html.Class("header-actions"), p.HeaderActions)),
			),
			html.Div(html.Class("card-body"), body),
		),
	)
}

// Skeleton renders the loading placeholder.
func Skeleton() g.Node {
	lines := make([]g.Node, 0, 5)
	lines = append(lines, html.Class("skeleton active"), g.Attr("aria-busy", "true"))
	for range 3 {
		lines = append(lines, html.Div(html.Class("skeleton-line")))
	}
	return html.Div(lines...)
}

// Signals is the client state posted back by the search box and the collapse toggle.
type Signals struct {
	Search   string `json:"search"`
	Selected string `json:"selected"`
}

func signals(d ShellData) string {
	b, _ := json.Marshal(Signals{Search: d.Search, Selected: d.SelectedKey})
	return string(b)
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
