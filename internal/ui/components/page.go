package components

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/leapstack-labs/crudshell/internal/ui/resources"
)

// DatastarScript is the client runtime for SSE patches.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// PageData describes the document around a body.
type PageData struct {
	Title string
	Lang  string
	// UpdatesURL, when set, opens a long-lived SSE stream for live patches.
	UpdatesURL string
}

// Page renders a complete HTML document.
func Page(p PageData, body ...g.Node) g.Node {
	lang := p.Lang
	if lang == "" {
		lang = "en"
	}

	bodyAttrs := []g.Node{html.Class("ui-body")}
	if p.UpdatesURL != "" {
		bodyAttrs = append(bodyAttrs, g.Attr("data-init", "@get('"+p.UpdatesURL+"')"))
	}

	return html.Doctype(
		html.HTML(
			html.Lang(lang),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Text(p.Title)),
				html.Meta(html.Name("description"), html.Content(p.Title)),
				html.Link(html.Rel("stylesheet"), html.Href(resources.StaticPath("app.css"))),
				html.Script(html.Type("module"), html.Src(DatastarScript)),
			),
			html.Body(append(bodyAttrs, body...)...),
		),
	)
}
