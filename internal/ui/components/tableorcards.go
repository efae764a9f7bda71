package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/leapstack-labs/crudshell/internal/display"
)

// TableOrCards renders rows as a table on wide viewports and as cards on mobile.
func TableOrCards(props display.Props, isMobile bool, empty string) g.Node {
	l := display.Resolve(props, isMobile)
	if len(l.Props.Rows) == 0 {
		return html.P(html.Class("empty"), g.Text(empty))
	}
	if l.Mode == display.ModeCards {
		return Cards(l.Props)
	}
	return Table(l)
}

// Table renders the table variant with its resolved scroll bounds.
func Table(l display.Layout) g.Node {
	class := "data-table"
	if l.Sticky {
		class += " sticky"
	}

	head := make([]g.Node, len(l.Props.Columns))
	for i, c := range l.Props.Columns {
		head[i] = html.Th(g.Attr("scope", "col"), g.Text(c.Title))
	}

	body := make([]g.Node, len(l.Props.Rows))
	for i, row := range l.Props.Rows {
		cells := make([]g.Node, 0, len(l.Props.Columns)+1)
		cells = append(cells, g.Attr("data-key", l.Props.Key(i)))
		for _, c := range l.Props.Columns {
			cells = append(cells, html.Td(g.Text(display.FormatValue(row[c.Key]))))
		}
		body[i] = html.Tr(cells...)
	}

	return html.Div(
		html.Class("data-table-wrap"),
		g.Attr("data-mode", l.Mode.String()),
		html.Style("max-height: "+strconv.Itoa(l.ScrollY)+"px"),
		html.Table(
			html.Class(class),
			html.Style("min-width: "+strconv.Itoa(l.ScrollX)+"px"),
			html.THead(html.Tr(head...)),
			html.TBody(body...),
		),
	)
}

// Cards renders one card per row, listing every column as a term/value pair.
func Cards(p display.Props) g.Node {
	cards := make([]g.Node, 0, len(p.Rows)+2)
	cards = append(cards, html.Class("data-cards"), g.Attr("data-mode", display.ModeCards.String()))
	for i, row := range p.Rows {
		pairs := make([]g.Node, 0, 2*len(p.Columns))
		for _, c := range p.Columns {
			pairs = append(pairs,
				html.Dt(g.Text(c.Title)),
				html.Dd(g.Text(display.FormatValue(row[c.Key]))),
			)
		}
		cards = append(cards, html.Div(
			html.Class("data-card"),
			g.Attr("data-key", p.Key(i)),
			html.Dl(pairs...),
		))
	}
	return html.Div(cards...)
}
