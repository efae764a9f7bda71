package components

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/leapstack-labs/crudshell/internal/menu"
)

// SignInData drives the sign-in form.
type SignInData struct {
	SiteName string
	Username string
	Error    string
	T        func(string) string
}

// SignIn renders the sign-in form. It posts as a regular form so the backend
// session cookie is relayed on the redirect.
func SignIn(d SignInData) g.Node {
	t := d.T
	if t == nil {
		t = func(s string) string { return s }
	}

	return html.Div(
		html.Class("signin card"),
		html.Div(html.Class("card-head"), html.H5(html.Class("card-title"), g.Text(d.SiteName))),
		html.Div(
			html.Class("card-body"),
			g.If(d.Error != "", html.Div(html.Class("error"), g.Attr("role", "alert"), g.Text(t(d.Error)))),
			g.El("form",
				html.Method("post"),
				html.Action(menu.SignInPath),
				g.El("label",
					g.Text(t("Username")),
					html.Input(html.Type("text"), html.Name("username"), html.Value(d.Username), html.Required(), g.Attr("autocomplete", "username")),
				),
				g.El("label",
					g.Text(t("Password")),
					html.Input(html.Type("password"), html.Name("password"), html.Required(), g.Attr("autocomplete", "current-password")),
				),
				html.Button(html.Type("submit"), g.Text(t("Sign In"))),
			),
		),
	)
}
