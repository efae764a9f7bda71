// Package components provides the HTML views of the admin shell.
package components

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Templ adapts a node to templ.Component so it can be streamed as a
// Datastar element patch.
func Templ(n g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return n.Render(w)
	})
}

// RenderString renders n to a string.
func RenderString(n g.Node) (string, error) {
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

