package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{"", ModeMarkdown},
		{ModeAuto, ModeMarkdown},
		{ModeText, ModeText},
		{ModeJSON, ModeJSON},
		{ModeYAML, ModeYAML},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, tt.mode)
			assert.False(t, r.IsTTY())
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_Header(t *testing.T) {
	var md bytes.Buffer
	NewRenderer(&md, &md, ModeAuto).Header(2, "Menu")
	assert.Equal(t, "## Menu\n\n", md.String())

	var text bytes.Buffer
	NewRenderer(&text, &text, ModeText).Header(1, "Menu")
	assert.Equal(t, "Menu\n\n", text.String(), "no ANSI codes off a terminal")
}

func TestRenderer_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Success("done")
	r.Warning("careful")
	r.Error("broken")

	assert.Equal(t, "✓ done\n", out.String())
	assert.Contains(t, errOut.String(), "! careful")
	assert.Contains(t, errOut.String(), "✗ broken")
}

func TestRenderer_Encoders(t *testing.T) {
	v := map[string]any{"name": "users", "children": []string{"a"}}

	var js bytes.Buffer
	require.NoError(t, NewRenderer(&js, &js, ModeJSON).JSON(v))
	assert.JSONEq(t, `{"name":"users","children":["a"]}`, js.String())

	var ym bytes.Buffer
	require.NoError(t, NewRenderer(&ym, &ym, ModeYAML).YAML(v))
	assert.YAMLEq(t, "name: users\nchildren: [a]\n", ym.String())
}
