package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/crudshell/internal/cli/config"
	"github.com/leapstack-labs/crudshell/internal/cli/testutil"
)

// runInProject executes cmd inside a fresh test project with the given output mode.
func runInProject(t *testing.T, cmd *cobra.Command, mode string, args ...string) (string, error) {
	t.Helper()

	t.Chdir(testutil.SetupTestProject(t))
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	if mode != "" {
		t.Setenv("CRUDSHELL_OUTPUT", mode)
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		name  string
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{"serve", NewServeCommand(), "serve", []string{"port", "no-browser", "watch"}},
		{"menu", NewMenuCommand(), "menu", []string{"search"}},
		{"models", NewModelsCommand(), "models", nil},
		{"rows", NewRowsCommand(), "rows <model>", []string{"cards", "limit"}},
		{"browse", NewBrowseCommand(), "browse", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestMenuCommand(t *testing.T) {
	tests := []struct {
		name   string
		mode   string
		args   []string
		want   []string
		reject []string
	}{
		{
			name: "markdown when piped",
			want: []string{
				"# Menu (4 entries)",
				"- [Dashboard](/)",
				"- **Auth** (`auth`)",
				"  - [Users](/list/users)",
				"  - [Customer Orders](/list/orders)",
			},
			reject: []string{"settings"},
		},
		{
			name:   "search filters entries",
			args:   []string{"--search", "ORD"},
			want:   []string{"[Customer Orders](/list/orders)", "**Auth**"},
			reject: []string{"/list/users", "/list/groups"},
		},
		{
			name: "json tree",
			mode: "json",
			want: []string{`"kind": "group"`, `"key": "sales"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runInProject(t, NewMenuCommand(), tt.mode, tt.args...)
			require.NoError(t, err)
			testutil.AssertNoANSI(t, out)

			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, reject := range tt.reject {
				assert.NotContains(t, out, reject)
			}
		})
	}
}

func TestModelsCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, err := runInProject(t, NewModelsCommand(), "json")
		require.NoError(t, err)

		var models []ModelInfo
		require.NoError(t, json.Unmarshal([]byte(out), &models))
		require.Len(t, models, 4)
		assert.Equal(t, ModelInfo{Name: "orders", Title: "Customer Orders", Category: "sales", InMenu: true}, models[2])
		assert.False(t, models[3].InMenu)
	})

	t.Run("markdown table", func(t *testing.T) {
		out, err := runInProject(t, NewModelsCommand(), "")
		require.NoError(t, err)
		assert.Contains(t, out, "| Name |")
		assert.Contains(t, out, "Customer Orders")
	})
}

func TestRowsCommand(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "table",
			args: []string{"users"},
			want: []string{"ada@example.com", "grace@example.com", "2 rows"},
		},
		{
			name: "cards",
			args: []string{"orders", "--cards"},
			want: []string{"# Customer Orders", "## 10", "- **note**: NULL"},
		},
		{
			name: "limit",
			args: []string{"users", "--limit", "1"},
			want: []string{"ada@example.com", "1 rows"},
		},
		{
			name:    "unknown model",
			args:    []string{"nope"},
			wantErr: "unknown model: nope",
		},
		{
			name:    "configured model without table",
			args:    []string{"groups"},
			wantErr: "failed to list groups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runInProject(t, NewRowsCommand(), tt.mode, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			testutil.AssertNoANSI(t, out)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRowsCommand_YAML(t *testing.T) {
	out, err := runInProject(t, NewRowsCommand(), "yaml", "users")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "ada@example.com", records[0]["email"])
}

func TestBrowseCommand_RequiresTerminal(t *testing.T) {
	_, err := runInProject(t, NewBrowseCommand(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
