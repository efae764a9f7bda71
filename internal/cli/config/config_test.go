package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/crudshell/internal/catalog"
)

const fixtureYAML = `site_name: Acme Admin
username_field: email
models:
  - name: users
    category: Auth
  - name: orders
    category: sales
    title: Customer Orders
  - name: settings
ui:
  port: 9000
  language: es
backend:
  base_url: https://auth.example.com/api
  timeout: 3s
rows:
  dsn: data/admin.db
environments:
  prod:
    backend:
      base_url: https://auth.prod.example.com/api
    rows:
      limit: 50
`

// writeProject creates a project directory with a config file and chdirs into it.
func writeProject(t *testing.T, content string) string {
	t.Helper()
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crudshell.yaml"), []byte(content), 0600))
	t.Chdir(dir)
	return dir
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend-url", "", "")
	fs.String("rows-dsn", "", "")
	fs.String("rows-driver", "", "")
	fs.String("language", "", "")
	fs.String("site-name", "", "")
	fs.BoolP("verbose", "v", false, "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "Admin", cfg.SiteName)
	assert.Equal(t, "username", cfg.UsernameField)
	assert.Empty(t, cfg.Models)
	assert.Equal(t, 8765, cfg.GetUIConfig().Port)
	assert.Equal(t, 10*time.Second, cfg.GetBackendConfig().Timeout)
	assert.Equal(t, "sqlite", cfg.GetRowsConfig().Driver)
	assert.Equal(t, "", GetConfigFileUsed())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := writeProject(t, fixtureYAML)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "Acme Admin", cfg.SiteName)
	assert.Equal(t, "email", cfg.UsernameField)
	assert.Equal(t, []catalog.ModelDescriptor{
		{Name: "users", Category: "Auth"},
		{Name: "orders", Category: "sales", Title: "Customer Orders"},
		{Name: "settings"},
	}, cfg.Models)
	assert.Equal(t, 9000, cfg.GetUIConfig().Port)
	assert.Equal(t, "es", cfg.GetUIConfig().Language)
	assert.Equal(t, "https://auth.example.com/api", cfg.GetBackendConfig().BaseURL)
	assert.Equal(t, 3*time.Second, cfg.GetBackendConfig().Timeout)
	assert.Equal(t, filepath.Join(dir, "data", "admin.db"), cfg.GetRowsConfig().DSN)
	assert.Equal(t, []string{"users", "orders", "settings"}, cfg.ModelNames())
	assert.Equal(t, "Acme Admin", cfg.Catalog().SiteName)
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_FoundUpward(t *testing.T) {
	dir := writeProject(t, fixtureYAML)
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "Acme Admin", cfg.SiteName)
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	writeProject(t, fixtureYAML)
	t.Setenv("CRUDSHELL_SITE_NAME", "From Env")
	t.Setenv("CRUDSHELL_UI_PORT", "9100")
	t.Setenv("CRUDSHELL_BACKEND_TIMEOUT", "250ms")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "From Env", cfg.SiteName)
	assert.Equal(t, 9100, cfg.GetUIConfig().Port)
	assert.Equal(t, 250*time.Millisecond, cfg.GetBackendConfig().Timeout)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	writeProject(t, fixtureYAML)
	t.Setenv("CRUDSHELL_BACKEND_BASE_URL", "https://env.example.com")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{
		"--backend-url", "https://flag.example.com",
		"--rows-dsn", ":memory:",
		"--site-name", "Flagged",
		"-v",
	}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.com", cfg.GetBackendConfig().BaseURL)
	assert.Equal(t, ":memory:", cfg.GetRowsConfig().DSN)
	assert.Equal(t, "Flagged", cfg.SiteName)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigWithEnv_EnvironmentOverrides(t *testing.T) {
	writeProject(t, fixtureYAML)

	cfg, err := LoadConfigWithEnv("", "prod", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://auth.prod.example.com/api", cfg.GetBackendConfig().BaseURL)
	assert.Equal(t, 3*time.Second, cfg.GetBackendConfig().Timeout)
	assert.Equal(t, 50, cfg.GetRowsConfig().Limit)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	_, err := LoadConfig("nope.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file nope.yaml")
}

func TestLoadConfig_ExpandsEnvVarsInDSN(t *testing.T) {
	writeProject(t, "rows:\n  driver: pgx\n  dsn: postgres://admin:${TEST_DB_PASSWORD}@db/admin\n")
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://admin:secret123@db/admin", cfg.GetRowsConfig().DSN)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{"empty config is valid", Config{}, ""},
		{"missing model name", Config{Models: []catalog.ModelDescriptor{{Category: "x"}}}, "name is required"},
		{"duplicate model", Config{Models: []catalog.ModelDescriptor{{Name: "a"}, {Name: "a"}}}, "duplicate model name"},
		{"relative backend url", Config{Backend: &BackendConfig{BaseURL: "/api"}}, "absolute URL"},
		{"port out of range", Config{UI: &UIConfig{Port: 70000}}, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.Contains(t, err.Error(), "crudshell.yaml")
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR_ONE}", "value_one"},
		{"/path/${TEST_VAR_ONE}/file", "/path/value_one/file"},
		{"${UNSET_VARIABLE_XYZ}", "${UNSET_VARIABLE_XYZ}"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, expandEnvVars(tt.input), tt.input)
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "ui.port", envKey("CRUDSHELL_UI_PORT"))
	assert.Equal(t, "ui.session_secret", envKey("CRUDSHELL_UI_SESSION_SECRET"))
	assert.Equal(t, "backend.base_url", envKey("CRUDSHELL_BACKEND_BASE_URL"))
	assert.Equal(t, "site_name", envKey("CRUDSHELL_SITE_NAME"))
	assert.Equal(t, "username_field", envKey("CRUDSHELL_USERNAME_FIELD"))
}

func TestGetLogger_FallsBackToDiscard(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.Default()
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
