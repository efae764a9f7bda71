// Package config provides configuration management for the crudshell CLI.
//
// Values are layered with koanf: built-in defaults, then the YAML config
// file, then CRUDSHELL_ environment variables, then command-line flags.
package config

import (
	"time"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	sharedcfg "github.com/leapstack-labs/crudshell/internal/config"
)

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultEnv    = sharedcfg.DefaultEnv
	DefaultOutput = sharedcfg.DefaultOutput // Auto-detect: TTY=text, non-TTY=markdown
)

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	Language      string `koanf:"language"`
	SessionSecret string `koanf:"session_secret"`
}

// BackendConfig points at the authentication backend.
type BackendConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// RowsConfig configures where list pages read their rows from.
// An empty DSN disables row loading.
type RowsConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
	Limit  int    `koanf:"limit"`
}

// Config holds all CLI configuration options.
type Config struct {
	ProjectRoot   string                    `koanf:"-"`
	SiteName      string                    `koanf:"site_name"`
	UsernameField string                    `koanf:"username_field"`
	Models        []catalog.ModelDescriptor `koanf:"models"`
	Environment   string                    `koanf:"environment"`
	Verbose       bool                      `koanf:"verbose"`
	OutputFormat  string                    `koanf:"output"`
	UI            *UIConfig                 `koanf:"ui"`
	Backend       *BackendConfig            `koanf:"backend"`
	Rows          *RowsConfig               `koanf:"rows"`
	Environments  map[string]EnvConfig      `koanf:"environments"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	Backend *BackendConfig `koanf:"backend"`
	Rows    *RowsConfig    `koanf:"rows"`
}

// Catalog returns the admin configuration consumed by the shell.
func (c *Config) Catalog() catalog.Configuration {
	return catalog.Configuration{
		SiteName:      c.SiteName,
		UsernameField: c.UsernameField,
		Models:        c.Models,
	}
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     sharedcfg.DefaultPort,
		AutoOpen: true,
		Watch:    true,
		Language: sharedcfg.DefaultLanguage,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = sharedcfg.DefaultPort
	}
	if ui.Language == "" {
		ui.Language = sharedcfg.DefaultLanguage
	}
	return ui
}

// GetBackendConfig returns the backend config with defaults applied.
func (c *Config) GetBackendConfig() *BackendConfig {
	if c.Backend == nil {
		return &BackendConfig{BaseURL: sharedcfg.DefaultBackendURL, Timeout: sharedcfg.DefaultBackendTimeout}
	}
	b := c.Backend
	if b.BaseURL == "" {
		b.BaseURL = sharedcfg.DefaultBackendURL
	}
	if b.Timeout == 0 {
		b.Timeout = sharedcfg.DefaultBackendTimeout
	}
	return b
}

// GetRowsConfig returns the rows config with defaults applied.
func (c *Config) GetRowsConfig() *RowsConfig {
	if c.Rows == nil {
		return &RowsConfig{Driver: sharedcfg.DefaultRowsDriver, Limit: sharedcfg.DefaultRowsLimit}
	}
	r := c.Rows
	if r.Driver == "" {
		r.Driver = sharedcfg.DefaultRowsDriver
	}
	if r.Limit == 0 {
		r.Limit = sharedcfg.DefaultRowsLimit
	}
	return r
}

// ModelNames returns the configured model names in order.
func (c *Config) ModelNames() []string {
	names := make([]string, len(c.Models))
	for i, m := range c.Models {
		names[i] = m.Name
	}
	return names
}
