package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	intconfig "github.com/leapstack-labs/crudshell/internal/config"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix prefixes every environment variable read by the loader.
const envPrefix = "CRUDSHELL_"

// sections are the nested config blocks addressable from env vars and flags.
var sections = []string{"ui", "backend", "rows"}

// flagKeys maps flags whose names do not follow the section_key pattern.
var flagKeys = map[string]string{
	"backend-url": "backend.base_url",
	"rows-driver": "rows.driver",
	"rows-dsn":    "rows.dsn",
	"language":    "ui.language",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// configExistsIn returns the config file inside dir, or "".
func configExistsIn(dir string) string {
	for _, name := range intconfig.ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configExistsIn(dir); found != "" {
			return found
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// envKey turns CRUDSHELL_UI_PORT into ui.port and CRUDSHELL_SITE_NAME into site_name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// flagKey turns a flag name into its config key.
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	return LoadConfigWithEnv(cfgFile, "", flags)
}

// LoadConfigWithEnv loads configuration with an optional environment override
// selecting one entry of the environments block.
func LoadConfigWithEnv(cfgFile string, envOverride string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"site_name":        intconfig.DefaultSiteName,
		"username_field":   intconfig.DefaultUsernameField,
		"environment":      DefaultEnv,
		"verbose":          false,
		"output":           DefaultOutput,
		"ui.port":          intconfig.DefaultPort,
		"ui.auto_open":     true,
		"ui.watch":         true,
		"ui.language":      intconfig.DefaultLanguage,
		"backend.base_url": intconfig.DefaultBackendURL,
		"backend.timeout":  intconfig.DefaultBackendTimeout.String(),
		"rows.driver":      intconfig.DefaultRowsDriver,
		"rows.limit":       intconfig.DefaultRowsLimit,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = cfgFile
	if configFileUsed == "" {
		if cwd, err := os.Getwd(); err == nil {
			configFileUsed = findConfigUpward(cwd)
		}
	}
	projectRoot, _ := os.Getwd()
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3. Load environment variables (CRUDSHELL_ prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot

	// Apply environment-specific overrides if an environment is selected
	envName := cfg.Environment
	if envOverride != "" {
		envName = envOverride
	}
	if envName != "" && cfg.Environments != nil {
		if envCfg, ok := cfg.Environments[envName]; ok {
			cfg.Backend = mergeBackend(cfg.Backend, envCfg.Backend)
			cfg.Rows = mergeRows(cfg.Rows, envCfg.Rows)
		}
	}

	// Expand ${VAR} references in secrets and connection strings
	if cfg.Rows != nil {
		cfg.Rows.DSN = expandEnvVars(cfg.Rows.DSN)
		if cfg.Rows.Driver == intconfig.DefaultRowsDriver || cfg.Rows.Driver == "duckdb" {
			cfg.Rows.DSN = resolvePathRelativeTo(cfg.Rows.DSN, projectRoot)
		}
	}
	if cfg.Backend != nil {
		cfg.Backend.BaseURL = expandEnvVars(cfg.Backend.BaseURL)
	}
	if cfg.UI != nil {
		cfg.UI.SessionSecret = expandEnvVars(cfg.UI.SessionSecret)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// resolvePathRelativeTo resolves a file path relative to baseDir if it's not absolute.
// In-memory and URI-style DSNs are returned unchanged.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || strings.HasPrefix(path, ":memory:") || strings.HasPrefix(path, "file:") {
		return path
	}
	return filepath.Join(baseDir, path)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig or LoadConfigWithEnv is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// mergeBackend merges two backend configs, with override taking precedence.
func mergeBackend(base, override *BackendConfig) *BackendConfig {
	if override == nil {
		return base
	}
	if base == nil {
		return override
	}
	merged := *base
	if override.BaseURL != "" {
		merged.BaseURL = override.BaseURL
	}
	if override.Timeout != 0 {
		merged.Timeout = override.Timeout
	}
	return &merged
}

// mergeRows merges two rows configs, with override taking precedence.
func mergeRows(base, override *RowsConfig) *RowsConfig {
	if override == nil {
		return base
	}
	if base == nil {
		return override
	}
	merged := *base
	if override.Driver != "" {
		merged.Driver = override.Driver
	}
	if override.DSN != "" {
		merged.DSN = override.DSN
	}
	if override.Limit != 0 {
		merged.Limit = override.Limit
	}
	return &merged
}
