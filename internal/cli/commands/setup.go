package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/crudshell/internal/cli/config"
	"github.com/leapstack-labs/crudshell/internal/cli/output"
	"github.com/leapstack-labs/crudshell/internal/rows"
	"github.com/leapstack-labs/crudshell/internal/session"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a renderer for the
// configured output mode.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, loading it from the working
// directory when the root command has not done so.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	if cfg, err := config.LoadConfig("", nil); err == nil {
		return cfg
	}
	return &config.Config{Environment: config.DefaultEnv, OutputFormat: config.DefaultOutput}
}

// openRows opens the configured row source. It returns nil when no DSN is set.
func openRows(cfg *config.Config, logger *slog.Logger) (*rows.SQLSource, error) {
	rc := cfg.GetRowsConfig()
	if rc.DSN == "" {
		return nil, nil
	}
	return rows.Open(rc.Driver, rc.DSN, cfg.ModelNames(), logger)
}

// newBackend creates the authentication backend client.
func newBackend(cfg *config.Config, logger *slog.Logger) *session.Backend {
	bc := cfg.GetBackendConfig()
	return session.NewBackend(session.BackendConfig{
		BaseURL: bc.BaseURL,
		Timeout: bc.Timeout,
		Logger:  logger,
	})
}
