package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/cli/config"
	"github.com/leapstack-labs/crudshell/internal/rows"
	"github.com/leapstack-labs/crudshell/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the admin shell web server",
		Long: `Start a web server providing the admin navigation shell.

The shell provides:
- A side menu grouped by model category, with live search
- A header with the signed-in user and sign-out
- List views rendered as tables or, on mobile, as cards

With --watch the config file is reloaded on change and open pages receive
the updated menu.`,
		Example: `  # Start on the configured port
  crudshell serve

  # Start on a custom port
  crudshell serve --port 3000

  # Start without auto-opening the browser
  crudshell serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload the config file on change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	// CLI flags override config file
	uiCfg := cfg.GetUIConfig()
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	autoOpen := uiCfg.AutoOpen && !opts.NoBrowser
	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	var source rows.Source
	sqlSource, err := openRows(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open row source: %w", err)
	}
	if sqlSource != nil {
		defer func() { _ = sqlSource.Close() }()
		source = sqlSource
	}

	envName, _ := cmd.Flags().GetString("env")
	flags := cmd.Root().PersistentFlags()
	reload := func() (catalog.Configuration, error) {
		next, err := config.LoadConfigWithEnv(config.GetConfigFileUsed(), envName, flags)
		if err != nil {
			return catalog.Configuration{}, err
		}
		return next.Catalog(), nil
	}

	server := ui.NewServer(ui.Config{
		Catalog:       catalog.NewHolder(cfg.Catalog()),
		Backend:       newBackend(cfg, logger),
		Rows:          source,
		RowLimit:      cfg.GetRowsConfig().Limit,
		Port:          port,
		Watch:         watch,
		ConfigFile:    config.GetConfigFileUsed(),
		Reload:        reload,
		SessionSecret: sessionSecret(uiCfg.SessionSecret, logger.Warn),
		Language:      uiCfg.Language,
		Logger:        logger,
	})

	if autoOpen {
		go openBrowser(fmt.Sprintf("http://localhost:%d", port))
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting admin shell on http://localhost:%d\n", port)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// sessionSecret returns the configured secret or a random one. A random
// secret invalidates view state cookies on every restart.
func sessionSecret(configured string, warn func(msg string, args ...any)) string {
	if configured != "" {
		return configured
	}
	warn("ui.session_secret not set, using a random secret for this run")
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
