package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/crudshell/internal/i18n"
	"github.com/leapstack-labs/crudshell/internal/menu"
	"github.com/leapstack-labs/crudshell/internal/tui"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the side menu interactively in the terminal",
		Long: `Open the side menu in the terminal. Type to filter, move with the arrow
keys and press enter to print the path of the chosen entry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd)
		},
	}
}

func runBrowse(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	if !r.IsTTY() {
		return errors.New("browse needs an interactive terminal; use 'crudshell menu' instead")
	}

	tr := i18n.New(i18n.Match("", cfg.GetUIConfig().Language))
	action, err := tui.Run(cfg.Catalog().SiteName, cfg.Models, tr.T)
	if err != nil {
		return err
	}

	switch action.(type) {
	case nil:
		return nil
	case menu.SignOut:
		r.Warning("sign-out is only available in the web shell")
		return nil
	default:
		r.Println(menu.Href(action))
		return nil
	}
}
