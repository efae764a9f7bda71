package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/crudshell/internal/cli/output"
	"github.com/leapstack-labs/crudshell/internal/i18n"
	"github.com/leapstack-labs/crudshell/internal/menu"
)

// NewMenuCommand creates the menu command.
func NewMenuCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the side menu built from the configured models",
		Long: `Print the side menu exactly as the shell builds it: the dashboard entry,
then one group per category with its matching models.

Output adapts to environment:
  - Terminal: Styled tree
  - Piped/Scripted: Markdown list

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # Print the whole menu
  crudshell menu

  # Filter entries like the search box does
  crudshell menu --search ord

  # Machine-readable tree
  crudshell menu -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, search)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter entries by model name")

	return cmd
}

func runMenu(cmd *cobra.Command, search string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	tr := i18n.New(i18n.Match("", cfg.GetUIConfig().Language))
	items := menu.Build(cfg.Models, search, tr.T)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(items)
	case output.ModeYAML:
		return r.YAML(items)
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("Menu (%d entries)", len(menu.EntryKeys(items))))
		writeMenuMarkdown(r, items, 0)
		return nil
	default:
		r.Header(1, cfg.Catalog().SiteName)
		writeMenuText(r, items, 0)
		return nil
	}
}

func writeMenuMarkdown(r *output.Renderer, items []menu.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		switch it.Kind {
		case menu.KindDivider:
			continue
		case menu.KindGroup:
			r.Printf("%s- **%s** (`%s`)\n", indent, it.Label, it.Key)
			writeMenuMarkdown(r, it.Children, depth+1)
		default:
			r.Printf("%s- [%s](%s)\n", indent, it.Label, menu.Href(menu.ActionForKey(it.Key)))
		}
	}
}

func writeMenuText(r *output.Renderer, items []menu.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		switch it.Kind {
		case menu.KindDivider:
			r.Println(r.Muted(indent + "────────"))
		case menu.KindGroup:
			r.Println(indent + r.Styles.Group.Render(it.Label))
			writeMenuText(r, it.Children, depth+1)
		default:
			r.Printf("%s  %s %s\n", indent, it.Label, r.Muted(menu.Href(menu.ActionForKey(it.Key))))
		}
	}
}
