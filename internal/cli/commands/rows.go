package commands

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/cli/output"
	"github.com/leapstack-labs/crudshell/internal/display"
	"github.com/leapstack-labs/crudshell/internal/rows"
)

// RowsOptions holds options for the rows command.
type RowsOptions struct {
	Cards bool
	Limit int
}

// NewRowsCommand creates the rows command.
func NewRowsCommand() *cobra.Command {
	opts := &RowsOptions{}

	cmd := &cobra.Command{
		Use:   "rows <model>",
		Short: "Print the rows of a model as a table or as cards",
		Long: `Print the rows of a configured model from the row source.

Rows are shown as a table by default, or as one card per row with --cards,
matching the desktop and mobile list pages of the shell.`,
		Example: `  # Table of users
  crudshell rows users

  # Card layout
  crudshell rows orders --cards

  # Raw records
  crudshell rows users -o json`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return getConfig().ModelNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRows(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Cards, "cards", false, "Show one card per row")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum rows to fetch (default: rows.limit)")

	return cmd
}

func runRows(cmd *cobra.Command, name string, opts *RowsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	model, ok := cfg.Catalog().Model(name)
	if !ok {
		return fmt.Errorf("unknown model: %s", name)
	}

	src, err := openRows(cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}
	if src == nil {
		return rows.ErrNoSource
	}
	defer func() { _ = src.Close() }()

	limit := opts.Limit
	if limit <= 0 {
		limit = cfg.GetRowsConfig().Limit
	}

	cols, data, err := src.List(cmd.Context(), model.Name, limit)
	if err != nil && !errors.Is(err, rows.ErrUnknownModel) {
		return fmt.Errorf("failed to list %s: %w", model.Name, err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(data)
	case output.ModeYAML:
		return r.YAML(data)
	}

	layout := display.Resolve(display.Props{Columns: cols, Rows: data, RowKey: "id"}, opts.Cards)
	title := catalog.TitleFromModel(model)

	if len(data) == 0 {
		r.Header(1, title)
		r.Println("(0 rows)")
		return nil
	}

	if layout.Mode == display.ModeCards {
		renderCards(r, title, layout.Props)
		return nil
	}
	renderTable(r, title, layout.Props)
	return nil
}

func renderTable(r *output.Renderer, title string, p display.Props) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)

	header := make(table.Row, len(p.Columns))
	for i, c := range p.Columns {
		header[i] = c.Title
	}
	t.AppendHeader(header)

	for _, row := range p.Rows {
		out := make(table.Row, len(p.Columns))
		for i, c := range p.Columns {
			out[i] = display.FormatValue(row[c.Key])
		}
		t.AppendRow(out)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(p.Rows))})

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

func renderCards(r *output.Renderer, title string, p display.Props) {
	r.Header(1, title)
	markdown := r.EffectiveMode() == output.ModeMarkdown
	for i, row := range p.Rows {
		if markdown {
			r.Printf("## %s\n\n", p.Key(i))
		} else {
			r.Println(r.Styles.Group.Render(p.Key(i)))
		}
		for _, c := range p.Columns {
			if markdown {
				r.Printf("- **%s**: %s\n", c.Title, display.FormatValue(row[c.Key]))
			} else {
				r.Printf("  %s %s\n", r.Muted(c.Title+":"), display.FormatValue(row[c.Key]))
			}
		}
		r.Println()
	}
}
