package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/cli/output"
)

// ModelInfo is the machine-readable form of one configured model.
type ModelInfo struct {
	Name     string `json:"name" yaml:"name"`
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	InMenu   bool   `json:"in_menu" yaml:"in_menu"`
}

// NewModelsCommand creates the models command.
func NewModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the configured models",
		Long: `List every configured model with its display title and category.

Models without a category are listed but marked as not shown in the menu.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runModels(cmd)
		},
	}
}

func runModels(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	infos := make([]ModelInfo, len(cmdCtx.Cfg.Models))
	for i, m := range cmdCtx.Cfg.Models {
		infos[i] = ModelInfo{
			Name:     m.Name,
			Title:    catalog.TitleFromModel(m),
			Category: m.Category,
			InMenu:   m.HasCategory(),
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeYAML:
		return r.YAML(infos)
	}

	if len(infos) == 0 {
		r.Println("No models configured.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Title", "Category", "In menu"})
	for _, m := range infos {
		inMenu := "yes"
		if !m.InMenu {
			inMenu = "no"
		}
		t.AppendRow(table.Row{m.Name, m.Title, m.Category, inMenu})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}
