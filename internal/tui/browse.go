// Package tui provides the interactive terminal menu browser.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/crudshell/internal/catalog"
	"github.com/leapstack-labs/crudshell/internal/menu"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	groupStyle    = lipgloss.NewStyle().Bold(true)
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is a bubbletea model for browsing the menu with live search.
type Model struct {
	title   string
	models  []catalog.ModelDescriptor
	builder *menu.Builder

	input  textinput.Model
	items  []menu.Item
	keys   []string
	cursor int
	width  int

	chosen menu.Action
}

// New creates a browser over models. t translates labels and may be nil.
func New(title string, models []catalog.ModelDescriptor, t menu.Translate) Model {
	in := textinput.New()
	in.Placeholder = "Search By Menu"
	in.Prompt = "/ "
	in.Focus()

	m := Model{
		title:   title,
		models:  models,
		builder: menu.NewBuilder(t),
		input:   in,
	}
	m.rebuild()
	return m
}

func (m *Model) rebuild() {
	m.items = m.builder.Build(m.models, m.input.Value())
	m.keys = menu.EntryKeys(m.items)
	if m.cursor >= len(m.keys) {
		m.cursor = max(len(m.keys)-1, 0)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.keys)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeyEnter:
			if len(m.keys) > 0 {
				m.chosen = menu.ActionForKey(m.keys[m.cursor])
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.cursor = 0
		m.rebuild()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	selected := ""
	if len(m.keys) > 0 {
		selected = m.keys[m.cursor]
	}
	idx := 0
	writeItems(&b, m.items, selected, &idx, m.cursor, 0)

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter open • esc quit"))
	return b.String()
}

func writeItems(b *strings.Builder, items []menu.Item, selected string, idx *int, cursor, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		switch it.Kind {
		case menu.KindDivider:
			b.WriteString(dividerStyle.Render(indent + "────────"))
		case menu.KindGroup:
			b.WriteString(groupStyle.Render(indent + it.Label))
			b.WriteString("\n")
			writeItems(b, it.Children, selected, idx, cursor, depth+1)
			continue
		default:
			line := indent + "  " + it.Label
			if *idx == cursor && it.Key == selected {
				line = selectedStyle.Render(line)
			}
			*idx++
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
}

// Chosen returns the action picked with enter, or nil if the user quit.
func (m Model) Chosen() menu.Action { return m.chosen }

// Run starts the browser on the terminal and returns the chosen action.
func Run(title string, models []catalog.ModelDescriptor, t menu.Translate, opts ...tea.ProgramOption) (menu.Action, error) {
	final, err := tea.NewProgram(New(title, models, t), opts...).Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).Chosen(), nil
}
