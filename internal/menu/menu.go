// Package menu builds the admin side-menu tree from the configured models.
//
// Menu construction is a pure function of the model list and the current
// search string; nothing else influences which keys appear.
package menu

import (
	"strings"

	"github.com/leapstack-labs/crudshell/internal/catalog"
)

// Well-known menu keys.
const (
	DashboardKey = "dashboard"
	DividerKey   = "divider"
	SignOutKey   = "sign-out"

	dividerSuffix = "-divider"
)

// Kind distinguishes the node types of the menu.
type Kind int

const (
	// KindEntry is a clickable leaf.
	KindEntry Kind = iota
	// KindGroup is a labeled category holding entries.
	KindGroup
	// KindDivider is a visual separator.
	KindDivider
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindGroup:
		return "group"
	case KindDivider:
		return "divider"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Item is a node of the menu tree.
type Item struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Children []Item `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsDivider reports whether the item is a separator.
func (i Item) IsDivider() bool { return i.Kind == KindDivider }

// Translate maps a display text to its localized form.
type Translate func(string) string

func identity(s string) string { return s }

// Build returns the menu for the given models and search string.
//
// The result always starts with the dashboard entry and a divider. Each
// distinct defined category then contributes a group node keyed by its
// lowercased name, followed by a divider. Models without a category are not
// part of any group and therefore do not appear.
func Build(models []catalog.ModelDescriptor, search string, t Translate) []Item {
	if t == nil {
		t = identity
	}

	items := []Item{
		{Key: DashboardKey, Label: t("Dashboard"), Kind: KindEntry},
		{Key: DividerKey, Kind: KindDivider},
	}

	needle := strings.ToLower(search)
	for _, category := range catalog.Categories(models) {
		items = append(items, categoryItems(models, strings.ToLower(category), needle, t)...)
	}
	return items
}

// categoryItems produces the group node and trailing divider for one category.
func categoryItems(models []catalog.ModelDescriptor, category, needle string, t Translate) []Item {
	children := make([]Item, 0)
	for _, m := range models {
		if !m.HasCategory() || strings.ToLower(m.Category) != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(m.Name), needle) {
			continue
		}
		children = append(children, Item{
			Key:   m.Name,
			Label: catalog.TitleFromModel(m),
			Kind:  KindEntry,
		})
	}

	return []Item{
		{
			Key:      category,
			Label:    t(catalog.TitleCase(category)),
			Kind:     KindGroup,
			Children: children,
		},
		{Key: category + dividerSuffix, Kind: KindDivider},
	}
}

// EntryKeys returns the keys of every entry in the tree, depth first.
func EntryKeys(items []Item) []string {
	var keys []string
	var walk func([]Item)
	walk = func(nodes []Item) {
		for _, n := range nodes {
			switch n.Kind {
			case KindEntry:
				keys = append(keys, n.Key)
			case KindGroup:
				walk(n.Children)
			}
		}
	}
	walk(items)
	return keys
}

// Find returns the entry with the given key, searching groups recursively.
func Find(items []Item, key string) (Item, bool) {
	for _, n := range items {
		if n.Kind == KindEntry && n.Key == key {
			return n, true
		}
		if n.Kind == KindGroup {
			if found, ok := Find(n.Children, key); ok {
				return found, true
			}
		}
	}
	return Item{}, false
}
