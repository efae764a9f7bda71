// Package catalog describes the manageable entity types shown by the admin shell.
package catalog

import (
	"strings"
	"unicode"
)

// DefaultUsernameField is the user record field displayed in the header
// when the configuration does not name one.
const DefaultUsernameField = "username"

// ModelDescriptor describes one manageable entity type.
// An empty Category means the model is uncategorized.
type ModelDescriptor struct {
	Name     string `koanf:"name" json:"name" yaml:"name"`
	Category string `koanf:"category" json:"category,omitempty" yaml:"category,omitempty"`
	Title    string `koanf:"title" json:"title,omitempty" yaml:"title,omitempty"`
}

// HasCategory reports whether the model declares a category.
func (m ModelDescriptor) HasCategory() bool {
	return m.Category != ""
}

// Configuration is the site-wide admin configuration consumed by the shell.
type Configuration struct {
	SiteName      string            `koanf:"site_name" json:"site_name" yaml:"site_name"`
	UsernameField string            `koanf:"username_field" json:"username_field" yaml:"username_field"`
	Models        []ModelDescriptor `koanf:"models" json:"models" yaml:"models"`
}

// Model returns the descriptor with the given name.
func (c Configuration) Model(name string) (ModelDescriptor, bool) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelDescriptor{}, false
}

// ModelNames returns the configured model names in order.
func (c Configuration) ModelNames() []string {
	names := make([]string, 0, len(c.Models))
	for _, m := range c.Models {
		names = append(names, m.Name)
	}
	return names
}

// UsernameFieldOrDefault returns the configured username field, falling back
// to DefaultUsernameField.
func (c Configuration) UsernameFieldOrDefault() string {
	if c.UsernameField == "" {
		return DefaultUsernameField
	}
	return c.UsernameField
}

// Categories returns the distinct defined categories in first-seen order.
// Distinctness is by exact string; case folding is left to the caller.
func Categories(models []ModelDescriptor) []string {
	seen := make(map[string]struct{}, len(models))
	var out []string
	for _, m := range models {
		if !m.HasCategory() {
			continue
		}
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		out = append(out, m.Category)
	}
	return out
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// A word is a run of letters, digits or underscores.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		word := r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case word && !inWord:
			b.WriteRune(unicode.ToUpper(r))
		case word:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		inWord = word
	}
	return b.String()
}

// TitleFromModel returns the display label for a model.
// e.g., "user_profiles" -> "User Profiles"
func TitleFromModel(m ModelDescriptor) string {
	if m.Title != "" {
		return m.Title
	}
	name := strings.NewReplacer("_", " ", "-", " ").Replace(m.Name)
	return TitleCase(strings.Join(strings.Fields(name), " "))
}
