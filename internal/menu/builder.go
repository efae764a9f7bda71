package menu

import (
	"slices"
	"sync"

	"github.com/leapstack-labs/crudshell/internal/catalog"
)

// Builder memoizes Build for the most recent (models, search) input.
// It is safe for concurrent use.
type Builder struct {
	translate Translate

	mu     sync.Mutex
	models []catalog.ModelDescriptor
	search string
	items  []Item
	valid  bool
}

// NewBuilder creates a Builder that labels items with t.
func NewBuilder(t Translate) *Builder {
	return &Builder{translate: t}
}

// Build returns the menu for (models, search), reusing the previous result
// when the input is unchanged. Callers must not mutate the returned slice.
func (b *Builder) Build(models []catalog.ModelDescriptor, search string) []Item {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.valid && b.search == search && slices.Equal(b.models, models) {
		return b.items
	}

	b.items = Build(models, search, b.translate)
	b.models = slices.Clone(models)
	b.search = search
	b.valid = true
	return b.items
}
