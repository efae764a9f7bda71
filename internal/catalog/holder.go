package catalog

import "sync/atomic"

// Holder publishes the current Configuration to concurrent readers and lets
// a watcher swap it in place when the config file changes.
type Holder struct {
	v atomic.Pointer[Configuration]
}

// NewHolder returns a holder initialized with c.
func NewHolder(c Configuration) *Holder {
	h := &Holder{}
	h.Store(c)
	return h
}

// Load returns the current configuration.
func (h *Holder) Load() Configuration {
	if c := h.v.Load(); c != nil {
		return *c
	}
	return Configuration{}
}

// Store replaces the current configuration.
func (h *Holder) Store(c Configuration) {
	h.v.Store(&c)
}
