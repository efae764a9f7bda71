// Package notifier fans out configuration reloads to open SSE streams.
package notifier

import (
	"context"
	"sync"
	"sync/atomic"
)

// Notifier pings every subscribed stream when the shell configuration changes.
// A ping carries no payload; listeners re-read the current catalog.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
	reloads   atomic.Uint64
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe registers a listener that lives until ctx is done, after which
// the channel is closed.
func (n *Notifier) Subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.listeners, ch)
		n.mu.Unlock()
		close(ch)
	}()
	return ch
}

// Broadcast pings all listeners. A listener that has not consumed its
// previous ping is skipped.
func (n *Notifier) Broadcast() {
	n.reloads.Add(1)

	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Listeners returns the number of open subscriptions.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Reloads returns how many broadcasts have been sent.
func (n *Notifier) Reloads() uint64 {
	return n.reloads.Load()
}
