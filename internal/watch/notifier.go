// Package watch keeps every open view of the active profile converged with
// the store. Three independent triggers cause a reload: storage file events
// from other processes, in-process save notifications from sibling
// components, and a periodic lastModified poll as a backstop. The model is
// last-write-wins; nothing here merges or locks.
package watch

import "sync"

// Notifier is the same-context signal bus: a component that successfully
// saved the profile calls Notify so sibling components re-fetch instead of
// trusting their stale in-memory copy.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: map[int]chan struct{}{}}
}

// Subscribe registers a listener. The returned cancel function must be
// called when the listener's view goes away.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
	return ch, cancel
}

// Notify signals every subscriber. A subscriber that already has a pending
// signal is not blocked on; coalescing is fine because listeners reload the
// full profile anyway.
func (n *Notifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
