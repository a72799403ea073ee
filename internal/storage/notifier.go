// ABOUTME: Synchronous publish/subscribe for resource change signals.
// ABOUTME: Observers are told to re-query; no data travels with the signal.
package storage

import (
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/sunshine/internal/contract"
)

type subscriber struct {
	id       uuid.UUID
	resource contract.Resource
	fn       func(changed contract.Resource)
}

// Notifier fans change signals out to subscribers of covering resources.
type Notifier struct {
	mu   sync.RWMutex
	subs []subscriber
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscription is a handle returned by Subscribe.
type Subscription struct {
	id uuid.UUID
	n  *Notifier
}

// ID identifies the subscription.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Cancel stops further callbacks. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil || s.n == nil {
		return
	}
	s.n.remove(s.id)
}

// Subscribe registers fn for changes that cover r.
func (n *Notifier) Subscribe(r contract.Resource, fn func(changed contract.Resource)) *Subscription {
	id := uuid.New()

	n.mu.Lock()
	n.subs = append(n.subs, subscriber{id: id, resource: r, fn: fn})
	n.mu.Unlock()

	return &Subscription{id: id, n: n}
}

// Notify invokes matching callbacks in subscription order on the caller's goroutine.
func (n *Notifier) Notify(changed contract.Resource) int {
	n.mu.RLock()
	var matched []subscriber
	for _, s := range n.subs {
		if s.resource.Covers(changed) {
			matched = append(matched, s)
		}
	}
	n.mu.RUnlock()

	// Callbacks run unlocked so they may re-query or resubscribe.
	for _, s := range matched {
		s.fn(changed)
	}
	return len(matched)
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

func (n *Notifier) remove(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}
