package stream

import (
	"sync"
)

// Family namespaces the registry so independent event streams (user
// notifications, direct messages) can share one set of bookkeeping.
type Family string

const (
	FamilyNotifications Family = "notifications"
	FamilyMessages      Family = "messages"
)

// Families returns the event families the gateway serves.
func Families() []Family {
	return []Family{FamilyNotifications, FamilyMessages}
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	return f == FamilyNotifications || f == FamilyMessages
}

// Registry tracks which subscribers currently have open channels within
// each family. It is the one piece of mutable state shared across
// concurrent stream handlers and publish calls, guarded by a single
// RWMutex. A subscriber with no open channels has no entry at all.
type Registry struct {
	mu   sync.RWMutex
	subs map[Family]map[string]map[*Channel]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		subs: make(map[Family]map[string]map[*Channel]struct{}),
	}
}

// Add appends ch to the subscriber's channel set, creating the set if
// absent. There is no cap on channels per subscriber; multi-tab and
// multi-device use is expected. Empty subscriber IDs and nil channels
// are ignored.
func (r *Registry) Add(family Family, subscriberID string, ch *Channel) {
	if subscriberID == "" || ch == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	fam, ok := r.subs[family]
	if !ok {
		fam = make(map[string]map[*Channel]struct{})
		r.subs[family] = fam
	}
	set, ok := fam[subscriberID]
	if !ok {
		set = make(map[*Channel]struct{})
		fam[subscriberID] = set
	}
	set[ch] = struct{}{}
}

// Remove deletes ch from the subscriber's channel set. It is idempotent:
// removing an unknown channel is a no-op, never an error, because
// disconnect signals can race with explicit cleanup. When the set empties
// the entry itself is deleted so "is anyone listening" stays a cheap
// existence check.
func (r *Registry) Remove(family Family, subscriberID string, ch *Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fam, ok := r.subs[family]
	if !ok {
		return
	}
	set, ok := fam[subscriberID]
	if !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(fam, subscriberID)
	}
	if len(fam) == 0 {
		delete(r.subs, family)
	}
}

// Channels returns a snapshot of the subscriber's open channels. The
// snapshot may go stale under concurrent removal; callers must treat a
// failed send as the channel having left.
func (r *Registry) Channels(family Family, subscriberID string) []*Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.subs[family][subscriberID]
	if len(set) == 0 {
		return nil
	}
	out := make([]*Channel, 0, len(set))
	for ch := range set {
		out = append(out, ch)
	}
	return out
}

// Subscribers returns the identities that currently have at least one open
// channel in the family.
func (r *Registry) Subscribers(family Family) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fam := r.subs[family]
	out := make([]string, 0, len(fam))
	for id := range fam {
		out = append(out, id)
	}
	return out
}

// Len returns the number of open channels in the family.
func (r *Registry) Len(family Family) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, set := range r.subs[family] {
		n += len(set)
	}
	return n
}

// drain removes and returns every channel across all families. Used only
// during shutdown.
func (r *Registry) drain() []*Channel {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Channel
	for _, fam := range r.subs {
		for _, set := range fam {
			for ch := range set {
				out = append(out, ch)
			}
		}
	}
	r.subs = make(map[Family]map[string]map[*Channel]struct{})
	return out
}
