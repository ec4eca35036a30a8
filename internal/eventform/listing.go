package eventform

import (
	"sort"
	"sync"

	"photobooth/internal/domain"
)

// Listing is an in-memory list of events, latest event time first.
type Listing struct {
	mu     sync.RWMutex
	events []*domain.Event
}

func NewListing(events []*domain.Event) *Listing {
	l := &Listing{}
	l.Replace(events)
	return l
}

// Replace swaps the whole content, e.g. after a fresh load from the store.
func (l *Listing) Replace(events []*domain.Event) {
	sorted := make([]*domain.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EventAt.After(sorted[j].EventAt)
	})
	l.mu.Lock()
	l.events = sorted
	l.mu.Unlock()
}

// Events returns a copy of the current content.
func (l *Listing) Events() []*domain.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*domain.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Add inserts e at its chronological position.
func (l *Listing) Add(e *domain.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := sort.Search(len(l.events), func(i int) bool {
		return !l.events[i].EventAt.After(e.EventAt)
	})
	l.events = append(l.events, nil)
	copy(l.events[i+1:], l.events[i:])
	l.events[i] = e
}

// Remove drops the event with the given id and reports whether it was present.
func (l *Listing) Remove(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.events {
		if e.ID == id {
			l.events = append(l.events[:i], l.events[i+1:]...)
			return true
		}
	}
	return false
}
