// Package catalog holds the most recently loaded set of events.
package catalog

import (
	"sync"

	"github.com/okian/blindern/internal/domain/calendar"
	"github.com/okian/blindern/internal/domain/model"
)

// Classifier derives an event status from its date string.
type Classifier interface {
	Status(dateStr string) calendar.Status
}

// Catalog is the in-memory event set. The set is only ever replaced
// wholesale; entries are never merged or patched.
type Catalog struct {
	mu     sync.RWMutex
	events []model.Event
	index  map[string]int
	loaded bool
}

// New creates an empty, unloaded catalog.
func New() *Catalog {
	return &Catalog{}
}

// FromEvents creates a loaded catalog holding a copy of events.
func FromEvents(events []model.Event) *Catalog {
	c := New()
	c.Replace(events)
	return c
}

// Replace swaps in a copy of events and marks the catalog loaded.
// Duplicate ids resolve to the first occurrence.
func (c *Catalog) Replace(events []model.Event) {
	cp := make([]model.Event, len(events))
	copy(cp, events)
	index := make(map[string]int, len(cp))
	for i, e := range cp {
		if _, dup := index[e.ID]; !dup {
			index[e.ID] = i
		}
	}

	c.mu.Lock()
	c.events = cp
	c.index = index
	c.loaded = true
	c.mu.Unlock()
}

// Reset drops all events and marks the catalog as having no data.
func (c *Catalog) Reset() {
	c.mu.Lock()
	c.events = nil
	c.index = nil
	c.loaded = false
	c.mu.Unlock()
}

// Events returns a copy of the events in source order and whether a load
// has succeeded.
func (c *Catalog) Events() ([]model.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, false
	}
	cp := make([]model.Event, len(c.events))
	copy(cp, c.events)
	return cp, true
}

// Find looks up an event by id.
func (c *Catalog) Find(id string) (model.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return model.Event{}, false
	}
	return c.events[i], true
}

// Len returns the number of loaded events.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

// Loaded reports whether the last load succeeded.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Partition splits events into upcoming-or-live and past, each keeping
// source order. Every event lands in exactly one side.
func Partition(events []model.Event, cls Classifier) (active, past []model.Event) {
	for _, e := range events {
		if cls.Status(e.Date) == calendar.Past {
			past = append(past, e)
			continue
		}
		active = append(active, e)
	}
	return active, past
}
