// Package modal implements the event detail overlay state machine.
package modal

import "github.com/okian/blindern/internal/domain/model"

// Lookup resolves an event id against the loaded catalog.
type Lookup interface {
	Find(id string) (model.Event, bool)
}

// State is either closed or open on one event.
type State struct {
	Open    bool   `json:"open"`
	EventID string `json:"eventId,omitempty"`
}

// Closed is the zero state.
var Closed = State{}

// Controller tracks the overlay state against a catalog.
type Controller struct {
	lookup Lookup
	state  State
}

// NewController starts closed.
func NewController(lookup Lookup) *Controller {
	return &Controller{lookup: lookup}
}

// OpenEvent opens the overlay on id when it resolves in the catalog.
// Unknown ids are ignored and the state is left as it was.
func (c *Controller) OpenEvent(id string) bool {
	if c.lookup == nil {
		return false
	}
	if _, ok := c.lookup.Find(id); !ok {
		return false
	}
	c.state = State{Open: true, EventID: id}
	return true
}

// Close closes the overlay from any state.
func (c *Controller) Close() {
	c.state = Closed
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Current returns the event the overlay is open on.
func (c *Controller) Current() (model.Event, bool) {
	if !c.state.Open || c.lookup == nil {
		return model.Event{}, false
	}
	return c.lookup.Find(c.state.EventID)
}
