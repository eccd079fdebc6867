// Package filter implements the event listing tab state machine.
package filter

import (
	"fmt"
	"strings"

	"github.com/okian/blindern/internal/domain/calendar"
	"github.com/okian/blindern/internal/domain/catalog"
	"github.com/okian/blindern/internal/domain/model"
)

// Kind is one of the listing filters.
type Kind string

// Listing filters.
const (
	All      Kind = "all"
	Upcoming Kind = "upcoming"
	Past     Kind = "past"
)

// kinds lists the filters in tab order.
var kinds = []Kind{All, Upcoming, Past}

var labels = map[Kind]string{
	All:      "All",
	Upcoming: "Upcoming",
	Past:     "Past",
}

// ParseKind maps a tab value to a Kind. The empty string is All.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return All, nil
	case All, Upcoming, Past:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// Match reports whether an event with status st passes the filter.
func (k Kind) Match(st calendar.Status) bool {
	switch k {
	case Upcoming:
		return st != calendar.Past
	case Past:
		return st == calendar.Past
	default:
		return true
	}
}

// Label is the tab caption.
func (k Kind) Label() string { return labels[k] }

// Tab is one rendered filter tab.
type Tab struct {
	Kind   Kind   `json:"kind"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Controller holds the active filter. Exactly one filter is active.
type Controller struct {
	active Kind
}

// NewController starts on All.
func NewController() *Controller {
	return &Controller{active: All}
}

// Select makes k the active filter. Unknown kinds leave the state unchanged.
func (c *Controller) Select(k Kind) error {
	if _, ok := labels[k]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, string(k))
	}
	c.active = k
	return nil
}

// Active returns the active filter.
func (c *Controller) Active() Kind { return c.active }

// Tabs returns all tabs with exactly the active one flagged.
func (c *Controller) Tabs() []Tab {
	tabs := make([]Tab, 0, len(kinds))
	for _, k := range kinds {
		tabs = append(tabs, Tab{Kind: k, Label: k.Label(), Active: k == c.active})
	}
	return tabs
}

// Apply returns the events passing the active filter in source order.
func (c *Controller) Apply(events []model.Event, cls catalog.Classifier) []model.Event {
	return Apply(c.active, events, cls)
}

// Apply returns the events passing k in source order.
func Apply(k Kind, events []model.Event, cls catalog.Classifier) []model.Event {
	if k == All {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if k.Match(cls.Status(e.Date)) {
			out = append(out, e)
		}
	}
	return out
}
