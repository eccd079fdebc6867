// Package view maps domain records onto display models. The models carry
// plain text only; escaping happens where they are written out as HTML.
package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/blindern/internal/domain/calendar"
)

// Empty-state messages.
const (
	NoEvents           = "No events found."
	NoEventsInCategory = "No events in this category."
	NoRankings         = "No rankings yet."
)

// Empty-state icons.
const (
	eventsIcon      = "🃏"
	leaderboardIcon = "🏆"
)

const defaultPreviewLimit = 3

// EmptyState is the informational block shown instead of a list.
type EmptyState struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Renderer builds display models for events and the leaderboard.
type Renderer struct {
	cal          *calendar.Calendar
	printer      *message.Printer
	previewLimit int
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithPreviewLimit sets how many events the home page preview shows.
func WithPreviewLimit(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.previewLimit = n
		}
	}
}

// New creates a Renderer classifying dates with cal.
func New(cal *calendar.Calendar, opts ...Option) *Renderer {
	if cal == nil {
		cal = calendar.New()
	}
	r := &Renderer{
		cal:          cal,
		printer:      message.NewPrinter(language.English),
		previewLimit: defaultPreviewLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Calendar returns the calendar used for status decisions.
func (r *Renderer) Calendar() *calendar.Calendar { return r.cal }

// Number formats n with English thousands separators, e.g. 83,950.
func (r *Renderer) Number(n int) string {
	return r.printer.Sprintf("%d", n)
}
