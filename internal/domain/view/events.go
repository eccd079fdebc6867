package view

import (
	"github.com/okian/blindern/internal/domain/calendar"
	"github.com/okian/blindern/internal/domain/catalog"
	"github.com/okian/blindern/internal/domain/filter"
	"github.com/okian/blindern/internal/domain/model"
)

// Badge is the status marker on an event card.
type Badge struct {
	Status calendar.Status `json:"status"`
	Text   string          `json:"text"`
}

var badges = map[calendar.Status]Badge{
	calendar.Upcoming: {Status: calendar.Upcoming, Text: "Upcoming"},
	calendar.Live:     {Status: calendar.Live, Text: "● Today"},
	calendar.Past:     {Status: calendar.Past, Text: "Completed"},
}

// Card is the listing representation of an event.
type Card struct {
	ID       string `json:"id"`
	Day      int    `json:"day,omitempty"`
	Month    string `json:"month,omitempty"`
	Weekday  string `json:"weekday,omitempty"` // three letters
	Title    string `json:"title"`
	Time     string `json:"time"`
	Location string `json:"location"`
	BuyIn    string `json:"buyIn,omitempty"`
	Badge    Badge  `json:"badge"`
}

// Detail is the overlay representation of an event.
type Detail struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	BuyIn       string `json:"buyIn,omitempty"`
	MaxPlayers  int    `json:"maxPlayers,omitempty"`
	Description string `json:"description"`
}

// Section is a titled group of cards. An empty title renders no header.
type Section struct {
	Title string `json:"title,omitempty"`
	Cards []Card `json:"cards"`
}

// Listing is the events page body.
type Listing struct {
	Filter   filter.Kind `json:"filter"`
	Sections []Section   `json:"sections,omitempty"`
	Empty    *EmptyState `json:"empty,omitempty"`
}

// Preview is the home page teaser. Nothing is shown when Cards is empty.
type Preview struct {
	Cards []Card `json:"cards"`
}

// Card maps an event onto its listing card.
func (r *Renderer) Card(e model.Event) Card {
	c := Card{
		ID:       e.ID,
		Title:    e.Title,
		Time:     e.Time,
		Location: e.Location,
		BuyIn:    e.BuyIn,
		Badge:    badges[r.cal.Status(e.Date)],
	}
	if d, err := r.cal.Format(e.Date); err == nil {
		c.Day = d.Day
		c.Month = d.Month
		c.Weekday = d.ShortWeekday()
	}
	return c
}

// Cards maps events onto cards in order.
func (r *Renderer) Cards(events []model.Event) []Card {
	cards := make([]Card, 0, len(events))
	for _, e := range events {
		cards = append(cards, r.Card(e))
	}
	return cards
}

// Detail maps an event onto its overlay view.
func (r *Renderer) Detail(e model.Event) Detail {
	d := Detail{
		ID:          e.ID,
		Title:       e.Title,
		Time:        e.Time,
		Location:    e.Location,
		BuyIn:       e.BuyIn,
		Description: e.Description,
	}
	if f, err := r.cal.Format(e.Date); err == nil {
		d.Date = f.Full
	}
	if n, ok := e.Capacity(); ok {
		d.MaxPlayers = n
	}
	return d
}

// Listing builds the events page body for the active filter. With no data,
// or an empty catalog, it reports NoEvents. The All view is split into an
// upcoming and a past section; the other filters render one flat section
// and report NoEventsInCategory when nothing matches.
func (r *Renderer) Listing(events []model.Event, loaded bool, k filter.Kind) Listing {
	l := Listing{Filter: k}
	if !loaded || len(events) == 0 {
		l.Empty = &EmptyState{Icon: eventsIcon, Text: NoEvents}
		return l
	}

	if k == filter.All {
		active, past := catalog.Partition(events, r.cal)
		if len(active) > 0 {
			l.Sections = append(l.Sections, Section{Title: "Upcoming", Cards: r.Cards(active)})
		}
		if len(past) > 0 {
			l.Sections = append(l.Sections, Section{Title: "Past Events", Cards: r.Cards(past)})
		}
		return l
	}

	matched := filter.Apply(k, events, r.cal)
	if len(matched) == 0 {
		l.Empty = &EmptyState{Icon: eventsIcon, Text: NoEventsInCategory}
		return l
	}
	l.Sections = []Section{{Cards: r.Cards(matched)}}
	return l
}

// Preview picks the first upcoming-or-live events, falling back to the
// head of the catalog when none are ahead.
func (r *Renderer) Preview(events []model.Event, loaded bool) Preview {
	if !loaded || len(events) == 0 {
		return Preview{}
	}
	active, _ := catalog.Partition(events, r.cal)
	if len(active) == 0 {
		active = events
	}
	if len(active) > r.previewLimit {
		active = active[:r.previewLimit]
	}
	return Preview{Cards: r.Cards(active)}
}
