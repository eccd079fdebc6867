// Package calendar turns event date strings into display fields and a
// temporal status relative to an injectable clock.
package calendar

import (
	"fmt"
	"time"
)

// dateLayout is the on-disk date format used by events.json and leaderboard.json.
const dateLayout = "2006-01-02"

// fullLayout matches the en-GB long form, e.g. "Sunday 18 October 2026".
const fullLayout = "Monday 2 January 2006"

// Status is the derived temporal state of an event.
type Status string

// Event statuses.
const (
	Upcoming Status = "upcoming"
	Live     Status = "live"
	Past     Status = "past"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Date holds the display fields of a calendar date.
type Date struct {
	Day     int    `json:"day"`
	Month   string `json:"month"`   // short name, e.g. "Oct"
	Weekday string `json:"weekday"` // full name, e.g. "Saturday"
	Full    string `json:"full"`
}

// ShortWeekday returns the first three letters of the weekday.
func (d Date) ShortWeekday() string {
	if len(d.Weekday) < 3 {
		return d.Weekday
	}
	return d.Weekday[:3]
}

// Calendar formats and classifies dates in one location.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

// Option applies a configuration option to the Calendar.
type Option func(*Calendar)

// WithClock sets the clock used for status decisions.
func WithClock(c Clock) Option {
	return func(cal *Calendar) {
		if c != nil {
			cal.clock = c
		}
	}
}

// WithLocation sets the location dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(cal *Calendar) {
		if loc != nil {
			cal.loc = loc
		}
	}
}

// New creates a Calendar on the system clock in the local time zone.
func New(opts ...Option) *Calendar {
	c := &Calendar{
		clock: SystemClock,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the location dates are interpreted in.
func (c *Calendar) Location() *time.Location { return c.loc }

// Now returns the clock's current time in the calendar's location.
func (c *Calendar) Now() time.Time { return c.clock.Now().In(c.loc) }

// Parse reads dateStr as local midnight. The date is never routed through
// UTC, so it cannot drift to the previous day.
func (c *Calendar) Parse(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, dateStr, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}
	return t, nil
}

// Format returns the display fields for dateStr.
func (c *Calendar) Format(dateStr string) (Date, error) {
	t, err := c.Parse(dateStr)
	if err != nil {
		return Date{}, err
	}
	return Date{
		Day:     t.Day(),
		Month:   t.Format("Jan"),
		Weekday: t.Weekday().String(),
		Full:    t.Format(fullLayout),
	}, nil
}

// Status classifies dateStr against the clock. Same calendar day is Live;
// otherwise the date's 23:59:59 instant decides between Upcoming and Past.
// Unparseable dates are Past.
func (c *Calendar) Status(dateStr string) Status {
	t, err := c.Parse(dateStr)
	if err != nil {
		return Past
	}
	now := c.Now()

	ny, nm, nd := now.Date()
	ey, em, ed := t.Date()
	if ny == ey && nm == em && nd == ed {
		return Live
	}

	endOfDay := time.Date(ey, em, ed, 23, 59, 59, 0, c.loc)
	if !endOfDay.Before(now) {
		return Upcoming
	}
	return Past
}
