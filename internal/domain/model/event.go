// Package model contains domain models passed between layers.
package model

// Event is a scheduled club session as published in events.json.
// Records are immutable once fetched; a re-fetch replaces the whole set.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // calendar date, YYYY-MM-DD
	Time        string `json:"time"`
	Location    string `json:"location"`
	BuyIn       string `json:"buyIn,omitempty"`
	MaxPlayers  *int   `json:"maxPlayers,omitempty"`
	Description string `json:"description"`
}

// HasBuyIn reports whether a buy-in should be shown.
func (e Event) HasBuyIn() bool { return e.BuyIn != "" }

// Capacity returns the player cap and whether one is set.
func (e Event) Capacity() (int, bool) {
	if e.MaxPlayers == nil || *e.MaxPlayers <= 0 {
		return 0, false
	}
	return *e.MaxPlayers, true
}
