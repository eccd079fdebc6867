// Package standings derives leaderboard summaries from a ranked snapshot.
//
// Every function here is pure: input snapshots are read, never modified, and
// players are assumed to arrive rank-ascending.
package standings

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/okian/blindern/internal/domain/model"
)

// maxInitials caps the avatar monogram length.
const maxInitials = 2

// Stats is the headline numbers row.
type Stats struct {
	Season      string `json:"season"`
	PlayerCount int    `json:"playerCount"`
	Rounds      int    `json:"rounds"`
	AvgPoints   int    `json:"avgPoints"`
}

// Spotlight summarises the current leader.
type Spotlight struct {
	Leader   model.Player `json:"leader"`
	Initials string       `json:"initials"`
	// GapOverSecond is set only when a runner-up exists and trails.
	GapOverSecond *int `json:"gapOverSecond,omitempty"`
	PeakPoints    *int `json:"peakPoints,omitempty"`
}

// Direction of a rank movement.
type Direction string

// Rank movements.
const (
	Up   Direction = "up"
	Down Direction = "down"
	Same Direction = "same"
)

// Change is a player's movement since the previous snapshot.
type Change struct {
	Direction Direction `json:"direction"`
	Places    int       `json:"places"`
}

// Medal is the special styling for the podium ranks.
type Medal struct {
	Class string `json:"class"`
	Glyph string `json:"glyph"`
}

var medals = map[int]Medal{
	1: {Class: "gold", Glyph: "🥇"},
	2: {Class: "silver", Glyph: "🥈"},
	3: {Class: "bronze", Glyph: "🥉"},
}

// ComputeStats returns the stats row. The average is 0 for an empty list.
func ComputeStats(s model.Snapshot) Stats {
	return Stats{
		Season:      s.Season,
		PlayerCount: len(s.Players),
		Rounds:      s.Rounds,
		AvgPoints:   AveragePoints(s.Players),
	}
}

// AveragePoints returns round(sum/count), or 0 when players is empty.
func AveragePoints(players []model.Player) int {
	if len(players) == 0 {
		return 0
	}
	sum := 0
	for _, p := range players {
		sum += p.Points
	}
	return int(math.Round(float64(sum) / float64(len(players))))
}

// ComputeSpotlight returns the leader summary, or false when no one is ranked.
func ComputeSpotlight(s model.Snapshot) (Spotlight, bool) {
	if len(s.Players) == 0 {
		return Spotlight{}, false
	}
	leader := s.Players[0]
	sp := Spotlight{
		Leader:   leader,
		Initials: Initials(leader.Pseudonym),
	}
	if len(s.Players) > 1 {
		if gap := leader.Points - s.Players[1].Points; gap > 0 {
			sp.GapOverSecond = &gap
		}
	}
	if peak, ok := leader.Peak(); ok {
		sp.PeakPoints = &peak
	}
	return sp, true
}

// Initials takes the first letter of each whitespace-separated word,
// uppercases them, and keeps at most two.
func Initials(pseudonym string) string {
	var b strings.Builder
	for _, word := range strings.Fields(pseudonym) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	upper := []rune(strings.ToUpper(b.String()))
	if len(upper) > maxInitials {
		upper = upper[:maxInitials]
	}
	return string(upper)
}

// RankChange compares a player's previous and current rank.
func RankChange(p model.Player) Change {
	delta := p.PreviousRank - p.Rank
	switch {
	case delta > 0:
		return Change{Direction: Up, Places: delta}
	case delta < 0:
		return Change{Direction: Down, Places: -delta}
	default:
		return Change{Direction: Same}
	}
}

// BiggestClimber returns the player with the strictly largest positive
// climb. Ties go to the player listed first, i.e. the better current rank.
func BiggestClimber(s model.Snapshot) (model.Player, bool) {
	var (
		best  model.Player
		climb int
		found bool
	)
	for _, p := range s.Players {
		if d := p.PreviousRank - p.Rank; d > climb {
			best, climb, found = p, d, true
		}
	}
	return best, found
}

// MedalFor returns the podium styling for rank, if any.
func MedalFor(rank int) (Medal, bool) {
	m, ok := medals[rank]
	return m, ok
}
