package view

import (
	"strconv"

	"github.com/okian/blindern/internal/domain/model"
	"github.com/okian/blindern/internal/domain/standings"
)

// StatCard is one headline number.
type StatCard struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LeaderCard is the spotlight block for rank 1.
type LeaderCard struct {
	Initials  string `json:"initials"`
	Pseudonym string `json:"pseudonym"`
	Points    string `json:"points"`
	Lead      string `json:"lead,omitempty"` // "+22,950"
	Peak      string `json:"peak,omitempty"`
}

// ChangeCell renders a rank movement.
type ChangeCell struct {
	Direction standings.Direction `json:"direction"`
	Text      string              `json:"text"`
}

// Row is one leaderboard table row.
type Row struct {
	Rank      int        `json:"rank"`
	RankLabel string     `json:"rankLabel"` // medal glyph or the rank number
	Medal     string     `json:"medal,omitempty"`
	Change    ChangeCell `json:"change"`
	Initials  string     `json:"initials"`
	Pseudonym string     `json:"pseudonym"`
	Points    string     `json:"points"`
}

// Board is the leaderboard page body.
type Board struct {
	Summary     standings.Stats `json:"summary"`
	Stats       []StatCard      `json:"stats,omitempty"`
	Leader      *LeaderCard     `json:"leader,omitempty"`
	Climber     *model.Player   `json:"biggestClimber,omitempty"`
	LastUpdated string          `json:"lastUpdated,omitempty"`
	Rows        []Row           `json:"rows,omitempty"`
	Empty       *EmptyState     `json:"empty,omitempty"`
}

// Board builds the leaderboard page from snap. A nil snapshot, or one with no
// player list, renders only the NoRankings empty state.
func (r *Renderer) Board(snap *model.Snapshot) Board {
	if snap == nil || snap.Players == nil {
		return Board{Empty: &EmptyState{Icon: leaderboardIcon, Text: NoRankings}}
	}

	summary := standings.ComputeStats(*snap)
	b := Board{
		Summary: summary,
		Stats: []StatCard{
			{Value: summary.Season, Label: "Season"},
			{Value: r.Number(summary.PlayerCount), Label: "Players"},
			{Value: r.Number(summary.Rounds), Label: "Sessions Played"},
			{Value: r.Number(summary.AvgPoints), Label: "Avg. Points"},
		},
		Rows: r.Table(*snap),
	}

	if climber, ok := standings.BiggestClimber(*snap); ok {
		b.Climber = &climber
		change := standings.RankChange(climber)
		b.Stats = append(b.Stats, StatCard{
			Value: climber.Pseudonym + " ▲ " + strconv.Itoa(change.Places),
			Label: "Biggest Climber",
		})
	}

	if sp, ok := standings.ComputeSpotlight(*snap); ok {
		lc := &LeaderCard{
			Initials:  sp.Initials,
			Pseudonym: sp.Leader.Pseudonym,
			Points:    r.Number(sp.Leader.Points) + " pts",
		}
		if sp.GapOverSecond != nil {
			lc.Lead = "+" + r.Number(*sp.GapOverSecond)
		}
		if sp.PeakPoints != nil {
			lc.Peak = r.Number(*sp.PeakPoints)
		}
		b.Leader = lc
	}

	if snap.LastUpdated != "" {
		if d, err := r.cal.Format(snap.LastUpdated); err == nil {
			b.LastUpdated = "Last updated: " + d.Full
		}
	}

	if len(b.Rows) == 0 {
		b.Empty = &EmptyState{Icon: leaderboardIcon, Text: NoRankings}
	}
	return b
}

// Table maps players onto rows, keeping snapshot order.
func (r *Renderer) Table(snap model.Snapshot) []Row {
	rows := make([]Row, 0, len(snap.Players))
	for _, p := range snap.Players {
		row := Row{
			Rank:      p.Rank,
			RankLabel: strconv.Itoa(p.Rank),
			Change:    changeCell(standings.RankChange(p)),
			Initials:  standings.Initials(p.Pseudonym),
			Pseudonym: p.Pseudonym,
			Points:    r.Number(p.Points),
		}
		if m, ok := standings.MedalFor(p.Rank); ok {
			row.Medal = m.Class
			row.RankLabel = m.Glyph
		}
		rows = append(rows, row)
	}
	return rows
}

func changeCell(c standings.Change) ChangeCell {
	switch c.Direction {
	case standings.Up:
		return ChangeCell{Direction: c.Direction, Text: "▲ " + strconv.Itoa(c.Places)}
	case standings.Down:
		return ChangeCell{Direction: c.Direction, Text: "▼ " + strconv.Itoa(c.Places)}
	default:
		return ChangeCell{Direction: standings.Same, Text: "—"}
	}
}
