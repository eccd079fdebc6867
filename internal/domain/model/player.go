package model

// Player is one ranked row of the leaderboard.
type Player struct {
	Rank          int    `json:"rank"`
	PreviousRank  int    `json:"previousRank"`
	Pseudonym     string `json:"pseudonym"`
	Points        int    `json:"points"`
	HighestPoints *int   `json:"highestPoints,omitempty"`
	LowestPoints  *int   `json:"lowestPoints,omitempty"`
}

// Snapshot is a whole leaderboard document. Players are rank-ascending;
// rank uniqueness is trusted from the source, not enforced.
type Snapshot struct {
	Season      string   `json:"season"`
	LastUpdated string   `json:"lastUpdated"`
	Rounds      int      `json:"rounds"`
	Players     []Player `json:"players"`
}

// Peak returns the player's highest points and whether it is known.
func (p Player) Peak() (int, bool) {
	if p.HighestPoints == nil || *p.HighestPoints == 0 {
		return 0, false
	}
	return *p.HighestPoints, true
}
