// Package ingest converts a standings export into a leaderboard document.
//
// The export is comma separated with padded columns and a header line:
//
//	name, pseudonym, current points, highest points, lowest points
//
// Rows that are short or carry non-numeric points are skipped and reported
// as warnings.
package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/blindern/internal/domain/model"
)

const minColumns = 5

// Row is one parsed export line.
type Row struct {
	Name      string
	Pseudonym string
	Points    int
	Highest   int
	Lowest    int
}

// Warning describes a skipped line.
type Warning struct {
	Line   int
	Reason string
	Text   string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Reason, w.Text)
}

// ParseCSV reads the export. The first record is the header and is skipped.
func ParseCSV(r io.Reader) ([]Row, []Warning, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var (
		rows     []Row
		warnings []Warning
		header   = true
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrReadCSV, err)
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)

		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		text := strings.Join(rec, ", ")
		if len(rec) < minColumns {
			warnings = append(warnings, Warning{Line: line, Reason: "not enough columns", Text: text})
			continue
		}

		nums := make([]int, 3)
		ok := true
		for i := range nums {
			n, err := strconv.Atoi(rec[2+i])
			if err != nil {
				ok = false
				break
			}
			nums[i] = n
		}
		if !ok {
			warnings = append(warnings, Warning{Line: line, Reason: "could not parse numbers", Text: text})
			continue
		}

		rows = append(rows, Row{
			Name:      rec[0],
			Pseudonym: rec[1],
			Points:    nums[0],
			Highest:   nums[1],
			Lowest:    nums[2],
		})
	}
	return rows, warnings, nil
}

type buildOptions struct {
	season string
	rounds *int
	today  time.Time
}

// Option applies a configuration option to Build.
type Option func(*buildOptions)

// WithSeason overrides the season name.
func WithSeason(season string) Option {
	return func(o *buildOptions) {
		o.season = strings.TrimSpace(season)
	}
}

// WithRounds overrides the number of rounds played.
func WithRounds(n int) Option {
	return func(o *buildOptions) {
		o.rounds = &n
	}
}

// WithToday sets the date stamped as lastUpdated.
func WithToday(t time.Time) Option {
	return func(o *buildOptions) {
		o.today = t
	}
}

// Build ranks rows by points, highest first, keeping export order among
// ties. Previous ranks come from existing by pseudonym; newcomers keep their
// new rank. Without overrides the season carries over (or defaults to
// "Spring <year>") and rounds advance by one.
func Build(rows []Row, existing *model.Snapshot, opts ...Option) model.Snapshot {
	o := buildOptions{today: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}

	sorted := append([]Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	prev := PreviousRanks(existing)
	players := make([]model.Player, 0, len(sorted))
	for i, r := range sorted {
		rank := i + 1
		previous, ok := prev[r.Pseudonym]
		if !ok {
			previous = rank
		}
		highest, lowest := r.Highest, r.Lowest
		players = append(players, model.Player{
			Rank:          rank,
			PreviousRank:  previous,
			Pseudonym:     r.Pseudonym,
			Points:        r.Points,
			HighestPoints: &highest,
			LowestPoints:  &lowest,
		})
	}

	season := o.season
	if season == "" && existing != nil {
		season = existing.Season
	}
	if season == "" {
		season = fmt.Sprintf("Spring %d", o.today.Year())
	}

	rounds := 1
	switch {
	case o.rounds != nil:
		rounds = *o.rounds
	case existing != nil:
		rounds = existing.Rounds + 1
	}

	return model.Snapshot{
		Season:      season,
		LastUpdated: o.today.Format("2006-01-02"),
		Rounds:      rounds,
		Players:     players,
	}
}

// PreviousRanks maps pseudonyms to their rank in snap.
func PreviousRanks(snap *model.Snapshot) map[string]int {
	out := map[string]int{}
	if snap == nil {
		return out
	}
	for _, p := range snap.Players {
		out[p.Pseudonym] = p.Rank
	}
	return out
}

// ReadSnapshot loads the leaderboard at path. A missing file is not an
// error and yields nil.
func ReadSnapshot(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrReadSnapshot, err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadSnapshot, path, err)
	}
	return &snap, nil
}

// Marshal encodes snap with two-space indentation and without escaping
// non-ASCII or HTML characters.
func Marshal(snap model.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSnapshot writes snap to path, creating parent directories.
func WriteSnapshot(path string, snap model.Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
