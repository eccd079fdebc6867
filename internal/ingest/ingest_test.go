package ingest_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/blindern/internal/domain/model"
	"github.com/okian/blindern/internal/ingest"
)

var today = time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"name, pseudonym, current points, highest points, lowest points",
		"Kari Nordmann,   Snorkfrøken,  83950, 83950, 40000   ",
		"",
		"Short,  Row",
		"Text Row, Nums, lots, 1, 2",
		"Ola Nordmann,    Bluffer,      61000, 70000, 50000",
	}, "\n")

	rows, warnings, err := ingest.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, ingest.Row{Name: "Kari Nordmann", Pseudonym: "Snorkfrøken", Points: 83950, Highest: 83950, Lowest: 40000}, rows[0])
	assert.Equal(t, "Bluffer", rows[1].Pseudonym)

	require.Len(t, warnings, 2)
	assert.Equal(t, 4, warnings[0].Line)
	assert.Equal(t, "not enough columns", warnings[0].Reason)
	assert.Equal(t, 5, warnings[1].Line)
	assert.Equal(t, "could not parse numbers", warnings[1].Reason)
	assert.Contains(t, warnings[1].String(), "line 5")
}

func TestParseCSVHeaderOnly(t *testing.T) {
	rows, warnings, err := ingest.ParseCSV(strings.NewReader("name, pseudonym, current, highest, lowest\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, warnings)
}

func TestBuild(t *testing.T) {
	rows := []ingest.Row{
		{Pseudonym: "C", Points: 100},
		{Pseudonym: "A", Points: 300},
		{Pseudonym: "B", Points: 100},
		{Pseudonym: "New", Points: 200},
	}
	existing := &model.Snapshot{
		Season: "Autumn 2025",
		Rounds: 4,
		Players: []model.Player{
			{Rank: 1, Pseudonym: "C"},
			{Rank: 2, Pseudonym: "B"},
			{Rank: 3, Pseudonym: "A"},
		},
	}

	t.Run("ranks by points and carries previous ranks", func(t *testing.T) {
		snap := ingest.Build(rows, existing, ingest.WithToday(today))

		names := []string{}
		for _, p := range snap.Players {
			names = append(names, p.Pseudonym)
		}
		assert.Equal(t, []string{"A", "New", "C", "B"}, names)

		assert.Equal(t, 1, snap.Players[0].Rank)
		assert.Equal(t, 3, snap.Players[0].PreviousRank)
		assert.Equal(t, 2, snap.Players[1].PreviousRank, "newcomers default to their new rank")
		assert.Equal(t, 1, snap.Players[2].PreviousRank)
		assert.Equal(t, 2, snap.Players[3].PreviousRank)

		assert.Equal(t, "Autumn 2025", snap.Season)
		assert.Equal(t, 5, snap.Rounds)
		assert.Equal(t, "2026-03-03", snap.LastUpdated)
	})

	t.Run("overrides win", func(t *testing.T) {
		snap := ingest.Build(rows, existing, ingest.WithToday(today), ingest.WithSeason("Spring 2026"), ingest.WithRounds(1))
		assert.Equal(t, "Spring 2026", snap.Season)
		assert.Equal(t, 1, snap.Rounds)
	})

	t.Run("defaults without an existing file", func(t *testing.T) {
		snap := ingest.Build(rows, nil, ingest.WithToday(today))
		assert.Equal(t, "Spring 2026", snap.Season)
		assert.Equal(t, 1, snap.Rounds)
		for _, p := range snap.Players {
			assert.Equal(t, p.Rank, p.PreviousRank)
		}
	})

	t.Run("does not reorder the input", func(t *testing.T) {
		_ = ingest.Build(rows, nil, ingest.WithToday(today))
		assert.Equal(t, "C", rows[0].Pseudonym)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "leaderboard.json")

	missing, err := ingest.ReadSnapshot(path)
	require.NoError(t, err)
	assert.Nil(t, missing)

	snap := ingest.Build([]ingest.Row{{Pseudonym: "Snorkfrøken <3", Points: 10, Highest: 12, Lowest: 1}}, nil, ingest.WithToday(today))
	require.NoError(t, ingest.WriteSnapshot(path, snap))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "Snorkfrøken <3", "no ASCII or HTML escaping")
	assert.Contains(t, text, "\n  \"season\"", "two-space indent")
	assert.Less(t, strings.Index(text, `"rank"`), strings.Index(text, `"pseudonym"`))

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	players := generic["players"].([]any)
	first := players[0].(map[string]any)
	assert.EqualValues(t, 12, first["highestPoints"])
	assert.EqualValues(t, 1, first["lowestPoints"])

	back, err := ingest.ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap, *back)
}
