package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/blindern/internal/ingest"
)

type flags struct {
	season string
	rounds int
	output string
}

func newRootCmd(logger *log.Logger, now func() time.Time) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "update-leaderboard <csv-file>",
		Short: "Update leaderboard.json from a standings export",
		Long: `Reads a comma-separated standings export
(name, pseudonym, current points, highest points, lowest points),
ranks the players by points and writes the leaderboard document,
carrying previous ranks over from the existing file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], f, logger, now())
		},
	}
	cmd.Flags().StringVar(&f.season, "season", "", `season name, e.g. "Spring 2026"; keeps the existing season when omitted`)
	cmd.Flags().IntVar(&f.rounds, "rounds", 0, "rounds played; increments the existing value when omitted")
	cmd.Flags().StringVarP(&f.output, "output", "o", "data/leaderboard.json", "leaderboard document to update")
	return cmd
}

func run(cmd *cobra.Command, csvPath string, f *flags, logger *log.Logger, today time.Time) error {
	existing, err := ingest.ReadSnapshot(f.output)
	if err != nil {
		return err
	}

	logger.Info("Reading", "path", csvPath)
	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ingest.ErrReadCSV, err)
	}
	defer file.Close()

	rows, warnings, err := ingest.ParseCSV(file)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn("Skipping line", "line", w.Line, "reason", w.Reason, "text", w.Text)
	}
	logger.Info("Parsed export", "players", len(rows))

	opts := []ingest.Option{ingest.WithToday(today), ingest.WithSeason(f.season)}
	if cmd.Flags().Changed("rounds") {
		opts = append(opts, ingest.WithRounds(f.rounds))
	} else if existing != nil {
		logger.Info("Auto-incrementing rounds", "from", existing.Rounds, "to", existing.Rounds+1)
	}

	snap := ingest.Build(rows, existing, opts...)
	if err := ingest.WriteSnapshot(f.output, snap); err != nil {
		return err
	}

	logger.Info("Updated leaderboard",
		"path", f.output,
		"season", snap.Season,
		"rounds", snap.Rounds,
		"players", len(snap.Players),
	)
	if len(snap.Players) > 0 {
		leader := snap.Players[0]
		p := message.NewPrinter(language.English)
		logger.Info("🥇 "+leader.Pseudonym, "points", p.Sprintf("%d", leader.Points))
	}
	return nil
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if err := newRootCmd(logger, time.Now).Execute(); err != nil {
		logger.Error("update failed", "error", err)
		os.Exit(1)
	}
}
