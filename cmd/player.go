package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/pipeline"
	"github.com/pable/injury-metrics/internal/report"
	"github.com/pable/injury-metrics/internal/storage"
)

var playerCmd = &cobra.Command{
	Use:   "player <hash-prefix> <player-name>",
	Short: "Focused view on one player's injuries",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	prefix, name := args[0], args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ds, err := db.GetDatasetByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query dataset: %w", err)
	}
	if ds == nil {
		fmt.Fprintf(os.Stderr, "No dataset found with hash prefix %q\n", prefix)
		return nil
	}

	events, err := db.GetEvents(ds.Hash)
	if err != nil {
		return fmt.Errorf("get events: %w", err)
	}

	f := &pipeline.Filter{Players: []string{name}}
	mine := f.Apply(events)
	if len(mine) == 0 {
		fmt.Fprintf(os.Stderr, "No events for player %q in dataset %s\n", name, ds.Hash[:12])
		return nil
	}

	fmt.Fprintln(os.Stdout)
	for _, series := range pipeline.PlayerTimeline(mine) {
		report.PrintTimelineTable(os.Stdout, series)
	}
	fmt.Fprintln(os.Stdout)
	report.PrintPlayerSummaryTable(os.Stdout, pipeline.PlayerSummaries(mine))
	fmt.Fprintln(os.Stdout)
	report.PrintLeaderboardTable(os.Stdout, pipeline.ComebackLeaderboard(mine, -1))
	return nil
}
