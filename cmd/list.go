package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored datasets",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	datasets, err := db.ListDatasets()
	if err != nil {
		return fmt.Errorf("list datasets: %w", err)
	}
	if len(datasets) == 0 {
		fmt.Fprintln(os.Stdout, "No datasets stored yet. Run 'injurymetrics load <file.csv>' or 'injurymetrics sample' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-28s  %-20s  %6s  %8s  %6s\n",
		"HASH", "SOURCE", "LOADED", "ROWS", "PLAYERS", "CLUBS")
	fmt.Fprintf(os.Stdout, "%-14s  %-28s  %-20s  %6s  %8s  %6s\n",
		"──────────────", "────────────────────────────", "────────────────────", "──────", "────────", "──────")
	for _, d := range datasets {
		fmt.Fprintf(os.Stdout, "%-14s  %-28s  %-20s  %6d  %8d  %6d\n",
			d.Hash[:12], truncate(d.Source, 28), d.LoadedAt, d.Rows, d.Players, d.Clubs)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
