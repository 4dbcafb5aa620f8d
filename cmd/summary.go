package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/storage"
)

// summaryCmd displays a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all datasets stored in the database:
dataset count, total events, distinct players and clubs, and a per-dataset
breakdown.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Datasets == 0 {
		fmt.Fprintln(os.Stdout, "No datasets stored yet. Run 'injurymetrics load <file.csv>' or 'injurymetrics sample' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Datasets stored : %d\n", ov.Datasets)
	fmt.Fprintf(os.Stdout, "  Total events    : %d\n", ov.TotalEvents)
	fmt.Fprintf(os.Stdout, "  Players seen    : %d\n", ov.UniquePlayer)
	fmt.Fprintf(os.Stdout, "  Clubs seen      : %d\n", ov.UniqueClubs)
	fmt.Fprintf(os.Stdout, "  Loaded between  : %s → %s\n", ov.EarliestLoad, ov.LatestLoad)

	datasets, err := db.ListDatasets()
	if err != nil {
		return fmt.Errorf("list datasets: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Datasets ---\n\n")
	t := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("HASH", "SOURCE", "ROWS", "PLAYERS", "CLUBS", "DATE RANGE", "SKIPPED", "WARNINGS")
	for _, d := range datasets {
		dates := "—"
		if d.DateMin != "" {
			dates = fmt.Sprintf("%s → %s", d.DateMin, d.DateMax)
		}
		t.Append(
			d.Hash[:12],
			truncate(d.Source, 28),
			fmt.Sprintf("%d", d.Rows),
			fmt.Sprintf("%d", d.Players),
			fmt.Sprintf("%d", d.Clubs),
			dates,
			fmt.Sprintf("%d", d.Skipped),
			fmt.Sprintf("%d", d.Warnings),
		)
	}
	t.Render()
	return nil
}
