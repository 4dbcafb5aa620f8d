package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the metrics database",
	Long: `Run an arbitrary SQL query against the metrics database and print results as a table.

Schema overview:
  datasets(hash, source, loaded_at, rows, players, clubs, date_min, date_max,
    skipped, warnings)
  events(dataset_hash, row_idx, player, club, rating, goals,
    team_goals_before, team_goals_during, age, injury_start, injury_end,
    status, rating_filled, goals_filled, avg_rating_before, avg_rating_after,
    team_performance_drop, performance_change, month)

Note: rating/goals/injury dates are NULL when missing in the source;
month is 0 when the injury start date is unknown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)
	for _, r := range rows {
		rowAny := make([]any, len(r))
		for i, c := range r {
			rowAny[i] = c
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Printf("(%d rows)\n", len(rows))
	return nil
}
