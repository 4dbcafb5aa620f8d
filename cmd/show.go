package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/pipeline"
	"github.com/pable/injury-metrics/internal/report"
	"github.com/pable/injury-metrics/internal/storage"
)

var (
	showPlayers []string
	showClubs   []string
	showStatus  []string
	showMonths  []int
	showAgeMin  int
	showAgeMax  int
	showFrom    string
	showTo      string
	showTopN    int
	showScatter bool
)

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show stored dataset metrics by hash prefix",
	Long: `Render every analysis view for a stored dataset. Filter flags narrow the
events first; an unset flag places no restriction on its dimension.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringSliceVar(&showPlayers, "player", nil, "include only these players")
	showCmd.Flags().StringSliceVar(&showClubs, "club", nil, "include only these clubs")
	showCmd.Flags().StringSliceVar(&showStatus, "status", nil, "include only these statuses")
	showCmd.Flags().IntSliceVar(&showMonths, "month", nil, "include only these calendar months (1-12)")
	showCmd.Flags().IntVar(&showAgeMin, "age-min", -1, "minimum player age (inclusive)")
	showCmd.Flags().IntVar(&showAgeMax, "age-max", -1, "maximum player age (inclusive)")
	showCmd.Flags().StringVar(&showFrom, "from", "", "earliest injury start date (YYYY-MM-DD, inclusive)")
	showCmd.Flags().StringVar(&showTo, "to", "", "latest injury start date (YYYY-MM-DD, inclusive)")
	showCmd.Flags().IntVar(&showTopN, "top", 10, "rows in ranked tables")
	showCmd.Flags().BoolVar(&showScatter, "scatter", false, "also print the age vs drop scatter table")
}

func runShow(cmd *cobra.Command, args []string) error {
	f, err := buildShowFilter()
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ds, err := db.GetDatasetByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("query dataset: %w", err)
	}
	if ds == nil {
		fmt.Fprintf(os.Stderr, "No dataset found with hash prefix %q\n", args[0])
		return nil
	}
	return showByHash(db, ds.Hash, f, showTopN, showScatter)
}

// buildShowFilter translates the show flags into a predicate set. Unset flags
// stay inactive.
func buildShowFilter() (*pipeline.Filter, error) {
	f := &pipeline.Filter{
		Players:  showPlayers,
		Clubs:    showClubs,
		Statuses: showStatus,
		Months:   showMonths,
	}
	for _, m := range showMonths {
		if m < 1 || m > 12 {
			return nil, fmt.Errorf("invalid month %d: must be 1-12", m)
		}
	}
	if showAgeMin >= 0 {
		v := showAgeMin
		f.AgeMin = &v
	}
	if showAgeMax >= 0 {
		v := showAgeMax
		f.AgeMax = &v
	}
	if showFrom != "" {
		t, err := time.Parse("2006-01-02", showFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid --from date: %w", err)
		}
		f.From = &t
	}
	if showTo != "" {
		t, err := time.Parse("2006-01-02", showTo)
		if err != nil {
			return nil, fmt.Errorf("invalid --to date: %w", err)
		}
		f.To = &t
	}
	return f, nil
}

// showByHash renders a stored dataset. A nil filter renders everything.
func showByHash(db *storage.DB, hash string, f *pipeline.Filter, topN int, withScatter bool) error {
	ds, err := db.GetDatasetByPrefix(hash)
	if err != nil || ds == nil {
		return fmt.Errorf("dataset not found: %s", hash)
	}
	events, err := db.GetEvents(ds.Hash)
	if err != nil {
		return fmt.Errorf("get events: %w", err)
	}

	renderDataset(os.Stdout, *ds, events, f, topN)

	if withScatter {
		filtered := events
		if f != nil && f.Active() {
			filtered = f.Apply(events)
		}
		points := pipeline.AgeDropScatter(filtered)
		sortScatterByAge(points)
		fmt.Fprintln(os.Stdout)
		report.PrintScatterTable(os.Stdout, points)
	}
	return nil
}
