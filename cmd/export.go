package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/model"
	"github.com/pable/injury-metrics/internal/storage"
)

var (
	exportFormat string
	exportOut    string
	exportZstd   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <hash-prefix>",
	Short: "Export a dataset's enriched events to CSV or JSON",
	Long: `Write a stored dataset's events, including all derived columns, to a file.
Use --out - to write to stdout. With --zstd the output is zstd-compressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default <hash>.<format>)")
	exportCmd.Flags().BoolVar(&exportZstd, "zstd", false, "zstd-compress the output")
}

// exportEvent is the JSON schema for exported rows. Raw nullable fields stay
// nullable; derived fields are always present.
type exportEvent struct {
	Player              string   `json:"player"`
	Club                string   `json:"club"`
	Rating              *float64 `json:"rating"`
	Goals               *int     `json:"goals"`
	TeamGoalsBefore     int      `json:"team_goals_before"`
	TeamGoalsDuring     int      `json:"team_goals_during"`
	Age                 int      `json:"age"`
	InjuryStart         string   `json:"injury_start,omitempty"`
	InjuryEnd           string   `json:"injury_end,omitempty"`
	Status              string   `json:"status"`
	RatingFilled        float64  `json:"rating_filled"`
	GoalsFilled         int      `json:"goals_filled"`
	AvgRatingBefore     float64  `json:"avg_rating_before"`
	AvgRatingAfter      float64  `json:"avg_rating_after"`
	TeamPerformanceDrop int      `json:"team_performance_drop"`
	PerformanceChange   float64  `json:"performance_change"`
	Month               int      `json:"month"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format %q: use csv or json", exportFormat)
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
		return fmt.Errorf("no dataset found with hash prefix %q", args[0])
	}
	events, err := db.GetEvents(ds.Hash)
	if err != nil {
		return fmt.Errorf("get events: %w", err)
	}

	outPath := exportOut
	if outPath == "" {
		outPath = ds.Hash[:12] + "." + exportFormat
		if exportZstd {
			outPath += ".zst"
		}
	}

	var w io.Writer
	if outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if exportZstd {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		defer enc.Close()
		w = enc
	}

	switch exportFormat {
	case "csv":
		err = writeCSV(w, events)
	case "json":
		err = writeJSON(w, events)
	}
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	if outPath != "-" {
		fmt.Fprintf(os.Stdout, "Exported %d events to %s\n", len(events), outPath)
	}
	return nil
}

func writeCSV(w io.Writer, events []model.EnrichedEvent) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Player", "Club", "Rating", "Goals",
		"Team_Goals_Before", "Team_Goals_During", "Age",
		"Injury_Start", "Injury_End", "Status",
		"Rating_Filled", "Goals_Filled", "Avg_Rating_Before", "Avg_Rating_After",
		"Team_Performance_Drop", "Performance_Change", "Month",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range events {
		e := &events[i]
		rec := []string{
			e.Player, e.Club,
			formatNullFloat(e.Rating), formatNullInt(e.Goals),
			strconv.Itoa(e.TeamGoalsBefore), strconv.Itoa(e.TeamGoalsDuring), strconv.Itoa(e.Age),
			formatDate(e.InjuryStart), formatDate(e.InjuryEnd), e.Status,
			strconv.FormatFloat(e.RatingFilled, 'f', 4, 64),
			strconv.Itoa(e.GoalsFilled),
			strconv.FormatFloat(e.AvgRatingBefore, 'f', 4, 64),
			strconv.FormatFloat(e.AvgRatingAfter, 'f', 4, 64),
			strconv.Itoa(e.TeamPerformanceDrop),
			strconv.FormatFloat(e.PerformanceChange, 'f', 4, 64),
			strconv.Itoa(e.Month),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, events []model.EnrichedEvent) error {
	out := make([]exportEvent, len(events))
	for i := range events {
		e := &events[i]
		out[i] = exportEvent{
			Player:              e.Player,
			Club:                e.Club,
			Rating:              e.Rating,
			Goals:               e.Goals,
			TeamGoalsBefore:     e.TeamGoalsBefore,
			TeamGoalsDuring:     e.TeamGoalsDuring,
			Age:                 e.Age,
			InjuryStart:         formatDate(e.InjuryStart),
			InjuryEnd:           formatDate(e.InjuryEnd),
			Status:              e.Status,
			RatingFilled:        e.RatingFilled,
			GoalsFilled:         e.GoalsFilled,
			AvgRatingBefore:     e.AvgRatingBefore,
			AvgRatingAfter:      e.AvgRatingAfter,
			TeamPerformanceDrop: e.TeamPerformanceDrop,
			PerformanceChange:   e.PerformanceChange,
			Month:               e.Month,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatNullFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

func formatNullInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
