package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pable/injury-metrics/internal/dataset"
	"github.com/pable/injury-metrics/internal/model"
	"github.com/pable/injury-metrics/internal/pipeline"
	"github.com/pable/injury-metrics/internal/report"
)

// timelinePlayerCap bounds how many timeline tables a full render prints;
// the original dashboard showed the first five players for the same reason.
const timelinePlayerCap = 5

// buildSummary derives a DatasetSummary from the enriched events plus decode
// stats.
func buildSummary(hash, source string, events []model.EnrichedEvent, stats dataset.ReadStats) model.DatasetSummary {
	players := make(map[string]bool)
	clubs := make(map[string]bool)
	var dateMin, dateMax *time.Time
	for i := range events {
		e := &events[i]
		players[e.Player] = true
		clubs[e.Club] = true
		if e.InjuryStart == nil {
			continue
		}
		if dateMin == nil || e.InjuryStart.Before(*dateMin) {
			dateMin = e.InjuryStart
		}
		if dateMax == nil || e.InjuryStart.After(*dateMax) {
			dateMax = e.InjuryStart
		}
	}

	s := model.DatasetSummary{
		Hash:     hash,
		Source:   source,
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:     len(events),
		Players:  len(players),
		Clubs:    len(clubs),
		Skipped:  stats.Skipped,
		Warnings: stats.ParseWarnings,
	}
	if dateMin != nil {
		s.DateMin = dateMin.Format("2006-01-02")
		s.DateMax = dateMax.Format("2006-01-02")
	}
	return s
}

// renderDataset applies the filter and prints every analysis view.
func renderDataset(w io.Writer, summary model.DatasetSummary, events []model.EnrichedEvent, f *pipeline.Filter, topN int) {
	report.PrintDatasetSummary(w, summary)

	filtered := events
	if f != nil && f.Active() {
		filtered = f.Apply(events)
		fmt.Fprintf(w, "Filter active: %d of %d events match.\n\n", len(filtered), len(events))
	}
	if len(filtered) == 0 {
		fmt.Fprintln(w, "No events match the current filter.")
		return
	}

	report.PrintDropTable(w, pipeline.TopPerformanceDrop(filtered, topN))
	fmt.Fprintln(w)
	report.PrintTimelineTables(w, pipeline.PlayerTimeline(filtered), timelinePlayerCap)
	fmt.Fprintln(w)
	report.PrintHeatmap(w, pipeline.ClubMonthFrequency(filtered))
	fmt.Fprintln(w)
	report.PrintLeaderboardTable(w, pipeline.ComebackLeaderboard(filtered, topN))
	fmt.Fprintln(w)
	report.PrintPlayerSummaryTable(w, pipeline.PlayerSummaries(filtered))
}

// sortScatterByAge orders scatter rows by age for readability; ties keep
// event order.
func sortScatterByAge(points []model.ScatterPoint) {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Age < points[j].Age })
}
