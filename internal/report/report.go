package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/injury-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintDatasetSummary prints a one-line summary header for the dataset.
func PrintDatasetSummary(w io.Writer, s model.DatasetSummary) {
	dates := "—"
	if s.DateMin != "" {
		dates = fmt.Sprintf("%s → %s", s.DateMin, s.DateMax)
	}
	fmt.Fprintf(w, "\nSource: %s  |  Rows: %d  |  Players: %d  |  Clubs: %d  |  Dates: %s  |  Hash: %s\n",
		s.Source, s.Rows, s.Players, s.Clubs, dates, shortHash(s.Hash))
	if s.Skipped > 0 || s.Warnings > 0 {
		fmt.Fprintf(w, "Skipped rows: %d  |  Parse warnings: %d\n", s.Skipped, s.Warnings)
	}
	fmt.Fprintln(w)
}

// PrintDropTable prints the top performance-drop ranking. One row per event;
// a positive drop means the team scored less during the injury window.
func PrintDropTable(w io.Writer, entries []model.DropEntry) {
	fmt.Fprintln(w, "--- Top Team Performance Drops ---")
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no events)")
		return
	}
	table := newTable(w)
	table.Header("#", "PLAYER", "DROP")
	for i, e := range entries {
		table.Append(strconv.Itoa(i+1), e.Player, strconv.Itoa(e.Drop))
	}
	table.Render()
}

// PrintTimelineTable prints one player's timeline series.
func PrintTimelineTable(w io.Writer, s model.PlayerSeries) {
	fmt.Fprintf(w, "--- Timeline: %s ---\n", s.Player)
	table := newTable(w)
	table.Header("INJURY_START", "RATING", "GOALS", "STATUS")
	for _, p := range s.Points {
		start := "—"
		if p.InjuryStart != nil {
			start = p.InjuryStart.Format("2006-01-02")
		}
		table.Append(start, fmt.Sprintf("%.2f", p.Rating), strconv.Itoa(p.Goals), p.Status)
	}
	table.Render()
}

// PrintTimelineTables prints up to maxPlayers timeline series; maxPlayers < 0
// prints all of them.
func PrintTimelineTables(w io.Writer, series []model.PlayerSeries, maxPlayers int) {
	if len(series) == 0 {
		fmt.Fprintln(w, "--- Timelines ---")
		fmt.Fprintln(w, "(no events)")
		return
	}
	shown := series
	if maxPlayers >= 0 && len(shown) > maxPlayers {
		shown = shown[:maxPlayers]
	}
	for _, s := range shown {
		PrintTimelineTable(w, s)
	}
	if len(shown) < len(series) {
		fmt.Fprintf(w, "(%d more players, use the player command or --player filter)\n", len(series)-len(shown))
	}
}

// PrintHeatmap prints the club × month injury-frequency matrix. Columns are
// the months observed in the data.
func PrintHeatmap(w io.Writer, m model.FrequencyMatrix) {
	fmt.Fprintln(w, "--- Injury Frequency by Club and Month ---")
	if len(m.Clubs) == 0 {
		fmt.Fprintln(w, "(no dated events)")
		return
	}
	header := make([]string, 0, len(m.Months)+1)
	header = append(header, "CLUB")
	for _, month := range m.Months {
		header = append(header, monthAbbrev(month))
	}
	table := newTable(w)
	table.Header(header)
	for ci, club := range m.Clubs {
		row := make([]string, 0, len(m.Months)+1)
		row = append(row, club)
		for mi := range m.Months {
			row = append(row, strconv.Itoa(m.Counts[ci][mi]))
		}
		table.Append(row)
	}
	table.Render()
}

// PrintScatterTable prints the age vs. drop projection, one row per event.
func PrintScatterTable(w io.Writer, points []model.ScatterPoint) {
	fmt.Fprintln(w, "--- Age vs Team Performance Drop ---")
	if len(points) == 0 {
		fmt.Fprintln(w, "(no events)")
		return
	}
	table := newTable(w)
	table.Header("AGE", "DROP", "CLUB", "GOALS")
	for _, p := range points {
		table.Append(strconv.Itoa(p.Age), strconv.Itoa(p.Drop), p.Club, strconv.Itoa(p.Goals))
	}
	table.Render()
}

// PrintLeaderboardTable prints the comeback leaderboard.
func PrintLeaderboardTable(w io.Writer, entries []model.LeaderboardEntry) {
	fmt.Fprintln(w, "--- Comeback Players Leaderboard ---")
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no events)")
		return
	}
	table := newTable(w)
	table.Header("#", "PLAYER", "MEAN_CHANGE")
	for i, e := range entries {
		table.Append(strconv.Itoa(i+1), e.Player, fmt.Sprintf("%+.2f", e.MeanChange))
	}
	table.Render()
}

// PrintPlayerSummaryTable prints per-player aggregate stats.
func PrintPlayerSummaryTable(w io.Writer, summaries []model.PlayerSummary) {
	fmt.Fprintln(w, "--- Player Summaries ---")
	if len(summaries) == 0 {
		fmt.Fprintln(w, "(no events)")
		return
	}
	table := newTable(w)
	table.Header("PLAYER", "INJURIES", "MEAN_RATING", "GOALS", "MEAN_DROP")
	for _, s := range summaries {
		table.Append(
			s.Player,
			strconv.Itoa(s.InjuryCount),
			fmt.Sprintf("%.2f", s.MeanRating),
			strconv.Itoa(s.TotalGoals),
			fmt.Sprintf("%.1f", s.MeanDrop),
		)
	}
	table.Render()
}

func monthAbbrev(m int) string {
	names := []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}
	if m < 1 || m > 12 {
		return "?"
	}
	return names[m-1]
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
