package dataset

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pable/injury-metrics/internal/model"
)

// Required columns, matched by name against the header row. Player and Club
// are accepted both under the original upload names and the short aliases.
var requiredColumns = []struct {
	canonical string
	aliases   []string
}{
	{"Player_Name", []string{"player_name", "player"}},
	{"Club_Name", []string{"club_name", "club"}},
	{"Rating", []string{"rating"}},
	{"Goals", []string{"goals"}},
	{"Team_Goals_Before", []string{"team_goals_before"}},
	{"Team_Goals_During", []string{"team_goals_during"}},
	{"Age", []string{"age"}},
	{"Injury_Start", []string{"injury_start"}},
	{"Injury_End", []string{"injury_end"}},
	{"Status", []string{"status"}},
}

// dateFormats are tried in order when parsing date cells.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// SchemaError reports required columns absent from the input header.
// It is fatal: no partial result is returned alongside it.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ReadStats counts decode-level incidents that did not abort the load.
type ReadStats struct {
	Rows          int // rows decoded into events
	Skipped       int // rows dropped for an empty player or club
	ParseWarnings int // cells that failed to parse and became null/zero
}

// ReadCSV decodes a delimited injury table. The header row is required and
// columns are matched by name. A missing required column fails with a
// *SchemaError naming every absent column before any row is decoded.
// Unparseable numeric or date cells become null fields and are counted in
// ReadStats; they never fail the batch.
func ReadCSV(r io.Reader) ([]model.Event, ReadStats, error) {
	var stats ReadStats

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, stats, fmt.Errorf("empty input: header row required")
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	colIdx, missing := mapColumns(header)
	if len(missing) > 0 {
		return nil, stats, &SchemaError{Missing: missing}
	}

	var events []model.Event
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row %d: %w", stats.Rows+stats.Skipped+2, err)
		}

		cell := func(col string) string {
			i := colIdx[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		player := cell("Player_Name")
		club := cell("Club_Name")
		if player == "" || club == "" {
			stats.Skipped++
			continue
		}

		e := model.Event{
			Player: player,
			Club:   club,
			Status: cell("Status"),
		}
		e.Rating = parseFloatCell(cell("Rating"), &stats)
		e.Goals = parseIntCell(cell("Goals"), &stats)
		e.TeamGoalsBefore = parseIntOrZero(cell("Team_Goals_Before"), &stats)
		e.TeamGoalsDuring = parseIntOrZero(cell("Team_Goals_During"), &stats)
		e.Age = parseIntOrZero(cell("Age"), &stats)
		e.InjuryStart = parseDateCell(cell("Injury_Start"), &stats)
		e.InjuryEnd = parseDateCell(cell("Injury_End"), &stats)

		events = append(events, e)
		stats.Rows++
	}
	return events, stats, nil
}

// mapColumns resolves the header to canonical column indices and returns the
// canonical names of any required column not present.
func mapColumns(header []string) (map[string]int, []string) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	colIdx := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, col := range requiredColumns {
		found := false
		for _, alias := range col.aliases {
			if i, ok := byName[alias]; ok {
				colIdx[col.canonical] = i
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, col.canonical)
		}
	}
	return colIdx, missing
}

func parseFloatCell(s string, stats *ReadStats) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		stats.ParseWarnings++
		return nil
	}
	return &v
}

func parseIntCell(s string, stats *ReadStats) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		stats.ParseWarnings++
		return nil
	}
	return &v
}

func parseIntOrZero(s string, stats *ReadStats) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		stats.ParseWarnings++
		return 0
	}
	return v
}

func parseDateCell(s string, stats *ReadStats) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	stats.ParseWarnings++
	return nil
}

// Hash returns the sha256 of a canonical serialization of the decoded events.
// Loading the same content twice (from a file or the sample generator) yields
// the same dataset key.
func Hash(events []model.Event) string {
	h := sha256.New()
	for _, e := range events {
		fmt.Fprintf(h, "%s|%s|", e.Player, e.Club)
		if e.Rating != nil {
			fmt.Fprintf(h, "%.6f", *e.Rating)
		}
		fmt.Fprint(h, "|")
		if e.Goals != nil {
			fmt.Fprintf(h, "%d", *e.Goals)
		}
		fmt.Fprintf(h, "|%d|%d|%d|", e.TeamGoalsBefore, e.TeamGoalsDuring, e.Age)
		if e.InjuryStart != nil {
			fmt.Fprint(h, e.InjuryStart.Format("2006-01-02"))
		}
		fmt.Fprint(h, "|")
		if e.InjuryEnd != nil {
			fmt.Fprint(h, e.InjuryEnd.Format("2006-01-02"))
		}
		fmt.Fprintf(h, "|%s\n", e.Status)
	}
	return hex.EncodeToString(h.Sum(nil))
}
