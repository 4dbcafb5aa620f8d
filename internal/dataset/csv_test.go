package dataset

import (
	"errors"
	"strings"
	"testing"
)

const sampleHeader = "Player_Name,Club_Name,Rating,Goals,Team_Goals_Before,Team_Goals_During,Age,Injury_Start,Injury_End,Status"

func TestReadCSV_Basic(t *testing.T) {
	in := sampleHeader + "\n" +
		"Messi,PSG,8.5,3,20,12,34,2021-06-01,2021-07-15,After\n" +
		"Kane,Spurs,7.2,1,15,15,28,2020-03-10,2020-04-01,During\n"

	events, stats, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if stats.Rows != 2 || stats.Skipped != 0 || stats.ParseWarnings != 0 {
		t.Fatalf("stats: got %+v", stats)
	}

	e := events[0]
	if e.Player != "Messi" || e.Club != "PSG" || e.Status != "After" {
		t.Errorf("identity columns: got %+v", e)
	}
	if e.Rating == nil || *e.Rating != 8.5 {
		t.Errorf("Rating: want 8.5, got %v", e.Rating)
	}
	if e.Goals == nil || *e.Goals != 3 {
		t.Errorf("Goals: want 3, got %v", e.Goals)
	}
	if e.TeamGoalsBefore != 20 || e.TeamGoalsDuring != 12 || e.Age != 34 {
		t.Errorf("numeric columns: got %+v", e)
	}
	if e.InjuryStart == nil || e.InjuryStart.Format("2006-01-02") != "2021-06-01" {
		t.Errorf("InjuryStart: got %v", e.InjuryStart)
	}
}

func TestReadCSV_MissingColumns(t *testing.T) {
	in := "Player_Name,Club_Name,Rating\nMessi,PSG,8.5\n"

	events, _, err := ReadCSV(strings.NewReader(in))
	if events != nil {
		t.Error("no partial result allowed alongside a schema error")
	}

	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("want *SchemaError, got %v", err)
	}
	found := false
	for _, c := range se.Missing {
		if c == "Age" {
			found = true
		}
	}
	if !found {
		t.Errorf("Missing must name Age, got %v", se.Missing)
	}
	if len(se.Missing) != 7 {
		t.Errorf("want all 7 absent columns listed, got %v", se.Missing)
	}
}

func TestReadCSV_HeaderAliases(t *testing.T) {
	in := "player,club,rating,goals,team_goals_before,team_goals_during,age,injury_start,injury_end,status\n" +
		"Messi,PSG,8.5,3,20,12,34,2021-06-01,2021-07-15,After\n"

	events, _, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("aliased header must decode: %v", err)
	}
	if len(events) != 1 || events[0].Player != "Messi" {
		t.Fatalf("got %+v", events)
	}
}

func TestReadCSV_UnparseableCellsBecomeNull(t *testing.T) {
	in := sampleHeader + "\n" +
		"Messi,PSG,not-a-number,oops,20,12,34,never,2021-07-15,After\n"

	events, stats, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("bad cells must not abort the load: %v", err)
	}
	e := events[0]
	if e.Rating != nil || e.Goals != nil || e.InjuryStart != nil {
		t.Errorf("unparseable cells must become null, got %+v", e)
	}
	if stats.ParseWarnings != 3 {
		t.Errorf("want 3 parse warnings, got %d", stats.ParseWarnings)
	}
}

func TestReadCSV_EmptyCellsAreNullWithoutWarning(t *testing.T) {
	in := sampleHeader + "\n" +
		"Messi,PSG,,,20,12,34,,,After\n"

	events, stats, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	e := events[0]
	if e.Rating != nil || e.Goals != nil || e.InjuryStart != nil || e.InjuryEnd != nil {
		t.Errorf("empty cells must be null, got %+v", e)
	}
	if stats.ParseWarnings != 0 {
		t.Errorf("empty cells are not warnings, got %d", stats.ParseWarnings)
	}
}

func TestReadCSV_SkipsRowsWithoutIdentity(t *testing.T) {
	in := sampleHeader + "\n" +
		",PSG,8.5,3,20,12,34,2021-06-01,2021-07-15,After\n" +
		"Kane,,7.2,1,15,15,28,2020-03-10,2020-04-01,During\n" +
		"Son,Spurs,7.9,2,18,14,29,2020-05-01,2020-06-01,Before\n"

	events, stats, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(events) != 1 || events[0].Player != "Son" {
		t.Fatalf("want only Son to survive, got %+v", events)
	}
	if stats.Skipped != 2 || stats.Rows != 1 {
		t.Errorf("stats: want Skipped=2 Rows=1, got %+v", stats)
	}
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader(""))
	if err == nil {
		t.Fatal("empty input must fail")
	}
}

func TestReadCSV_AlternateDateFormats(t *testing.T) {
	in := sampleHeader + "\n" +
		"Messi,PSG,8.5,3,20,12,34,15/06/2021,2021-07-15 00:00:00,After\n"

	events, stats, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	e := events[0]
	if e.InjuryStart == nil || e.InjuryStart.Format("2006-01-02") != "2021-06-15" {
		t.Errorf("dd/mm/yyyy start: got %v", e.InjuryStart)
	}
	if e.InjuryEnd == nil || e.InjuryEnd.Format("2006-01-02") != "2021-07-15" {
		t.Errorf("datetime end: got %v", e.InjuryEnd)
	}
	if stats.ParseWarnings != 0 {
		t.Errorf("both formats are supported, got %d warnings", stats.ParseWarnings)
	}
}

func TestHash_Deterministic(t *testing.T) {
	events := GenerateSample(DefaultSampleConfig())
	h1 := Hash(events)
	h2 := Hash(events)
	if h1 != h2 {
		t.Error("hash must be deterministic for identical content")
	}
	if len(h1) != 64 {
		t.Errorf("want 64 hex chars, got %d", len(h1))
	}

	other := GenerateSample(SampleConfig{Seed: 7, Rows: 200, Players: 20, Clubs: 5})
	if Hash(other) == h1 {
		t.Error("different content must hash differently")
	}
}
