package dataset

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateSample_Deterministic(t *testing.T) {
	cfg := DefaultSampleConfig()
	a := GenerateSample(cfg)
	b := GenerateSample(cfg)

	if len(a) != cfg.Rows {
		t.Fatalf("want %d rows, got %d", cfg.Rows, len(a))
	}
	if Hash(a) != Hash(b) {
		t.Error("same seed must generate identical datasets")
	}

	cfg.Seed = 1
	c := GenerateSample(cfg)
	if Hash(a) == Hash(c) {
		t.Error("different seeds must generate different datasets")
	}
}

func TestGenerateSample_ValueRanges(t *testing.T) {
	events := GenerateSample(DefaultSampleConfig())

	gridStart := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	gridEnd := time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)

	for i, e := range events {
		if !strings.HasPrefix(e.Player, "Player_") || !strings.HasPrefix(e.Club, "Club_") {
			t.Fatalf("row %d: unexpected names %q / %q", i, e.Player, e.Club)
		}
		if e.Rating == nil || *e.Rating < 5 || *e.Rating >= 9 {
			t.Fatalf("row %d: rating out of [5,9): %v", i, e.Rating)
		}
		if e.Goals == nil || *e.Goals < 0 || *e.Goals > 4 {
			t.Fatalf("row %d: goals out of [0,4]: %v", i, e.Goals)
		}
		if e.TeamGoalsBefore < 10 || e.TeamGoalsBefore > 29 {
			t.Fatalf("row %d: team goals before out of range: %d", i, e.TeamGoalsBefore)
		}
		if e.TeamGoalsDuring < 5 || e.TeamGoalsDuring > 24 {
			t.Fatalf("row %d: team goals during out of range: %d", i, e.TeamGoalsDuring)
		}
		if e.Age < 18 || e.Age > 34 {
			t.Fatalf("row %d: age out of range: %d", i, e.Age)
		}
		if e.InjuryStart == nil || e.InjuryStart.Before(gridStart) || e.InjuryStart.After(gridEnd) {
			t.Fatalf("row %d: injury start outside grid: %v", i, e.InjuryStart)
		}
		switch e.Status {
		case "Before", "During", "After":
		default:
			t.Fatalf("row %d: unknown status %q", i, e.Status)
		}
	}
}

func TestGenerateSample_RespectsConfig(t *testing.T) {
	cfg := SampleConfig{Seed: 3, Rows: 25, Players: 4, Clubs: 2}
	events := GenerateSample(cfg)
	if len(events) != 25 {
		t.Fatalf("want 25 rows, got %d", len(events))
	}

	players := map[string]bool{}
	clubs := map[string]bool{}
	for _, e := range events {
		players[e.Player] = true
		clubs[e.Club] = true
	}
	if len(players) > 4 {
		t.Errorf("want at most 4 distinct players, got %d", len(players))
	}
	if len(clubs) > 2 {
		t.Errorf("want at most 2 distinct clubs, got %d", len(clubs))
	}
}
