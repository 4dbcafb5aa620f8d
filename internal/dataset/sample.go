package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pable/injury-metrics/internal/model"
)

// SampleConfig controls the built-in demo dataset. The seed is an explicit
// parameter so the generator stays deterministic and testable.
type SampleConfig struct {
	Seed    int64
	Rows    int
	Players int
	Clubs   int
}

// DefaultSampleConfig mirrors the demo parameters of the original dashboard:
// 200 rows over 20 players and 5 clubs, seed 42.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{Seed: 42, Rows: 200, Players: 20, Clubs: 5}
}

var sampleStatuses = []string{"Before", "During", "After"}

// GenerateSample produces a synthetic injury table: ratings uniform in [5,9),
// goals 0-4, team goals 10-29 before / 5-24 during, ages 18-34, and dates
// drawn from a 15-day grid spanning 2020-01-01 through 2022-12-31.
func GenerateSample(cfg SampleConfig) []model.Event {
	rng := rand.New(rand.NewSource(cfg.Seed))

	players := make([]string, cfg.Players)
	for i := range players {
		players[i] = fmt.Sprintf("Player_%d", i+1)
	}
	clubs := make([]string, cfg.Clubs)
	for i := range clubs {
		clubs[i] = fmt.Sprintf("Club_%d", i+1)
	}
	dates := sampleDateGrid()

	events := make([]model.Event, cfg.Rows)
	for i := range events {
		rating := 5 + rng.Float64()*4
		goals := rng.Intn(5)
		start := dates[rng.Intn(len(dates))]
		end := dates[rng.Intn(len(dates))]

		events[i] = model.Event{
			Player:          players[rng.Intn(len(players))],
			Club:            clubs[rng.Intn(len(clubs))],
			Rating:          &rating,
			Goals:           &goals,
			TeamGoalsBefore: 10 + rng.Intn(20),
			TeamGoalsDuring: 5 + rng.Intn(20),
			Age:             18 + rng.Intn(17),
			InjuryStart:     &start,
			InjuryEnd:       &end,
			Status:          sampleStatuses[rng.Intn(len(sampleStatuses))],
		}
	}
	return events
}

func sampleDateGrid() []time.Time {
	var dates []time.Time
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)
	for !d.After(last) {
		dates = append(dates, d)
		d = d.AddDate(0, 0, 15)
	}
	return dates
}
