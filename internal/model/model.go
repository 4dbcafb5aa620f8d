package model

import "time"

// ---- Raw events decoded from the input table ----

// Event is one raw injury record for a player. Optional fields are pointers:
// nil means the value was missing or unparseable in the source table.
type Event struct {
	Player string
	Club   string

	Rating *float64 // performance rating, roughly [0,10]
	Goals  *int

	TeamGoalsBefore int
	TeamGoalsDuring int

	Age int

	InjuryStart *time.Time
	InjuryEnd   *time.Time

	Status string // open set; sample data uses Before/During/After
}

// EnrichedEvent is an Event plus the derived columns computed once per load.
// Derived fields are immutable after enrichment; filters never recompute them.
type EnrichedEvent struct {
	Event

	RatingFilled float64 // Rating, or the batch mean of present ratings
	GoalsFilled  int     // Goals, or 0

	// Neighbor ratings within the same player's events, in original row order.
	// Falls back to the event's own RatingFilled at either end of the group.
	AvgRatingBefore float64
	AvgRatingAfter  float64

	TeamPerformanceDrop int     // TeamGoalsBefore - TeamGoalsDuring; negative = improvement
	PerformanceChange   float64 // AvgRatingAfter - AvgRatingBefore

	Month int // 1-12 from InjuryStart; 0 if the start date is unknown
}

// ---- Aggregate views ----

// DropEntry is one row of the performance-drop ranking: one entry per event,
// not per player.
type DropEntry struct {
	Player string
	Drop   int
}

// TimelinePoint is one point of a player's performance timeline.
type TimelinePoint struct {
	InjuryStart *time.Time
	Rating      float64
	Goals       int
	Status      string
}

// PlayerSeries is one player's timeline, sorted ascending by injury start.
type PlayerSeries struct {
	Player string
	Points []TimelinePoint
}

// FrequencyMatrix counts events per (club, month) cell. Clubs are sorted
// ascending; Months holds only the months observed in the data, ascending.
// Counts is indexed [club][month] following those two slices.
type FrequencyMatrix struct {
	Clubs  []string
	Months []int
	Counts [][]int
}

// Cell returns the count for a (club, month) pair, 0 if either is absent.
func (m *FrequencyMatrix) Cell(club string, month int) int {
	ci, mi := -1, -1
	for i, c := range m.Clubs {
		if c == club {
			ci = i
			break
		}
	}
	for i, mo := range m.Months {
		if mo == month {
			mi = i
			break
		}
	}
	if ci < 0 || mi < 0 {
		return 0
	}
	return m.Counts[ci][mi]
}

// ScatterPoint is one point of the age vs. performance-drop scatter view.
type ScatterPoint struct {
	Age   int
	Drop  int
	Club  string
	Goals int
}

// LeaderboardEntry is one row of the comeback leaderboard: a player's mean
// performance change across their events, rounded to 2 decimal places.
type LeaderboardEntry struct {
	Player     string
	MeanChange float64
}

// PlayerSummary aggregates one player's events: mean rating, total goals,
// mean team performance drop, and injury count.
type PlayerSummary struct {
	Player      string
	MeanRating  float64
	TotalGoals  int
	MeanDrop    float64
	InjuryCount int
}

// DatasetSummary is a lightweight record for list/show commands.
type DatasetSummary struct {
	Hash     string // sha256 of the decoded content
	Source   string // file path or "sample"
	LoadedAt string
	Rows     int
	Players  int
	Clubs    int
	DateMin  string // earliest known injury start, "" if none
	DateMax  string
	Skipped  int // rows dropped at decode for missing identifiers
	Warnings int // cells that failed to parse and became null
}
