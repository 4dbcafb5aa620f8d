package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/pable/injury-metrics/internal/model"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func dp(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// makeEvent builds a minimal event; fields not under test get fixed values.
func makeEvent(player string, rating *float64) model.Event {
	return model.Event{
		Player:          player,
		Club:            "Club_1",
		Rating:          rating,
		Goals:           ip(1),
		TeamGoalsBefore: 10,
		TeamGoalsDuring: 10,
		Age:             25,
		Status:          "After",
	}
}

// TestMeanFill: null ratings are replaced with the mean of the ratings that
// were present in the batch, computed once before any substitution.
func TestMeanFill(t *testing.T) {
	events := []model.Event{
		makeEvent("A", fp(8.0)),
		makeEvent("B", nil),
		makeEvent("C", fp(6.0)),
		makeEvent("D", nil),
	}
	out := Enrich(events)

	// Mean of present ratings = (8+6)/2 = 7; the two fills must not feed it.
	if out[1].RatingFilled != 7.0 {
		t.Errorf("RatingFilled for first null row: want 7.0, got %f", out[1].RatingFilled)
	}
	if out[3].RatingFilled != 7.0 {
		t.Errorf("RatingFilled for second null row: want 7.0, got %f", out[3].RatingFilled)
	}
	if out[0].RatingFilled != 8.0 || out[2].RatingFilled != 6.0 {
		t.Errorf("present ratings must pass through unchanged, got %f and %f",
			out[0].RatingFilled, out[2].RatingFilled)
	}
}

// TestMeanFill_AllNull: with no present ratings the fill value is 0.
func TestMeanFill_AllNull(t *testing.T) {
	events := []model.Event{makeEvent("A", nil), makeEvent("B", nil)}
	out := Enrich(events)
	for i := range out {
		if out[i].RatingFilled != 0 {
			t.Errorf("row %d: want RatingFilled=0 with no present ratings, got %f", i, out[i].RatingFilled)
		}
	}
}

// TestGoalsFill: missing goals become 0, present goals pass through.
func TestGoalsFill(t *testing.T) {
	e1 := makeEvent("A", fp(7.0))
	e1.Goals = ip(3)
	e2 := makeEvent("A", fp(7.0))
	e2.Goals = nil

	out := Enrich([]model.Event{e1, e2})
	if out[0].GoalsFilled != 3 {
		t.Errorf("GoalsFilled: want 3, got %d", out[0].GoalsFilled)
	}
	if out[1].GoalsFilled != 0 {
		t.Errorf("GoalsFilled for null goals: want 0, got %d", out[1].GoalsFilled)
	}
}

// TestNeighborShift_SingleEvent: a player with exactly one event falls back
// to its own filled rating on both sides.
func TestNeighborShift_SingleEvent(t *testing.T) {
	events := []model.Event{makeEvent("Solo", fp(6.5))}
	out := Enrich(events)

	e := out[0]
	if e.AvgRatingBefore != 6.5 || e.AvgRatingAfter != 6.5 {
		t.Errorf("single event: want before=after=6.5, got before=%f after=%f",
			e.AvgRatingBefore, e.AvgRatingAfter)
	}
	if e.PerformanceChange != 0 {
		t.Errorf("single event: want PerformanceChange=0, got %f", e.PerformanceChange)
	}
}

// TestNeighborShift_RowOrder: the previous/next rating is looked up within
// the same player's events in original row order, skipping other players'
// rows in between.
func TestNeighborShift_RowOrder(t *testing.T) {
	events := []model.Event{
		makeEvent("A", fp(5.0)), // A #1
		makeEvent("B", fp(9.0)), // B #1
		makeEvent("A", fp(6.0)), // A #2
		makeEvent("A", fp(7.0)), // A #3
	}
	out := Enrich(events)

	// A #2: before = A #1 (5.0), after = A #3 (7.0). B's 9.0 never appears.
	if out[2].AvgRatingBefore != 5.0 {
		t.Errorf("A#2 AvgRatingBefore: want 5.0, got %f", out[2].AvgRatingBefore)
	}
	if out[2].AvgRatingAfter != 7.0 {
		t.Errorf("A#2 AvgRatingAfter: want 7.0, got %f", out[2].AvgRatingAfter)
	}

	// A #1: no predecessor → own rating; successor = A #2.
	if out[0].AvgRatingBefore != 5.0 {
		t.Errorf("A#1 AvgRatingBefore: want own 5.0, got %f", out[0].AvgRatingBefore)
	}
	if out[0].AvgRatingAfter != 6.0 {
		t.Errorf("A#1 AvgRatingAfter: want 6.0, got %f", out[0].AvgRatingAfter)
	}

	// A #3: predecessor = A #2; no successor → own rating.
	if out[3].AvgRatingBefore != 6.0 {
		t.Errorf("A#3 AvgRatingBefore: want 6.0, got %f", out[3].AvgRatingBefore)
	}
	if out[3].AvgRatingAfter != 7.0 {
		t.Errorf("A#3 AvgRatingAfter: want own 7.0, got %f", out[3].AvgRatingAfter)
	}

	// B #1 is alone in its group.
	if out[1].AvgRatingBefore != 9.0 || out[1].AvgRatingAfter != 9.0 {
		t.Errorf("B#1: want before=after=9.0, got before=%f after=%f",
			out[1].AvgRatingBefore, out[1].AvgRatingAfter)
	}
}

// TestNeighborShift_UsesFilledRatings: the shift reads RatingFilled, so a
// null-rating neighbor contributes the batch mean, not zero.
func TestNeighborShift_UsesFilledRatings(t *testing.T) {
	events := []model.Event{
		makeEvent("A", nil),     // filled with the mean (8.0)
		makeEvent("A", fp(8.0)), // the only present rating
	}
	out := Enrich(events)

	if out[1].AvgRatingBefore != 8.0 {
		t.Errorf("AvgRatingBefore: want filled mean 8.0, got %f", out[1].AvgRatingBefore)
	}
}

// TestDropSignConvention: drop = before - during; positive means decline.
func TestDropSignConvention(t *testing.T) {
	cases := []struct {
		before, during, want int
	}{
		{20, 12, 8},
		{10, 15, -5},
		{7, 7, 0},
	}
	for _, c := range cases {
		e := makeEvent("A", fp(7.0))
		e.TeamGoalsBefore = c.before
		e.TeamGoalsDuring = c.during
		out := Enrich([]model.Event{e})
		if out[0].TeamPerformanceDrop != c.want {
			t.Errorf("drop(%d, %d): want %d, got %d",
				c.before, c.during, c.want, out[0].TeamPerformanceDrop)
		}
	}
}

// TestMonthExtraction: month comes from the injury start; unknown dates map to 0.
func TestMonthExtraction(t *testing.T) {
	dated := makeEvent("A", fp(7.0))
	dated.InjuryStart = dp("2021-07-15")
	undated := makeEvent("B", fp(7.0))

	out := Enrich([]model.Event{dated, undated})
	if out[0].Month != 7 {
		t.Errorf("Month: want 7, got %d", out[0].Month)
	}
	if out[1].Month != 0 {
		t.Errorf("Month for unknown start: want 0, got %d", out[1].Month)
	}
}

// TestEnrich_PreservesOrderAndLength: output mirrors input row for row.
func TestEnrich_PreservesOrderAndLength(t *testing.T) {
	events := []model.Event{
		makeEvent("C", fp(1.0)),
		makeEvent("A", fp(2.0)),
		makeEvent("B", fp(3.0)),
	}
	out := Enrich(events)
	if len(out) != len(events) {
		t.Fatalf("length: want %d, got %d", len(events), len(out))
	}
	for i := range events {
		if out[i].Player != events[i].Player {
			t.Errorf("row %d: want player %q, got %q", i, events[i].Player, out[i].Player)
		}
	}
}

// TestEnrich_Empty: empty input yields empty output, no error.
func TestEnrich_Empty(t *testing.T) {
	out := Enrich(nil)
	if len(out) != 0 {
		t.Errorf("want empty output, got %d rows", len(out))
	}
}

// TestEnrich_Idempotent: enriching the same input twice produces identical
// derived columns.
func TestEnrich_Idempotent(t *testing.T) {
	events := []model.Event{
		makeEvent("A", fp(5.5)),
		makeEvent("B", nil),
		makeEvent("A", fp(8.2)),
	}
	events[0].InjuryStart = dp("2020-03-01")
	events[2].InjuryStart = dp("2020-05-01")

	first := Enrich(events)
	second := Enrich(events)
	if !reflect.DeepEqual(first, second) {
		t.Error("two enrichments of the same input differ")
	}
}
