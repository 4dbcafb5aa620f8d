package pipeline

import (
	"testing"
	"time"

	"github.com/pable/injury-metrics/internal/model"
)

// makeEnriched builds a filterable enriched event directly; month 0 leaves
// the start date unknown.
func makeEnriched(player, club, status string, age, month int) model.EnrichedEvent {
	e := model.EnrichedEvent{Event: model.Event{
		Player: player,
		Club:   club,
		Status: status,
		Age:    age,
	}}
	if month > 0 {
		d := time.Date(2021, time.Month(month), 15, 0, 0, 0, 0, time.UTC)
		e.InjuryStart = &d
		e.Month = month
	}
	return e
}

// TestFilter_NoActivePredicates: an empty filter returns every row in order.
func TestFilter_NoActivePredicates(t *testing.T) {
	events := []model.EnrichedEvent{
		makeEnriched("A", "X", "Before", 20, 1),
		makeEnriched("B", "Y", "During", 30, 2),
		makeEnriched("C", "Z", "After", 25, 3),
	}

	f := &Filter{}
	if f.Active() {
		t.Fatal("empty filter must not be active")
	}
	out := f.Apply(events)
	if len(out) != 3 {
		t.Fatalf("want all 3 rows, got %d", len(out))
	}
	for i := range events {
		if out[i].Player != events[i].Player {
			t.Errorf("row %d: order changed, want %q got %q", i, events[i].Player, out[i].Player)
		}
	}
}

// TestFilter_Conjunction: active predicates combine with logical AND.
func TestFilter_Conjunction(t *testing.T) {
	events := []model.EnrichedEvent{
		makeEnriched("P1", "A", "Before", 22, 1), // club ok, age ok
		makeEnriched("P2", "A", "Before", 28, 1), // club ok, age out
		makeEnriched("P3", "B", "Before", 22, 1), // club out, age ok
		makeEnriched("P4", "C", "Before", 24, 1), // club out
	}

	min, max := 20, 25
	f := &Filter{Clubs: []string{"A"}, AgeMin: &min, AgeMax: &max}
	out := f.Apply(events)

	if len(out) != 1 || out[0].Player != "P1" {
		t.Fatalf("want exactly [P1], got %d rows", len(out))
	}
}

// TestFilter_EmptyResultIsValid: a filter matching nothing returns an empty
// slice, not an error or nil panic downstream.
func TestFilter_EmptyResultIsValid(t *testing.T) {
	events := []model.EnrichedEvent{makeEnriched("A", "X", "Before", 20, 1)}
	f := &Filter{Clubs: []string{"NoSuchClub"}}
	out := f.Apply(events)
	if len(out) != 0 {
		t.Errorf("want empty result, got %d rows", len(out))
	}
}

// TestFilter_MonthAndStatus: month and status predicates restrict
// independently.
func TestFilter_MonthAndStatus(t *testing.T) {
	events := []model.EnrichedEvent{
		makeEnriched("P1", "A", "Before", 22, 1),
		makeEnriched("P2", "A", "After", 22, 1),
		makeEnriched("P3", "A", "After", 22, 6),
	}

	f := &Filter{Statuses: []string{"After"}, Months: []int{6}}
	out := f.Apply(events)
	if len(out) != 1 || out[0].Player != "P3" {
		t.Fatalf("want exactly [P3], got %d rows", len(out))
	}
}

// TestFilter_DateBounds: the injury-start range is inclusive at both ends and
// excludes events with an unknown start.
func TestFilter_DateBounds(t *testing.T) {
	inRange := makeEnriched("In", "A", "Before", 22, 0)
	inRange.InjuryStart = dp("2021-06-15")
	atEdge := makeEnriched("Edge", "A", "Before", 22, 0)
	atEdge.InjuryStart = dp("2021-01-01")
	before := makeEnriched("Early", "A", "Before", 22, 0)
	before.InjuryStart = dp("2020-12-31")
	unknown := makeEnriched("NoDate", "A", "Before", 22, 0)

	f := &Filter{From: dp("2021-01-01"), To: dp("2021-12-31")}
	out := f.Apply([]model.EnrichedEvent{inRange, atEdge, before, unknown})

	if len(out) != 2 {
		t.Fatalf("want 2 rows, got %d", len(out))
	}
	if out[0].Player != "In" || out[1].Player != "Edge" {
		t.Errorf("want [In Edge], got [%s %s]", out[0].Player, out[1].Player)
	}
}

// TestFilter_DoesNotMutateInput: Apply leaves the input slice untouched.
func TestFilter_DoesNotMutateInput(t *testing.T) {
	events := []model.EnrichedEvent{
		makeEnriched("A", "X", "Before", 20, 1),
		makeEnriched("B", "Y", "During", 30, 2),
	}
	f := &Filter{Players: []string{"B"}}
	_ = f.Apply(events)

	if events[0].Player != "A" || events[1].Player != "B" {
		t.Error("input slice was mutated by Apply")
	}
}
