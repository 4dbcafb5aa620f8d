package pipeline

import (
	"time"

	"github.com/pable/injury-metrics/internal/model"
)

// Filter is a set of independent inclusion predicates. Each is optional: an
// empty slice or nil bound means no restriction on that dimension. A row
// survives Apply iff it satisfies the conjunction of every active predicate.
type Filter struct {
	Players  []string
	Clubs    []string
	Statuses []string
	Months   []int // calendar months 1-12

	AgeMin *int // inclusive
	AgeMax *int // inclusive

	From *time.Time // inclusive lower bound on InjuryStart
	To   *time.Time // inclusive upper bound on InjuryStart
}

// Active reports whether any predicate is set.
func (f *Filter) Active() bool {
	return len(f.Players) > 0 || len(f.Clubs) > 0 || len(f.Statuses) > 0 ||
		len(f.Months) > 0 || f.AgeMin != nil || f.AgeMax != nil ||
		f.From != nil || f.To != nil
}

// Apply returns the events matching every active predicate, preserving input
// order. The input slice is never mutated; with no active predicates the
// result is a copy of the input.
func (f *Filter) Apply(events []model.EnrichedEvent) []model.EnrichedEvent {
	out := make([]model.EnrichedEvent, 0, len(events))
	for i := range events {
		if f.match(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}

func (f *Filter) match(e *model.EnrichedEvent) bool {
	if len(f.Players) > 0 && !containsString(f.Players, e.Player) {
		return false
	}
	if len(f.Clubs) > 0 && !containsString(f.Clubs, e.Club) {
		return false
	}
	if len(f.Statuses) > 0 && !containsString(f.Statuses, e.Status) {
		return false
	}
	if len(f.Months) > 0 && !containsInt(f.Months, e.Month) {
		return false
	}
	if f.AgeMin != nil && e.Age < *f.AgeMin {
		return false
	}
	if f.AgeMax != nil && e.Age > *f.AgeMax {
		return false
	}
	// An event with an unknown start date cannot satisfy an active date bound.
	if f.From != nil && (e.InjuryStart == nil || e.InjuryStart.Before(*f.From)) {
		return false
	}
	if f.To != nil && (e.InjuryStart == nil || e.InjuryStart.After(*f.To)) {
		return false
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
