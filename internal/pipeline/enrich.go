// Package pipeline turns a raw injury-event table into the enriched and
// aggregated views the reporting layer renders. Every function is a pure
// transformation: same input, same output, no shared state.
package pipeline

import "github.com/pable/injury-metrics/internal/model"

// Enrich computes the derived columns for every event. Output has the same
// length and row order as the input. Derived fields are computed exactly once
// here; filtering operates on the already-enriched rows.
func Enrich(events []model.Event) []model.EnrichedEvent {
	out := make([]model.EnrichedEvent, len(events))

	// Mean over the ratings actually present, computed before any filling so
	// substituted values never feed back into it.
	var sum float64
	var present int
	for i := range events {
		if events[i].Rating != nil {
			sum += *events[i].Rating
			present++
		}
	}
	var mean float64
	if present > 0 {
		mean = sum / float64(present)
	}

	for i := range events {
		e := events[i]
		en := model.EnrichedEvent{Event: e}
		if e.Rating != nil {
			en.RatingFilled = *e.Rating
		} else {
			en.RatingFilled = mean
		}
		if e.Goals != nil {
			en.GoalsFilled = *e.Goals
		}
		en.TeamPerformanceDrop = e.TeamGoalsBefore - e.TeamGoalsDuring
		if e.InjuryStart != nil {
			en.Month = int(e.InjuryStart.Month())
		}
		out[i] = en
	}

	// Neighbor shift: previous/next RatingFilled within each player's events,
	// in original row order. A single neighbor lookup, not a windowed average.
	idxByPlayer := make(map[string][]int)
	for i := range out {
		idxByPlayer[out[i].Player] = append(idxByPlayer[out[i].Player], i)
	}
	for _, idxs := range idxByPlayer {
		for j, i := range idxs {
			if j > 0 {
				out[i].AvgRatingBefore = out[idxs[j-1]].RatingFilled
			} else {
				out[i].AvgRatingBefore = out[i].RatingFilled
			}
			if j < len(idxs)-1 {
				out[i].AvgRatingAfter = out[idxs[j+1]].RatingFilled
			} else {
				out[i].AvgRatingAfter = out[i].RatingFilled
			}
		}
	}

	for i := range out {
		out[i].PerformanceChange = out[i].AvgRatingAfter - out[i].AvgRatingBefore
	}
	return out
}
