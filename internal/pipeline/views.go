package pipeline

import (
	"math"
	"sort"

	"github.com/pable/injury-metrics/internal/model"
)

// TopPerformanceDrop ranks individual events (not players) by team
// performance drop, descending. Ties keep original row order. Returns at
// most n entries.
func TopPerformanceDrop(events []model.EnrichedEvent, n int) []model.DropEntry {
	entries := make([]model.DropEntry, len(events))
	for i := range events {
		entries[i] = model.DropEntry{Player: events[i].Player, Drop: events[i].TeamPerformanceDrop}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Drop > entries[j].Drop
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// PlayerTimeline builds one series per distinct player, players ordered by
// name ascending. Points are sorted ascending by injury start; events with an
// unknown start sort first, keeping their relative row order.
func PlayerTimeline(events []model.EnrichedEvent) []model.PlayerSeries {
	byPlayer := make(map[string][]model.TimelinePoint)
	for i := range events {
		e := &events[i]
		byPlayer[e.Player] = append(byPlayer[e.Player], model.TimelinePoint{
			InjuryStart: e.InjuryStart,
			Rating:      e.RatingFilled,
			Goals:       e.GoalsFilled,
			Status:      e.Status,
		})
	}

	players := make([]string, 0, len(byPlayer))
	for p := range byPlayer {
		players = append(players, p)
	}
	sort.Strings(players)

	series := make([]model.PlayerSeries, 0, len(players))
	for _, p := range players {
		points := byPlayer[p]
		sort.SliceStable(points, func(i, j int) bool {
			a, b := points[i].InjuryStart, points[j].InjuryStart
			if a == nil {
				return b != nil
			}
			if b == nil {
				return false
			}
			return a.Before(*b)
		})
		series = append(series, model.PlayerSeries{Player: p, Points: points})
	}
	return series
}

// ClubMonthFrequency counts events per (club, month). Clubs are sorted
// ascending; the month axis covers only the months observed in the input,
// ascending, with absent combinations at 0. Events with an unknown start
// date carry no month and are excluded.
func ClubMonthFrequency(events []model.EnrichedEvent) model.FrequencyMatrix {
	counts := make(map[string]map[int]int)
	monthSeen := make(map[int]bool)
	for i := range events {
		e := &events[i]
		if e.Month == 0 {
			continue
		}
		if counts[e.Club] == nil {
			counts[e.Club] = make(map[int]int)
		}
		counts[e.Club][e.Month]++
		monthSeen[e.Month] = true
	}

	var m model.FrequencyMatrix
	for club := range counts {
		m.Clubs = append(m.Clubs, club)
	}
	sort.Strings(m.Clubs)
	for month := range monthSeen {
		m.Months = append(m.Months, month)
	}
	sort.Ints(m.Months)

	m.Counts = make([][]int, len(m.Clubs))
	for ci, club := range m.Clubs {
		row := make([]int, len(m.Months))
		for mi, month := range m.Months {
			row[mi] = counts[club][month]
		}
		m.Counts[ci] = row
	}
	return m
}

// AgeDropScatter projects every event to an (age, drop, club, goals) point
// in input order. No aggregation.
func AgeDropScatter(events []model.EnrichedEvent) []model.ScatterPoint {
	points := make([]model.ScatterPoint, len(events))
	for i := range events {
		points[i] = model.ScatterPoint{
			Age:   events[i].Age,
			Drop:  events[i].TeamPerformanceDrop,
			Club:  events[i].Club,
			Goals: events[i].GoalsFilled,
		}
	}
	return points
}

// ComebackLeaderboard ranks players by mean performance change across their
// events, rounded to 2 decimal places, descending. Ties break on player name
// ascending. Returns at most n entries.
func ComebackLeaderboard(events []model.EnrichedEvent, n int) []model.LeaderboardEntry {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range events {
		sums[events[i].Player] += events[i].PerformanceChange
		counts[events[i].Player]++
	}

	entries := make([]model.LeaderboardEntry, 0, len(sums))
	for player, sum := range sums {
		entries = append(entries, model.LeaderboardEntry{
			Player:     player,
			MeanChange: round2(sum / float64(counts[player])),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MeanChange != entries[j].MeanChange {
			return entries[i].MeanChange > entries[j].MeanChange
		}
		return entries[i].Player < entries[j].Player
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// PlayerSummaries rolls each player's events up to mean rating, total goals,
// mean drop, and injury count, players ordered by name ascending.
func PlayerSummaries(events []model.EnrichedEvent) []model.PlayerSummary {
	type accum struct {
		ratingSum float64
		dropSum   int
		goals     int
		count     int
	}
	accums := make(map[string]*accum)
	for i := range events {
		e := &events[i]
		a := accums[e.Player]
		if a == nil {
			a = &accum{}
			accums[e.Player] = a
		}
		a.ratingSum += e.RatingFilled
		a.dropSum += e.TeamPerformanceDrop
		a.goals += e.GoalsFilled
		a.count++
	}

	players := make([]string, 0, len(accums))
	for p := range accums {
		players = append(players, p)
	}
	sort.Strings(players)

	out := make([]model.PlayerSummary, 0, len(players))
	for _, p := range players {
		a := accums[p]
		out = append(out, model.PlayerSummary{
			Player:      p,
			MeanRating:  a.ratingSum / float64(a.count),
			TotalGoals:  a.goals,
			MeanDrop:    float64(a.dropSum) / float64(a.count),
			InjuryCount: a.count,
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
