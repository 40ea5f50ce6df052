package order

import (
	"time"

	"plotpath/pkg/geometry"
)

// SegmentsWithBudget runs the greedy ordering, then spends up to budget
// refining it with 2-opt reversals. The refined tour is only kept when it
// actually travels less than the greedy one; a refinement pass that runs
// out of budget mid-improvement still loses to greedy if it didn't help.
func SegmentsWithBudget(segments []geometry.LineSegment, start *geometry.Point, budget time.Duration) ([]geometry.LineSegment, Stats) {
	ordered, stats := Segments(segments, start)
	if !stats.Applied || len(ordered) < 3 || budget <= 0 {
		return ordered, stats
	}

	anchor := ordered[0].A
	if start != nil {
		anchor = *start
	}
	refined := twoOpt(ordered, anchor, time.Now().Add(budget))
	refinedTravel := tourTravel(refined, anchor)
	if refinedTravel < stats.TravelLength {
		stats.TravelLength = refinedTravel
		stats.Method = "greedy+2opt"
		return refined, stats
	}
	return ordered, stats
}

// twoOpt repeatedly reverses tour slices while that shortens travel.
// Reversing a slice also flips each segment inside it, so the entry and
// exit points of the slice swap ends.
func twoOpt(tour []geometry.LineSegment, anchor geometry.Point, deadline time.Time) []geometry.LineSegment {
	out := make([]geometry.LineSegment, len(tour))
	copy(out, tour)

	improved := true
	for improved && time.Now().Before(deadline) {
		improved = false
		for i := 0; i < len(out)-1; i++ {
			prevExit := anchor
			if i > 0 {
				prevExit = out[i-1].B
			}
			for j := i + 1; j < len(out); j++ {
				// After reversal the slice is entered at out[j].B and
				// left at out[i].A.
				delta := prevExit.Distance(out[j].B) - prevExit.Distance(out[i].A)
				if j+1 < len(out) {
					delta += out[i].A.Distance(out[j+1].A) - out[j].B.Distance(out[j+1].A)
				}
				if delta < -1e-9 {
					reverseSlice(out[i : j+1])
					improved = true
				}
			}
			if !time.Now().Before(deadline) {
				break
			}
		}
	}
	return out
}

func reverseSlice(segments []geometry.LineSegment) {
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	for i := range segments {
		segments[i] = segments[i].Reverse()
	}
}

// tourTravel sums pen-up moves along an ordered tour starting from anchor.
func tourTravel(tour []geometry.LineSegment, anchor geometry.Point) float64 {
	travel := 0.0
	current := anchor
	for _, seg := range tour {
		travel += current.Distance(seg.A)
		current = seg.B
	}
	return travel
}
