// Package order reorders drawable items to cut down pen-up travel between
// them. Drawing length is fixed by the geometry; only the travel between the
// end of one item and the start of the next is up for grabs. The workhorse
// is a greedy nearest-neighbor construction, deliberately simple: it runs in
// milliseconds for hundreds of items and captures most of the achievable
// reduction.
package order

import (
	"plotpath/pkg/geometry"
)

// Stats reports what one optimization call did.
type Stats struct {
	DrawingLength float64 // pen-down mm
	TravelLength  float64 // pen-up mm
	PenLifts      int
	Applied       bool // false when there was nothing to reorder
	Method        string
}

// Segments reorders and possibly flips segments so consecutive items end
// near each other. If start is non-nil, travel from it to the first item
// counts too. Degenerate (zero-length) segments are dropped. Zero or one
// item comes back unchanged with Applied false.
func Segments(segments []geometry.LineSegment, start *geometry.Point) ([]geometry.LineSegment, Stats) {
	var kept []geometry.LineSegment
	for _, seg := range segments {
		if seg.A != seg.B {
			kept = append(kept, seg)
		}
	}
	stats := Stats{Method: "greedy", PenLifts: len(kept) - 1}
	if len(kept) == 0 {
		return nil, Stats{Method: "greedy"}
	}
	if len(kept) == 1 {
		stats.DrawingLength = kept[0].Length()
		return kept, stats
	}

	ordered, travel := greedySegments(kept, start)
	stats.Applied = true
	stats.TravelLength = travel
	stats.DrawingLength = geometry.TotalLength(ordered)
	return ordered, stats
}

// greedySegments consumes the nearest remaining segment endpoint at every
// step. Ties go to the lowest-index item, entry at A before B, which keeps
// the output deterministic.
func greedySegments(segments []geometry.LineSegment, start *geometry.Point) ([]geometry.LineSegment, float64) {
	current := segments[0].A
	if start != nil {
		current = *start
	}

	used := make([]bool, len(segments))
	ordered := make([]geometry.LineSegment, 0, len(segments))
	travel := 0.0
	for range segments {
		bestIdx := -1
		bestDist := 0.0
		bestFlip := false
		for i, seg := range segments {
			if used[i] {
				continue
			}
			if d := current.Distance(seg.A); bestIdx < 0 || d < bestDist {
				bestIdx, bestDist, bestFlip = i, d, false
			}
			if d := current.Distance(seg.B); d < bestDist {
				bestIdx, bestDist, bestFlip = i, d, true
			}
		}
		used[bestIdx] = true
		next := segments[bestIdx]
		if bestFlip {
			next = next.Reverse()
		}
		ordered = append(ordered, next)
		travel += bestDist
		current = next.B
	}
	return ordered, travel
}

// Polylines reorders polylines the same way. Open lines may be reversed;
// closed rings instead rotate to start at whichever vertex is nearest,
// keeping their winding. Lines with fewer than 2 points are dropped.
func Polylines(lines []geometry.Polyline, start *geometry.Point) ([]geometry.Polyline, Stats) {
	var kept []geometry.Polyline
	for _, line := range lines {
		if len(line) >= 2 && line.Length() > 0 {
			kept = append(kept, line)
		}
	}
	stats := Stats{Method: "greedy", PenLifts: len(kept) - 1}
	if len(kept) == 0 {
		return nil, Stats{Method: "greedy"}
	}
	if len(kept) == 1 {
		stats.DrawingLength = kept[0].Length()
		return kept, stats
	}

	current := kept[0][0]
	if start != nil {
		current = *start
	}

	used := make([]bool, len(kept))
	ordered := make([]geometry.Polyline, 0, len(kept))
	travel := 0.0
	for range kept {
		bestIdx := -1
		bestDist := 0.0
		bestEntry := 0 // vertex index for closed rings, 0 or last for open lines
		for i, line := range kept {
			if used[i] {
				continue
			}
			if line.IsClosed() {
				// Any vertex can be the entry point; the ring is
				// rotated there without reversal.
				for v := 0; v < len(line)-1; v++ {
					if d := current.Distance(line[v]); bestIdx < 0 || d < bestDist {
						bestIdx, bestDist, bestEntry = i, d, v
					}
				}
				continue
			}
			if d := current.Distance(line[0]); bestIdx < 0 || d < bestDist {
				bestIdx, bestDist, bestEntry = i, d, 0
			}
			if d := current.Distance(line[len(line)-1]); d < bestDist {
				bestIdx, bestDist, bestEntry = i, d, len(line)-1
			}
		}
		used[bestIdx] = true
		next := kept[bestIdx]
		switch {
		case next.IsClosed():
			next = rotateRing(next, bestEntry)
		case bestEntry != 0:
			next = next.Reverse()
		}
		ordered = append(ordered, next)
		travel += bestDist
		current = next[len(next)-1]
	}

	stats.Applied = true
	stats.TravelLength = travel
	stats.DrawingLength = geometry.TotalPolylineLength(ordered)
	return ordered, stats
}

// rotateRing re-seams a closed ring to begin and end at vertex v.
func rotateRing(ring geometry.Polyline, v int) geometry.Polyline {
	if v == 0 {
		return ring
	}
	open := ring[:len(ring)-1]
	out := make(geometry.Polyline, 0, len(ring))
	out = append(out, open[v:]...)
	out = append(out, open[:v]...)
	return append(out, out[0])
}

// Statistics measures an already-ordered set of segments without touching
// the order.
func Statistics(segments []geometry.LineSegment, start *geometry.Point) Stats {
	stats := Stats{Method: "none"}
	if len(segments) == 0 {
		return stats
	}
	stats.PenLifts = len(segments) - 1
	stats.DrawingLength = geometry.TotalLength(segments)
	if start != nil {
		stats.TravelLength += start.Distance(segments[0].A)
	}
	for i := 1; i < len(segments); i++ {
		stats.TravelLength += segments[i-1].B.Distance(segments[i].A)
	}
	return stats
}
