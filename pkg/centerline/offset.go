package centerline

import (
	"math"

	"plotpath/pkg/cfg"
	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// offsetPrecision is the binary search resolution for the effective
// half-width, in mm.
const offsetPrecision = 0.05

// extractOffset collapses the shape onto a spine by offsetting inward. For
// holed shapes the spine instead runs the gap between each hole and the
// outer boundary.
func extractOffset(poly polygon.Polygon, opts Options) []geometry.Polyline {
	var spines []geometry.Polyline
	if len(poly.Holes) > 0 {
		for _, hole := range poly.Holes {
			spines = append(spines, ringSpine(poly.Outer, hole))
		}
	} else {
		spines = append(spines, collapseSpine(poly))
	}
	return refine(spines, opts)
}

// collapseSpine samples centroids of progressively deeper inward offsets.
func collapseSpine(poly polygon.Polygon) geometry.Polyline {
	halfWidth := effectiveHalfWidth(poly)
	if halfWidth <= 0 {
		return fallbackSpine(poly)
	}

	samples := int(halfWidth / 0.2)
	if samples < 10 {
		samples = 10
	}

	var spine geometry.Polyline
	for i := 0; i < samples; i++ {
		// Stop short of the vanishing depth; the last sliver's centroid
		// is numerically wild.
		depth := halfWidth * 0.95 * float64(i) / float64(samples-1)
		pieces := poly.OffsetInward(depth)
		if len(pieces) == 0 {
			break
		}
		largest := pieces[0]
		for _, piece := range pieces[1:] {
			if piece.Area() > largest.Area() {
				largest = piece
			}
		}
		c := centroid(largest.Outer)
		if len(spine) == 0 || spine[len(spine)-1].Distance(c) > 1e-6 {
			spine = append(spine, c)
		}
	}
	if len(spine) < 3 {
		return fallbackSpine(poly)
	}
	return spine
}

// effectiveHalfWidth binary-searches the largest inward offset at which the
// polygon still has a piece with non-trivial area.
func effectiveHalfWidth(poly polygon.Polygon) float64 {
	alive := func(depth float64) bool {
		for _, piece := range poly.OffsetInward(depth) {
			if piece.Area() > cfg.MinPieceArea {
				return true
			}
		}
		return false
	}

	lo, hi := 0.0, math.Min(poly.Bounds().Diagonal()/2, cfg.MaxHalfWidth)
	for hi-lo > offsetPrecision {
		mid := (lo + hi) / 2
		if alive(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// fallbackSpine is the degenerate answer for shapes too stubby to sample: a
// straight line through the centroid, anchored at the nearest boundary
// vertex and mirrored to the far side.
func fallbackSpine(poly polygon.Polygon) geometry.Polyline {
	c := centroid(poly.Outer)
	nearest := poly.Outer[0]
	for _, p := range poly.Outer {
		if p.Distance(c) < nearest.Distance(c) {
			nearest = p
		}
	}
	far := geometry.Point{X: 2*c.X - nearest.X, Y: 2*c.Y - nearest.Y}
	return geometry.Polyline{nearest, c, far}
}

// ringSpine averages the outer boundary and a hole boundary walked in
// arclength lockstep, yielding a closed ring centered in the gap between
// them.
func ringSpine(outer, hole geometry.Polyline) geometry.Polyline {
	const samples = 50

	// Walk both rings the same way round; holes are stored wound
	// opposite to the outer ring.
	a := resampleRing(outer, samples)
	b := resampleRing(hole.Reverse(), samples)

	// Re-seam the outer samples to start nearest the hole's start so
	// corresponding points face each other.
	shift := 0
	for i, p := range a {
		if p.Distance(b[0]) < a[shift].Distance(b[0]) {
			shift = i
		}
	}

	spine := make(geometry.Polyline, 0, samples+1)
	for i := 0; i < samples; i++ {
		spine = append(spine, a[(i+shift)%samples].Midpoint(b[i]))
	}
	return append(spine, spine[0])
}

// resampleRing distributes n points along the ring at equal arclength.
func resampleRing(ring geometry.Polyline, n int) geometry.Polyline {
	total := ring.Length()
	if total == 0 || len(ring) < 2 {
		out := make(geometry.Polyline, n)
		for i := range out {
			out[i] = ring[0]
		}
		return out
	}

	out := make(geometry.Polyline, 0, n)
	step := total / float64(n)
	target := 0.0
	walked := 0.0
	seg := 0
	for len(out) < n {
		segLen := ring[seg].Distance(ring[seg+1])
		for walked+segLen >= target && len(out) < n {
			t := 0.0
			if segLen > 0 {
				t = (target - walked) / segLen
			}
			d := ring[seg+1].Minus(ring[seg])
			out = append(out, ring[seg].Add(d.Scale(t)))
			target += step
		}
		walked += segLen
		if seg < len(ring)-2 {
			seg++
		} else if len(out) < n {
			// numerical shortfall at the seam
			out = append(out, ring[len(ring)-1])
		}
	}
	return out
}

// centroid is the area centroid of a closed ring.
func centroid(ring geometry.Polyline) geometry.Point {
	var cx, cy, area float64
	for i := 0; i < len(ring)-1; i++ {
		cross := ring[i].CrossProductZ(ring[i+1])
		cx += (ring[i].X + ring[i+1].X) * cross
		cy += (ring[i].Y + ring[i+1].Y) * cross
		area += cross
	}
	if area == 0 {
		return ring.Bounds().Center()
	}
	area /= 2
	return geometry.Point{X: cx / (6 * area), Y: cy / (6 * area)}
}
