package geometry

import (
	"math"

	"plotpath/pkg/cfg"
)

// Chaikin applies corner-cutting subdivision: each iteration replaces every
// interior segment P0-P1 with interpolated points at 1/4 and 3/4, keeping
// the original endpoints fixed. Used to remove pixel staircasing from
// skeleton-traced lines. Zero iterations returns the input unchanged.
func (line Polyline) Chaikin(iterations int) Polyline {
	result := line
	for n := 0; n < iterations; n++ {
		if len(result) < 3 {
			return result
		}
		smoothed := make(Polyline, 0, 2*len(result))
		smoothed = append(smoothed, result[0])
		for i := 0; i < len(result)-1; i++ {
			p0, p1 := result[i], result[i+1]
			smoothed = append(smoothed,
				Point{X: 0.75*p0.X + 0.25*p1.X, Y: 0.75*p0.Y + 0.25*p1.Y},
				Point{X: 0.25*p0.X + 0.75*p1.X, Y: 0.25*p0.Y + 0.75*p1.Y},
			)
		}
		smoothed = append(smoothed, result[len(result)-1])
		result = smoothed
	}
	return result
}

// interiorAngle returns the angle at p1 formed by p0-p1-p2, in degrees
// (0..180). Degenerate spans count as straight so they are never "smoothed".
func interiorAngle(p0, p1, p2 Point) float64 {
	v1 := p0.Minus(p1)
	v2 := p2.Minus(p1)
	m1 := v1.Magnitude()
	m2 := v2.Magnitude()
	if m1 < 1e-6 || m2 < 1e-6 {
		return 180
	}
	cos := v1.Dot(v2) / (m1 * m2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// SmoothSharpAngles pulls every interior point whose angle is below
// minAngle degrees 70% of the way toward the midpoint of its neighbors.
// Sharp kinks like this come from skeleton junctions and look wrong when
// plotted. Up to cfg.MaxSmoothingPasses passes, stopping early once a pass
// changes nothing.
func (line Polyline) SmoothSharpAngles(minAngle float64) Polyline {
	if len(line) < 3 || minAngle <= 0 {
		return line
	}

	result := append(Polyline(nil), line...)
	for pass := 0; pass < cfg.MaxSmoothingPasses; pass++ {
		changed := false
		next := make(Polyline, 0, len(result))
		next = append(next, result[0])
		for i := 1; i < len(result)-1; i++ {
			p0, p1, p2 := result[i-1], result[i], result[i+1]
			if interiorAngle(p0, p1, p2) < minAngle {
				mid := p0.Midpoint(p2)
				next = append(next, Point{
					X: p1.X*0.3 + mid.X*0.7,
					Y: p1.Y*0.3 + mid.Y*0.7,
				})
				changed = true
			} else {
				next = append(next, p1)
			}
		}
		next = append(next, result[len(result)-1])
		result = next
		if !changed {
			break
		}
	}
	return result
}
