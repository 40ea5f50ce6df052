package geometry

import (
	"math"

	"plotpath/pkg/cfg"
)

// Polyline is an ordered point sequence drawn pen-down in one stroke. A
// polyline whose endpoints coincide within cfg.ClosedPolylineTolerance is a
// closed ring.
type Polyline []Point

func (line Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(line); i++ {
		total += line[i-1].Distance(line[i])
	}
	return total
}

// IsClosed reports whether the polyline's first and last points coincide
// within the closed-ring tolerance.
func (line Polyline) IsClosed() bool {
	if len(line) < 3 {
		return false
	}
	return line[0].Distance(line[len(line)-1]) < cfg.ClosedPolylineTolerance
}

// Reverse returns a new polyline with the point order flipped.
func (line Polyline) Reverse() Polyline {
	out := make(Polyline, len(line))
	for i, p := range line {
		out[len(line)-1-i] = p
	}
	return out
}

func (line Polyline) Bounds() Rectangle {
	r := EmptyRect()
	for _, p := range line {
		r = r.Expand(p)
	}
	return r
}

func (line Polyline) EndpointDistance(p Point) float64 {
	if len(line) == 0 {
		return math.NaN()
	}
	d := line[0].Distance(p)
	if len(line) > 1 {
		d = math.Min(d, line[len(line)-1].Distance(p))
	}
	return d
}

// Segments flattens the polyline into consecutive point-pair segments.
func (line Polyline) Segments() []LineSegment {
	if len(line) < 2 {
		return nil
	}
	segments := make([]LineSegment, 0, len(line)-1)
	for i := 1; i < len(line); i++ {
		segments = append(segments, LineSegment{A: line[i-1], B: line[i]})
	}
	return segments
}

// TotalPolylineLength returns the summed pen-down length of all polylines.
func TotalPolylineLength(lines []Polyline) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Length()
	}
	return total
}

// Simplify simplifies the polyline using the Douglas-Peucker algorithm.
// Endpoints are always preserved, so a simplified line never collapses to a
// single point.
func (points Polyline) Simplify(epsilon float64) Polyline {
	if len(points) < 2 {
		return nil
	}

	// find the point with the max distance from the line segment between the first and last points
	firstPoint, lastPoint := points[0], points[len(points)-1]
	chord := LineSegment{A: firstPoint, B: lastPoint}
	if len(points) == 2 {
		return Polyline{firstPoint, lastPoint}
	}

	dmax := 0.0
	index := 0
	for i := 1; i < len(points)-1; i++ {
		d := chord.Distance(points[i])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax < epsilon {
		return Polyline{firstPoint, lastPoint}
	}

	// note: need to be careful on the recursive step to not call with < 2 points
	recResults1 := Polyline(points[:index+1]).Simplify(epsilon)
	recResults2 := Polyline(points[index:]).Simplify(epsilon)

	return append(recResults1[:len(recResults1)-1], recResults2...)
}
