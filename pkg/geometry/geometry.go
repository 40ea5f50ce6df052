package geometry

import (
	"math"
)

// All coordinates are real-world millimeters, X right, Y up. The raster
// package is the only place that deals in pixels; pixel coordinates never
// leave it.

type Point struct {
	X float64
	Y float64
}

type Vector2 = Point

// LineSegment is a directed segment from A to B.
type LineSegment struct {
	A Point
	B Point
}

type Rectangle struct {
	Min Point
	Max Point
}

func (a Vector2) Minus(b Vector2) Vector2 {
	return Vector2{
		X: a.X - b.X,
		Y: a.Y - b.Y,
	}
}

func (a Vector2) Add(b Vector2) Vector2 {
	return Vector2{
		X: a.X + b.X,
		Y: a.Y + b.Y,
	}
}

func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

func (a Vector2) Dot(b Vector2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func (a Vector2) CrossProductZ(b Vector2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Normalize returns the unit vector in v's direction, or the zero vector if
// v is too short to have one.
func (v Vector2) Normalize() Vector2 {
	m := v.Magnitude()
	if m < 1e-12 {
		return Vector2{}
	}
	return Vector2{X: v.X / m, Y: v.Y / m}
}

// Distance returns the distance between two points.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Scale returns the point scaled by the given factor f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Midpoint returns the point halfway between p and other.
func (p Point) Midpoint(other Point) Point {
	return Point{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (s LineSegment) Length() float64 {
	return s.A.Distance(s.B)
}

// Reverse returns the segment drawn in the opposite direction.
func (s LineSegment) Reverse() LineSegment {
	return LineSegment{A: s.B, B: s.A}
}

// Distance returns the distance between a point and a line segment.
func (s LineSegment) Distance(p Point) float64 {
	AP := p.Minus(s.A)
	AB := s.A.Minus(s.B)
	mAP := AP.Magnitude()
	mBP := p.Minus(s.B).Magnitude()
	mAB := AB.Magnitude()

	if mAP > mAB || mBP > mAB {
		// closest point on line is outside segment boundaries, so the closest point
		// is the nearest of the two endpoints.
		return math.Min(mAP, mBP)
	}

	return math.Abs(AP.CrossProductZ(AB)) / mAB
}

// Intersect returns the intersection point of two segments, if they cross.
// Collinear overlaps report no intersection; the callers that need this
// (endpoint extension) treat an overlap as already-connected geometry.
func (s LineSegment) Intersect(t LineSegment) (Point, bool) {
	d1 := s.B.Minus(s.A)
	d2 := t.B.Minus(t.A)
	denom := d1.CrossProductZ(d2)
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	diff := t.A.Minus(s.A)
	u := diff.CrossProductZ(d2) / denom
	v := diff.CrossProductZ(d1) / denom
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return Point{}, false
	}
	return Point{X: s.A.X + u*d1.X, Y: s.A.Y + u*d1.Y}, true
}

// TotalLength returns the summed length of all segments.
func TotalLength(segments []LineSegment) float64 {
	total := 0.0
	for _, s := range segments {
		total += s.Length()
	}
	return total
}

func (r Rectangle) Width() float64  { return r.Max.X - r.Min.X }
func (r Rectangle) Height() float64 { return r.Max.Y - r.Min.Y }

// Diagonal returns the length of the rectangle's diagonal.
func (r Rectangle) Diagonal() float64 {
	return math.Hypot(r.Width(), r.Height())
}

func (r Rectangle) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Expand grows the rectangle to include p.
func (r Rectangle) Expand(p Point) Rectangle {
	return Rectangle{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// EmptyRect returns a rectangle that expands from nothing.
func EmptyRect() Rectangle {
	return Rectangle{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}
