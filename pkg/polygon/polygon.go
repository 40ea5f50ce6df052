// Package polygon provides the polygon-with-holes type the rest of the
// pipeline consumes, backed by the Clipper library for validity repair,
// inward offsetting and line clipping.
package polygon

import (
	"errors"
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"

	"plotpath/pkg/geometry"
)

// ErrInvalidGeometry marks malformed caller input: too few points,
// non-finite coordinates, or a shape that cannot be repaired. Geometric
// degeneracies (zero area, vanished offsets) are empty results, not errors.
var ErrInvalidGeometry = errors.New("invalid geometry")

// clipperScale converts mm to the integer micrometer grid Clipper works on.
const clipperScale = 1000.0

// Polygon is a closed outer ring with zero or more hole rings, all stored
// closed (first point repeated at the end). The outer ring winds counter-
// clockwise and holes clockwise; Build and the offset operations maintain
// that.
type Polygon struct {
	Outer geometry.Polyline
	Holes []geometry.Polyline
}

func (p Polygon) Empty() bool {
	return len(p.Outer) < 3
}

// Rings returns the outer ring followed by all hole rings.
func (p Polygon) Rings() []geometry.Polyline {
	rings := make([]geometry.Polyline, 0, 1+len(p.Holes))
	rings = append(rings, p.Outer)
	rings = append(rings, p.Holes...)
	return rings
}

// Area returns the enclosed area in mm², holes subtracted.
func (p Polygon) Area() float64 {
	if p.Empty() {
		return 0
	}
	area := math.Abs(shoelace(p.Outer))
	for _, hole := range p.Holes {
		area -= math.Abs(shoelace(hole))
	}
	return area
}

func (p Polygon) Bounds() geometry.Rectangle {
	return p.Outer.Bounds()
}

// Build constructs a repaired polygon from raw caller rings. Open rings are
// closed; self-intersecting input is resolved with an even-odd boolean; if
// repair produces multiple disjoint pieces, only the largest by area is
// kept and the rest are silently dropped. Holes with fewer than 3 points
// are ignored. Returns ErrInvalidGeometry for fewer than 3 distinct outer
// points or non-finite coordinates; a zero-area result is an empty polygon,
// not an error.
func Build(outer []geometry.Point, holes [][]geometry.Point) (Polygon, error) {
	if err := checkRing(outer); err != nil {
		return Polygon{}, err
	}
	for _, hole := range holes {
		for _, pt := range hole {
			if !pt.Finite() {
				return Polygon{}, fmt.Errorf("%w: non-finite hole coordinate", ErrInvalidGeometry)
			}
		}
	}

	c := clipper.NewClipper(clipper.IoNone)
	c.StrictlySimple = true
	if !c.AddPath(toPath(outer), clipper.PtSubject, true) {
		// Clipper rejects paths that collapse on the integer grid.
		return Polygon{}, nil
	}
	for _, hole := range holes {
		if len(hole) < 3 {
			continue
		}
		c.AddPath(toPath(hole), clipper.PtClip, true)
	}

	tree, ok := c.Execute2(clipper.CtDifference, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		return Polygon{}, fmt.Errorf("%w: unrepairable polygon", ErrInvalidGeometry)
	}

	pieces := fromPolyTree(tree)
	if len(pieces) == 0 {
		return Polygon{}, nil
	}

	// Keep the largest fragment. Lossy, but a caller handing us a shape
	// that shatters during repair almost always wants the dominant piece.
	best := pieces[0]
	for _, piece := range pieces[1:] {
		if piece.Area() > best.Area() {
			best = piece
		}
	}
	return best, nil
}

func checkRing(points []geometry.Point) error {
	for _, pt := range points {
		if !pt.Finite() {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalidGeometry)
		}
	}
	distinct := 0
	seen := map[geometry.Point]bool{}
	for _, pt := range points {
		if !seen[pt] {
			seen[pt] = true
			distinct++
		}
	}
	if distinct < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 distinct points, got %d", ErrInvalidGeometry, distinct)
	}
	return nil
}

// shoelace returns the signed area of a ring (positive = counterclockwise
// in the y-up world frame).
func shoelace(ring geometry.Polyline) float64 {
	if len(ring) < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i].CrossProductZ(ring[i+1])
	}
	// close the ring if it isn't stored closed
	if ring[0] != ring[len(ring)-1] {
		sum += ring[len(ring)-1].CrossProductZ(ring[0])
	}
	return sum / 2
}

func roundCInt(v float64) clipper.CInt {
	if v < 0 {
		return clipper.CInt(v - 0.5)
	}
	return clipper.CInt(v + 0.5)
}

// toPath converts a ring to a clipper path, dropping the explicit closing
// point (clipper paths are implicitly closed).
func toPath(ring []geometry.Point) clipper.Path {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	path := make(clipper.Path, 0, n)
	for _, pt := range ring[:n] {
		path = append(path, &clipper.IntPoint{
			X: roundCInt(pt.X * clipperScale),
			Y: roundCInt(pt.Y * clipperScale),
		})
	}
	return path
}

// fromPath converts a clipper path back to a closed ring in mm.
func fromPath(path clipper.Path) geometry.Polyline {
	if len(path) == 0 {
		return nil
	}
	ring := make(geometry.Polyline, 0, len(path)+1)
	for _, pt := range path {
		ring = append(ring, geometry.Point{
			X: float64(pt.X) / clipperScale,
			Y: float64(pt.Y) / clipperScale,
		})
	}
	ring = append(ring, ring[0])
	return ring
}

// fromPolyTree flattens a clipper result tree into polygons. Every non-hole
// node becomes a piece carrying its direct hole children; islands nested
// inside holes are promoted to pieces of their own.
func fromPolyTree(tree *clipper.PolyTree) []Polygon {
	var pieces []Polygon
	var walk func(nodes []*clipper.PolyNode)
	walk = func(nodes []*clipper.PolyNode) {
		for _, node := range nodes {
			if !node.IsOpen && !node.IsHole() && len(node.Contour()) >= 3 {
				piece := Polygon{Outer: orientRing(fromPath(node.Contour()), true)}
				for _, child := range node.Childs() {
					if child.IsHole() && len(child.Contour()) >= 3 {
						piece.Holes = append(piece.Holes, orientRing(fromPath(child.Contour()), false))
					}
				}
				pieces = append(pieces, piece)
			}
			walk(node.Childs())
		}
	}
	walk(tree.Childs())
	return pieces
}

func orientRing(ring geometry.Polyline, ccw bool) geometry.Polyline {
	if (shoelace(ring) > 0) != ccw {
		return ring.Reverse()
	}
	return ring
}
