package polygon

import (
	"math"

	clipper "github.com/ctessum/go.clipper"

	"plotpath/pkg/geometry"
)

// offsetMiterLimit matches the mitred join behavior used for pen widths:
// corners sharper than the limit get squared off instead of spiking.
const offsetMiterLimit = 2.0

// OffsetInward shrinks the polygon boundary by distance mm using mitred
// joins. A distance <= 0 is a no-op. The result may be several disjoint
// pieces (the shape split around a narrow waist) or none at all (the shape
// vanished); callers must handle both.
func (p Polygon) OffsetInward(distance float64) []Polygon {
	if p.Empty() {
		return nil
	}
	if distance <= 0 {
		return []Polygon{p}
	}

	co := clipper.NewClipperOffset()
	co.MiterLimit = offsetMiterLimit
	co.AddPath(toPath(p.Outer), clipper.JtMiter, clipper.EtClosedPolygon)
	for _, hole := range p.Holes {
		co.AddPath(toPath(hole), clipper.JtMiter, clipper.EtClosedPolygon)
	}

	// Execute2's negative-delta tree splices out its working bounding
	// rectangle without re-parenting, leaving IsHole wrong on every
	// surviving node. Take the flat path output instead and rebuild the
	// nesting here.
	return nestPaths(co.Execute(-distance * clipperScale))
}

// nestPaths groups flat clipper output into polygons by containment depth:
// a ring inside an even number of other rings is an outer piece, odd is a
// hole of the smallest ring containing it.
func nestPaths(paths clipper.Paths) []Polygon {
	type ring struct {
		pts   geometry.Polyline
		area  float64
		depth int
		owner int
	}
	var rings []ring
	for _, path := range paths {
		if len(path) < 3 {
			continue
		}
		pts := fromPath(path)
		rings = append(rings, ring{pts: pts, area: math.Abs(shoelace(pts)), owner: -1})
	}

	for i := range rings {
		for j := range rings {
			if i == j || rings[j].area <= rings[i].area {
				continue
			}
			if !ringContains(rings[j].pts, rings[i].pts[0]) {
				continue
			}
			rings[i].depth++
			if rings[i].owner < 0 || rings[j].area < rings[rings[i].owner].area {
				rings[i].owner = j
			}
		}
	}

	pieceOf := make(map[int]int)
	var pieces []Polygon
	for i, r := range rings {
		if r.depth%2 == 0 {
			pieceOf[i] = len(pieces)
			pieces = append(pieces, Polygon{Outer: orientRing(r.pts, true)})
		}
	}
	for _, r := range rings {
		if r.depth%2 == 1 {
			if pi, ok := pieceOf[r.owner]; ok {
				pieces[pi].Holes = append(pieces[pi].Holes, orientRing(r.pts, false))
			}
		}
	}
	return pieces
}

// ringContains reports whether pt lies inside the closed ring, by ray cast.
func ringContains(ring geometry.Polyline, pt geometry.Point) bool {
	inside := false
	for i := 0; i < len(ring)-1; i++ {
		a, b := ring[i], ring[i+1]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < a.X+(pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X) {
			inside = !inside
		}
	}
	return inside
}
