package centerline

import (
	"math"

	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// MedialAxisFunc, when set, computes an exact medial axis for a polygon at
// the given interpolation distance. It is nil by default; MethodVoronoi
// then returns empty results rather than silently substituting another
// strategy. Plug in an implementation at startup to enable the method.
var MedialAxisFunc func(poly polygon.Polygon, interpolation float64) []geometry.Polyline

// cornerTolerance is how close a spoke endpoint must be to a convex corner
// to count as anchored there; connectionTolerance is how close another
// line's endpoint must be to count as connected.
const (
	cornerTolerance     = 0.5
	connectionTolerance = 0.15
)

func extractVoronoi(poly polygon.Polygon, opts Options) []geometry.Polyline {
	if MedialAxisFunc == nil {
		return nil
	}

	interpolation := math.Max(0.1, math.Min(0.5, poly.Bounds().Diagonal()/50))
	paths := MedialAxisFunc(poly, interpolation)
	paths = mergeNearby(paths, opts.MergeTolerance, poly.Bounds())
	paths = refine(paths, opts)
	if opts.SpokeFilter > 0 {
		paths = filterSpokes(paths, poly, opts.SpokeFilter)
	}
	return filterShort(paths, opts.MinLength)
}

// filterSpokes drops the short artifact lines an exact medial axis grows
// toward every convex corner. A line is a spoke when it is below maxLength,
// one of its endpoints sits near a convex corner, and that endpoint hangs
// free of every other line. Single pass.
func filterSpokes(paths []geometry.Polyline, poly polygon.Polygon, maxLength float64) []geometry.Polyline {
	corners := convexCorners(poly)
	if len(corners) == 0 {
		return paths
	}

	out := paths[:0]
	for i, path := range paths {
		if path.Length() < maxLength && isSpoke(path, corners, paths, i) {
			continue
		}
		out = append(out, path)
	}
	return out
}

func isSpoke(path geometry.Polyline, corners []geometry.Point, all []geometry.Polyline, self int) bool {
	for _, end := range []geometry.Point{path[0], path[len(path)-1]} {
		nearCorner := false
		for _, corner := range corners {
			if end.Distance(corner) <= cornerTolerance {
				nearCorner = true
				break
			}
		}
		if !nearCorner {
			continue
		}
		connected := false
		for j, other := range all {
			if j == self || len(other) == 0 {
				continue
			}
			if other.EndpointDistance(end) <= connectionTolerance {
				connected = true
				break
			}
		}
		if !connected {
			return true
		}
	}
	return false
}

// convexCorners returns the vertices where the boundary turns into the
// material: convex vertices of the outer ring, and hole vertices pointing
// into the solid region.
func convexCorners(poly polygon.Polygon) []geometry.Point {
	var corners []geometry.Point
	for _, ring := range poly.Rings() {
		if len(ring) < 4 {
			continue
		}
		winding := ringWinding(ring)
		open := ring[:len(ring)-1]
		for i, p := range open {
			prev := open[(i+len(open)-1)%len(open)]
			next := open[(i+1)%len(open)]
			cross := p.Minus(prev).CrossProductZ(next.Minus(p))
			// near-collinear vertices are not corners
			if cross*winding > 0.01 {
				corners = append(corners, p)
			}
		}
	}
	return corners
}

func ringWinding(ring geometry.Polyline) float64 {
	sum := 0.0
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i].CrossProductZ(ring[i+1])
	}
	if sum < 0 {
		return -1
	}
	return 1
}
