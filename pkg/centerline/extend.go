package centerline

import (
	"math"

	"plotpath/pkg/cfg"
	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// closeOrExtend finishes each open path: a path that nearly bites its own
// tail is closed into a loop, anything else gets its endpoints extended
// toward whatever they were heading for (another centerline, or the shape
// boundary) so strokes meet instead of stopping just short.
func closeOrExtend(paths []geometry.Polyline, poly polygon.Polygon, opts Options) []geometry.Polyline {
	for i, path := range paths {
		if len(path) < 2 || path.IsClosed() {
			continue
		}

		gap := path[0].Distance(path[len(path)-1])
		if len(path) >= 4 && gap < opts.LoopThreshold && gap < 0.15*path.Length() {
			mid := path[0].Midpoint(path[len(path)-1])
			closed := make(geometry.Polyline, 0, len(path)+1)
			closed = append(closed, mid)
			closed = append(closed, path[1:len(path)-1]...)
			closed = append(closed, mid)
			paths[i] = closed
			continue
		}

		path = extendEnd(path, paths, i, poly, opts)
		path = extendEnd(path.Reverse(), paths, i, poly, opts).Reverse()
		paths[i] = path
	}
	return paths
}

// extendEnd extends the last point of path. The ray continues the heading
// of the final segment; the nearest hit on another centerline wins over the
// boundary, and the extension is only committed when the hit lies within
// MaxExtend.
func extendEnd(path geometry.Polyline, all []geometry.Polyline, self int, poly polygon.Polygon, opts Options) geometry.Polyline {
	end := path[len(path)-1]
	dir := end.Minus(path[len(path)-2]).Normalize()
	if dir.Magnitude() == 0 {
		return path
	}
	ray := geometry.LineSegment{A: end, B: end.Add(dir.Scale(cfg.ExtendSearchLength))}

	hit, hitDist := nearestHit(ray, centerlineSegments(all, self))
	if hitDist > opts.MaxExtend {
		hit, hitDist = nearestHit(ray, boundarySegments(poly))
	}
	if hitDist > opts.MaxExtend {
		return path
	}
	return append(path, hit)
}

// nearestHit intersects the ray with each segment and keeps the hit closest
// to the ray origin, ignoring hits at the origin itself.
func nearestHit(ray geometry.LineSegment, segments []geometry.LineSegment) (geometry.Point, float64) {
	var best geometry.Point
	bestDist := math.Inf(1)
	for _, seg := range segments {
		p, ok := ray.Intersect(seg)
		if !ok {
			continue
		}
		d := ray.A.Distance(p)
		if d > 1e-9 && d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist
}

func centerlineSegments(all []geometry.Polyline, self int) []geometry.LineSegment {
	var out []geometry.LineSegment
	for i, other := range all {
		if i == self || len(other) < 2 {
			continue
		}
		out = append(out, other.Segments()...)
	}
	return out
}

func boundarySegments(poly polygon.Polygon) []geometry.LineSegment {
	var out []geometry.LineSegment
	for _, ring := range poly.Rings() {
		out = append(out, ring.Segments()...)
	}
	return out
}
