package centerline

import (
	"math"

	"github.com/asim/quadtree"

	"plotpath/pkg/geometry"
)

// endpointIndex is a quadtree over polyline endpoints, used to find merge
// partners without scanning every pair.
type endpointIndex struct {
	tree *quadtree.QuadTree
}

func newEndpointIndex(bounds geometry.Rectangle) *endpointIndex {
	center := bounds.Center()
	// margin so endpoints on the bounds edge are never dropped
	halfW := bounds.Width()/2 + 10
	halfH := bounds.Height()/2 + 10
	aabb := quadtree.NewAABB(
		quadtree.NewPoint(center.X, center.Y, nil),
		quadtree.NewPoint(halfW, halfH, nil))
	return &endpointIndex{tree: quadtree.New(aabb, 0, nil)}
}

func (idx *endpointIndex) add(p geometry.Point, pathIdx int) {
	idx.tree.Insert(quadtree.NewPoint(p.X, p.Y, pathIdx))
}

// nearest returns the index of the closest indexed endpoint within maxDist
// of p, ignoring entries belonging to skip.
func (idx *endpointIndex) nearest(p geometry.Point, maxDist float64, skip int) (int, float64) {
	aabb := quadtree.NewAABB(
		quadtree.NewPoint(p.X, p.Y, nil),
		quadtree.NewPoint(maxDist, maxDist, nil))
	best := -1
	bestDist := math.Inf(1)
	for _, candidate := range idx.tree.Search(aabb) {
		other := candidate.Data().(int)
		if other == skip {
			continue
		}
		x, y := candidate.Coordinates()
		d := p.Distance(geometry.Point{X: x, Y: y})
		if d <= maxDist && d < bestDist {
			best, bestDist = other, d
		}
	}
	return best, bestDist
}

// mergeNearby concatenates open polylines whose endpoints come within
// tolerance of each other, reversing as needed, and repeats until no pair
// qualifies. Thinning and tracing leave hairline gaps at junction pixels;
// this stitches them back into continuous strokes.
func mergeNearby(paths []geometry.Polyline, tolerance float64, bounds geometry.Rectangle) []geometry.Polyline {
	if tolerance <= 0 || len(paths) < 2 {
		return paths
	}

	work := make([]geometry.Polyline, len(paths))
	copy(work, paths)

	for {
		idx := newEndpointIndex(bounds)
		for i, path := range work {
			if len(path) < 2 || path.IsClosed() {
				continue
			}
			idx.add(path[0], i)
			idx.add(path[len(path)-1], i)
		}

		merged := false
		for i, path := range work {
			if len(path) < 2 || path.IsClosed() {
				continue
			}
			for _, fromEnd := range []bool{false, true} {
				p := path[0]
				if fromEnd {
					p = path[len(path)-1]
				}
				j, _ := idx.nearest(p, tolerance, i)
				if j < 0 || len(work[j]) < 2 {
					continue
				}
				work[i] = join(path, work[j], fromEnd, tolerance)
				work[j] = nil
				merged = true
				break
			}
			if merged {
				break
			}
		}
		if !merged {
			break
		}

		compact := work[:0]
		for _, path := range work {
			if len(path) >= 2 {
				compact = append(compact, path)
			}
		}
		work = compact
	}
	return work
}

// join concatenates b onto the chosen end of a, orienting b so the two
// near endpoints meet. Exact duplicate join points collapse to one.
func join(a, b geometry.Polyline, atEnd bool, tolerance float64) geometry.Polyline {
	if !atEnd {
		a = a.Reverse()
	}
	tail := a[len(a)-1]
	if tail.Distance(b[len(b)-1]) < tail.Distance(b[0]) {
		b = b.Reverse()
	}
	out := make(geometry.Polyline, 0, len(a)+len(b))
	out = append(out, a...)
	if b[0] == tail {
		b = b[1:]
	}
	return append(out, b...)
}
