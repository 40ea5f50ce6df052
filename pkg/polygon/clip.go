package polygon

import (
	"sort"

	clipper "github.com/ctessum/go.clipper"

	"plotpath/pkg/geometry"
)

// ClipSegment intersects the segment a-b with the polygon interior. Holes
// subtract automatically, so a segment crossing a hole comes back as two
// pieces. Results are oriented along the a->b direction and ordered by
// their position along it.
func (p Polygon) ClipSegment(a, b geometry.Point) []geometry.LineSegment {
	if p.Empty() {
		return nil
	}

	line := clipper.Path{
		{X: roundCInt(a.X * clipperScale), Y: roundCInt(a.Y * clipperScale)},
		{X: roundCInt(b.X * clipperScale), Y: roundCInt(b.Y * clipperScale)},
	}

	c := clipper.NewClipper(clipper.IoNone)
	if !c.AddPath(line, clipper.PtSubject, false) {
		return nil
	}
	c.AddPath(toPath(p.Outer), clipper.PtClip, true)
	for _, hole := range p.Holes {
		c.AddPath(toPath(hole), clipper.PtClip, true)
	}

	tree, ok := c.Execute2(clipper.CtIntersection, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok || tree == nil {
		return nil
	}

	dir := b.Minus(a).Normalize()
	var segments []geometry.LineSegment
	for _, path := range c.OpenPathsFromPolyTree(tree) {
		for i := 1; i < len(path); i++ {
			seg := geometry.LineSegment{
				A: geometry.Point{X: float64(path[i-1].X) / clipperScale, Y: float64(path[i-1].Y) / clipperScale},
				B: geometry.Point{X: float64(path[i].X) / clipperScale, Y: float64(path[i].Y) / clipperScale},
			}
			if seg.A == seg.B {
				continue
			}
			// orient each piece to follow the query direction
			if seg.B.Minus(seg.A).Dot(dir) < 0 {
				seg = seg.Reverse()
			}
			segments = append(segments, seg)
		}
	}

	sort.Slice(segments, func(i, j int) bool {
		pi := segments[i].A.Midpoint(segments[i].B).Minus(a).Dot(dir)
		pj := segments[j].A.Midpoint(segments[j].B).Minus(a).Dot(dir)
		return pi < pj
	})
	return segments
}
