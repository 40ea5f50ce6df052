package infill

import (
	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// zigzagFill stitches the parallel scan lines of the lines pattern into
// continuous boustrophedon polylines, alternating direction row by row. A
// stitch only happens when the jump to the next scan line is shorter than
// twice the density; longer jumps (re-entrant regions, hole shadows) end
// the current polyline and start a new one.
type zigzagFill struct {
	pieces []polygon.Polygon
	opts   Options
}

func (f *zigzagFill) Polylines() []geometry.Polyline {
	threshold := 2 * f.opts.Density
	var out []geometry.Polyline
	for _, piece := range f.pieces {
		rows := scanRows(piece, f.opts.Density, f.opts.Angle)

		// Alternate traversal direction on every other row so that
		// consecutive line ends land near each other.
		var sequence []geometry.LineSegment
		for i, row := range rows {
			if i%2 == 0 {
				sequence = append(sequence, row...)
				continue
			}
			for j := len(row) - 1; j >= 0; j-- {
				sequence = append(sequence, row[j].Reverse())
			}
		}

		var current geometry.Polyline
		for _, seg := range sequence {
			if len(current) == 0 {
				current = geometry.Polyline{seg.A, seg.B}
				continue
			}
			last := current[len(current)-1]
			// Enter the segment from whichever endpoint is closer.
			if last.Distance(seg.B) < last.Distance(seg.A) {
				seg = seg.Reverse()
			}
			if last.Distance(seg.A) < threshold {
				current = append(current, seg.A, seg.B)
				continue
			}
			out = append(out, current)
			current = geometry.Polyline{seg.A, seg.B}
		}
		if len(current) > 0 {
			out = append(out, current)
		}
	}
	return out
}

func (f *zigzagFill) Segments() []geometry.LineSegment {
	var out []geometry.LineSegment
	for _, line := range f.Polylines() {
		out = append(out, line.Segments()...)
	}
	return out
}
