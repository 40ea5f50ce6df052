package infill

import (
	"plotpath/pkg/cfg"
	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// concentricFill repeatedly offsets the polygon inward by the density and
// emits every boundary ring at each step as a closed polyline. The offset
// may split the shape; each resulting piece keeps shrinking independently
// until it vanishes or drops below the minimum area.
type concentricFill struct {
	pieces []polygon.Polygon
	opts   Options
}

func (f *concentricFill) Polylines() []geometry.Polyline {
	var out []geometry.Polyline
	current := f.pieces
	for iteration := 0; iteration < cfg.MaxOffsetIterations && len(current) > 0; iteration++ {
		var next []polygon.Polygon
		for _, piece := range current {
			if piece.Empty() || piece.Area() < cfg.MinPieceArea {
				continue
			}
			for _, ring := range piece.Rings() {
				out = append(out, ring)
			}
			next = append(next, piece.OffsetInward(f.opts.Density)...)
		}
		current = next
	}
	return out
}

func (f *concentricFill) Segments() []geometry.LineSegment {
	var out []geometry.LineSegment
	for _, line := range f.Polylines() {
		out = append(out, line.Segments()...)
	}
	return out
}
