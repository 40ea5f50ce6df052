package infill

import (
	"math"

	"plotpath/pkg/cfg"
	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// scanInset nudges the first and last scan line off the polygon boundary by
// one micrometer. Clipping a line exactly collinear with a boundary edge is
// numerically unstable on the integer grid.
const scanInset = 0.001

// lineFill draws parallel scan lines clipped to the polygon, one pass per
// entry in angles. Grid and crosshatch are just two passes.
type lineFill struct {
	pieces []polygon.Polygon
	opts   Options
	angles []float64
}

func (f *lineFill) Segments() []geometry.LineSegment {
	var out []geometry.LineSegment
	for _, angle := range f.angles {
		for _, piece := range f.pieces {
			for _, row := range scanRows(piece, f.opts.Density, angle) {
				out = append(out, row...)
			}
		}
	}
	return out
}

// scanRows clips one family of parallel lines at the given angle to the
// polygon. Lines are spread evenly across the projection span, covering
// both extremes at a spacing of at most density. Each returned row holds
// the clipped pieces of one scan line, ordered along the line direction;
// rows are ordered by increasing offset. Pathological density/size ratios
// (more than cfg.MaxScanLines lines) yield nil.
func scanRows(piece polygon.Polygon, density, angleDeg float64) [][]geometry.LineSegment {
	if piece.Empty() {
		return nil
	}

	rad := math.Mod(angleDeg, 360) * math.Pi / 180
	dir := geometry.Point{X: math.Cos(rad), Y: math.Sin(rad)}
	normal := geometry.Point{X: -dir.Y, Y: dir.X}

	// Coverage interval: project every vertex onto the normal.
	projMin := math.Inf(1)
	projMax := math.Inf(-1)
	for _, ring := range piece.Rings() {
		for _, pt := range ring {
			proj := pt.Dot(normal)
			projMin = math.Min(projMin, proj)
			projMax = math.Max(projMax, proj)
		}
	}
	span := projMax - projMin
	if span <= 0 {
		return nil
	}

	count := int(math.Ceil(span/density)) + 1
	if count > cfg.MaxScanLines {
		return nil
	}
	step := span / float64(count-1)

	bounds := piece.Bounds()
	center := bounds.Center()
	reach := bounds.Diagonal()/2 + 1

	rows := make([][]geometry.LineSegment, 0, count)
	for i := 0; i < count; i++ {
		offset := projMin + float64(i)*step
		if offset < projMin+scanInset {
			offset = projMin + scanInset
		}
		if offset > projMax-scanInset {
			offset = projMax - scanInset
		}

		// Point on this scan line closest to the polygon center, then
		// extend past the bounds in both directions before clipping.
		base := normal.Scale(offset)
		on := base.Add(dir.Scale(center.Minus(base).Dot(dir)))
		a := on.Minus(dir.Scale(reach))
		b := on.Add(dir.Scale(reach))

		row := piece.ClipSegment(a, b)
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
