package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"plotpath/pkg/cfg"
	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// Rasterize fills the polygon into a binary grid at 1/resolution pixels per
// mm. Holes are drawn with their opposite winding so the rasterizer's
// accumulated coverage cancels inside them. Grids larger than
// cfg.MaxRasterDimension in either direction are scaled down uniformly to
// fit, so the effective resolution can be coarser than requested.
func Rasterize(poly polygon.Polygon, resolution float64) (*Grid, Transform) {
	if poly.Empty() || resolution <= 0 {
		return NewGrid(0, 0), Transform{PixelsPerMM: 1}
	}

	bounds := poly.Bounds()
	width := bounds.Width()
	height := bounds.Height()
	ppmm := 1 / resolution

	maxContent := float64(cfg.MaxRasterDimension - 2)
	if width*ppmm > maxContent {
		ppmm = maxContent / width
	}
	if height*ppmm > maxContent {
		ppmm = maxContent / height
	}

	w := gridDim(width * ppmm)
	h := gridDim(height * ppmm)
	t := Transform{MinX: bounds.Min.X, MaxY: bounds.Max.Y, PixelsPerMM: ppmm}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	for _, ring := range poly.Rings() {
		drawRing(r, ring, t)
	}

	alpha := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	g := NewGrid(w, h)
	for i, a := range alpha.Pix {
		if a >= 0x80 {
			g.Pix[i] = 1
		}
	}
	return g, t
}

// gridDim pads a content size with the one-pixel border on each side and
// keeps a floor of 3 so even hairline shapes get at least one interior row.
func gridDim(content float64) int {
	d := int(math.Ceil(content)) + 2
	if d < 3 {
		return 3
	}
	return d
}

func drawRing(r *vector.Rasterizer, ring geometry.Polyline, t Transform) {
	if len(ring) < 3 {
		return
	}
	toPx := func(p geometry.Point) (float32, float32) {
		return float32((p.X-t.MinX)*t.PixelsPerMM) + 1, float32((t.MaxY-p.Y)*t.PixelsPerMM) + 1
	}
	x, y := toPx(ring[0])
	r.MoveTo(x, y)
	for _, p := range ring[1:] {
		x, y = toPx(p)
		r.LineTo(x, y)
	}
	r.ClosePath()
}
