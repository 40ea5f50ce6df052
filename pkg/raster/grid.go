// Package raster turns polygons into binary pixel grids and back: fill,
// morphological thinning to a one-pixel skeleton, and tracing the skeleton
// pixels into polylines.
package raster

import (
	"math"

	"plotpath/pkg/geometry"
)

// Grid is a binary image. Pix holds 0 or 1, row-major.
type Grid struct {
	W, H int
	Pix  []uint8
}

func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At reports whether the pixel is set. Out-of-bounds reads are false, which
// saves every neighborhood loop from explicit border checks.
func (g *Grid) At(x, y int) bool {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return false
	}
	return g.Pix[y*g.W+x] != 0
}

func (g *Grid) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	if on {
		g.Pix[y*g.W+x] = 1
	} else {
		g.Pix[y*g.W+x] = 0
	}
}

// Count returns the number of set pixels.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func (g *Grid) clone() *Grid {
	out := NewGrid(g.W, g.H)
	copy(out.Pix, g.Pix)
	return out
}

// Transform maps between world mm (y up) and pixel coordinates (y down).
// The grid carries a one-pixel empty border so morphology never touches the
// image edge; the transform accounts for it.
type Transform struct {
	MinX        float64
	MaxY        float64
	PixelsPerMM float64
}

func (t Transform) ToPixel(p geometry.Point) (int, int) {
	x := int(math.Floor((p.X-t.MinX)*t.PixelsPerMM)) + 1
	y := int(math.Floor((t.MaxY-p.Y)*t.PixelsPerMM)) + 1
	return x, y
}

// ToWorld returns the world position of the pixel center.
func (t Transform) ToWorld(x, y int) geometry.Point {
	return geometry.Point{
		X: t.MinX + (float64(x-1)+0.5)/t.PixelsPerMM,
		Y: t.MaxY - (float64(y-1)+0.5)/t.PixelsPerMM,
	}
}
