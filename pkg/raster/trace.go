package raster

import (
	"plotpath/pkg/geometry"
)

// neighborOffsets is the fixed probe order for the tracer: the four
// orthogonal directions first, then the diagonals. The order doubles as the
// deterministic tie-break.
var neighborOffsets = [8][2]int{
	{0, -1},  // N
	{1, 0},   // E
	{0, 1},   // S
	{-1, 0},  // W
	{-1, -1}, // NW
	{1, -1},  // NE
	{1, 1},   // SE
	{-1, 1},  // SW
}

// Trace walks the one-pixel skeleton as a graph and returns world-space
// polylines. Every foreground pixel is classified by its 8-neighbor count:
// endpoints (1) are traced first, then junctions (3 or more), then whatever
// scan order finds, so open strokes come out whole instead of split at an
// arbitrary interior pixel. At a branch the walk prefers the neighbor that
// best continues the incoming direction.
func (g *Grid) Trace(t Transform) []geometry.Polyline {
	visited := NewGrid(g.W, g.H)

	var endpoints, junctions []int
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.At(x, y) {
				continue
			}
			switch n := g.neighborCount(x, y); {
			case n == 1:
				endpoints = append(endpoints, y*g.W+x)
			case n >= 3:
				junctions = append(junctions, y*g.W+x)
			}
		}
	}

	var paths []geometry.Polyline
	trace := func(idx int) {
		if visited.Pix[idx] != 0 {
			return
		}
		paths = append(paths, g.walk(idx, visited, t))
	}

	for _, idx := range endpoints {
		trace(idx)
	}
	for _, idx := range junctions {
		trace(idx)
	}
	for idx, v := range g.Pix {
		if v != 0 {
			trace(idx)
		}
	}
	return paths
}

func (g *Grid) neighborCount(x, y int) int {
	n := 0
	for _, d := range neighborOffsets {
		if g.At(x+d[0], y+d[1]) {
			n++
		}
	}
	return n
}

// walk follows unvisited skeleton pixels from a start index until stuck.
func (g *Grid) walk(start int, visited *Grid, t Transform) geometry.Polyline {
	x, y := start%g.W, start/g.W
	visited.Pix[start] = 1
	path := geometry.Polyline{t.ToWorld(x, y)}

	dx, dy := 0, 0
	for {
		bestX, bestY := 0, 0
		bestDot := 0
		found := false
		for _, d := range neighborOffsets {
			nx, ny := x+d[0], y+d[1]
			if !g.At(nx, ny) || visited.At(nx, ny) {
				continue
			}
			// Unnormalized dot product is enough to rank straightness;
			// earlier probe order wins ties via the strict compare.
			dot := d[0]*dx + d[1]*dy
			if !found || dot > bestDot {
				bestX, bestY, bestDot = nx, ny, dot
				found = true
			}
		}
		if !found {
			return path
		}
		dx, dy = bestX-x, bestY-y
		x, y = bestX, bestY
		visited.Set(x, y, true)
		path = append(path, t.ToWorld(x, y))
	}
}
