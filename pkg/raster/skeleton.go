package raster

import (
	"plotpath/pkg/cfg"
)

// Skeletonize is the basic morphological skeleton: repeatedly erode with a
// 3x3 cross, each round keeping the pixels that opening would remove, until
// the working image is empty. Coarser than Thin (it can leave small gaps)
// but has no connectivity preconditions; kept as the fallback reducer.
func (g *Grid) Skeletonize() *Grid {
	skel := NewGrid(g.W, g.H)
	current := g.clone()
	for iteration := 0; iteration < cfg.MaxThinningIterations && current.Count() > 0; iteration++ {
		eroded := current.erode()
		opened := eroded.dilate()
		for i := range current.Pix {
			if current.Pix[i] != 0 && opened.Pix[i] == 0 {
				skel.Pix[i] = 1
			}
		}
		current = eroded
	}
	return skel
}

// erode clears any set pixel whose 4-neighborhood is not fully set.
func (g *Grid) erode() *Grid {
	out := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) && g.At(x-1, y) && g.At(x+1, y) && g.At(x, y-1) && g.At(x, y+1) {
				out.Pix[y*g.W+x] = 1
			}
		}
	}
	return out
}

// dilate sets any pixel with a set 4-neighbor.
func (g *Grid) dilate() *Grid {
	out := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) || g.At(x-1, y) || g.At(x+1, y) || g.At(x, y-1) || g.At(x, y+1) {
				out.Pix[y*g.W+x] = 1
			}
		}
	}
	return out
}
