package raster

import (
	"plotpath/pkg/cfg"
)

// Thin reduces the filled region to a one-pixel-wide skeleton with the
// Zhang-Suen algorithm, preserving connectivity. The input grid is not
// modified.
func (g *Grid) Thin() *Grid {
	out := g.clone()
	var deletions []int
	for iteration := 0; iteration < cfg.MaxThinningIterations; iteration++ {
		changed := false
		for pass := 0; pass < 2; pass++ {
			deletions = deletions[:0]
			for y := 0; y < out.H; y++ {
				for x := 0; x < out.W; x++ {
					if out.At(x, y) && thinnable(out, x, y, pass == 1) {
						deletions = append(deletions, y*out.W+x)
					}
				}
			}
			for _, idx := range deletions {
				out.Pix[idx] = 0
			}
			if len(deletions) > 0 {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return out
}

// thinnable implements the Zhang-Suen deletion test for one sub-iteration.
// Neighbors p2..p9 run clockwise from north.
func thinnable(g *Grid, x, y int, second bool) bool {
	p := [8]bool{
		g.At(x, y-1),   // p2 N
		g.At(x+1, y-1), // p3 NE
		g.At(x+1, y),   // p4 E
		g.At(x+1, y+1), // p5 SE
		g.At(x, y+1),   // p6 S
		g.At(x-1, y+1), // p7 SW
		g.At(x-1, y),   // p8 W
		g.At(x-1, y-1), // p9 NW
	}

	set := 0
	for _, v := range p {
		if v {
			set++
		}
	}
	if set < 2 || set > 6 {
		return false
	}

	transitions := 0
	for i := 0; i < 8; i++ {
		if !p[i] && p[(i+1)%8] {
			transitions++
		}
	}
	if transitions != 1 {
		return false
	}

	n, e, s, w := p[0], p[2], p[4], p[6]
	if second {
		return (!n || !e || !w) && (!n || !s || !w)
	}
	return (!n || !e || !s) && (!e || !s || !w)
}
