// Package infill generates pen strokes that fill the interior of a polygon.
// Five patterns are available; all of them produce segments, and the
// concentric and zigzag patterns additionally produce continuous polylines
// that a plotter can draw without lifting the pen.
package infill

import (
	"fmt"

	"plotpath/pkg/cfg"
	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// Pattern selects an infill strategy.
type Pattern string

const (
	PatternLines      Pattern = "lines"
	PatternGrid       Pattern = "grid"
	PatternConcentric Pattern = "concentric"
	PatternCrosshatch Pattern = "crosshatch"
	PatternZigzag     Pattern = "zigzag"
)

// Options control pattern generation. Density is the line spacing in mm
// (floored at cfg.MinDensity), Angle is in degrees and taken modulo 360,
// OutlineOffset shrinks the polygon before any pattern runs so strokes stay
// clear of the outline.
type Options struct {
	Density       float64
	Angle         float64
	OutlineOffset float64
}

// Generator produces the fill for one polygon. Degenerate or vanished
// polygons yield an empty result, never an error.
type Generator interface {
	Segments() []geometry.LineSegment
}

// PolylineGenerator is implemented by patterns whose natural output is
// continuous polylines (concentric, zigzag). Segments are then just the
// flattened polylines.
type PolylineGenerator interface {
	Generator
	Polylines() []geometry.Polyline
}

// New builds the generator for the requested pattern. The outline offset is
// applied here; if it splits the polygon, every piece is filled.
func New(pattern Pattern, poly polygon.Polygon, opts Options) (Generator, error) {
	if opts.Density < cfg.MinDensity {
		opts.Density = cfg.MinDensity
	}

	var pieces []polygon.Polygon
	if !poly.Empty() {
		if opts.OutlineOffset > 0 {
			pieces = poly.OffsetInward(opts.OutlineOffset)
		} else {
			pieces = []polygon.Polygon{poly}
		}
	}

	switch pattern {
	case PatternLines:
		return &lineFill{pieces: pieces, opts: opts, angles: []float64{opts.Angle}}, nil
	case PatternGrid:
		return &lineFill{pieces: pieces, opts: opts, angles: []float64{opts.Angle, opts.Angle + 90}}, nil
	case PatternCrosshatch:
		return &lineFill{pieces: pieces, opts: opts, angles: []float64{opts.Angle + 45, opts.Angle - 45}}, nil
	case PatternConcentric:
		return &concentricFill{pieces: pieces, opts: opts}, nil
	case PatternZigzag:
		return &zigzagFill{pieces: pieces, opts: opts}, nil
	}
	return nil, fmt.Errorf("unknown infill pattern %q", pattern)
}
