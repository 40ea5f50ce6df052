// Package centerline produces single-stroke polylines approximating the
// medial axis of a closed shape, for plotting thin features and text with
// one pen pass instead of an outline. Three strategies are available; all
// of them share the simplify/smooth post-processing pipeline.
package centerline

import (
	"time"

	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
)

// Method selects the extraction strategy.
type Method string

const (
	// MethodSkeleton rasterizes the shape and thins it to a pixel
	// skeleton. The default; handles any topology.
	MethodSkeleton Method = "skeleton"
	// MethodOffset collapses the shape onto a spine by inward offsetting.
	// Cheap and smooth, but only suited to simple elongated shapes.
	MethodOffset Method = "offset"
	// MethodVoronoi uses an external exact medial axis if one is plugged
	// in via MedialAxisFunc; otherwise it yields nothing.
	MethodVoronoi Method = "voronoi"
)

// Options control extraction. Zero values fall back to the defaults noted
// on each field.
type Options struct {
	Method            Method  // default skeleton
	Resolution        float64 // raster pixel size in mm, default 0.02
	MinLength         float64 // discard shorter centerlines, default 1.0
	SimplifyTolerance float64 // Douglas-Peucker tolerance, default 0.02
	MergeTolerance    float64 // endpoint gap to merge across, default 0.2
	LoopThreshold     float64 // max gap for loop closing, default 5.0
	ChaikinIterations int     // corner-cutting rounds, default 2
	MinAngle          float64 // degrees; smooth kinks sharper than this, default 120
	MaxExtend         float64 // max endpoint extension, default 3.0
	SpokeFilter       float64 // voronoi spoke artifact length, 0 disables
}

func (o Options) withDefaults() Options {
	if o.Method == "" {
		o.Method = MethodSkeleton
	}
	if o.Resolution <= 0 {
		o.Resolution = 0.02
	}
	if o.MinLength <= 0 {
		o.MinLength = 1.0
	}
	if o.SimplifyTolerance <= 0 {
		o.SimplifyTolerance = 0.02
	}
	if o.MergeTolerance <= 0 {
		o.MergeTolerance = 0.2
	}
	if o.LoopThreshold <= 0 {
		o.LoopThreshold = 5.0
	}
	if o.ChaikinIterations <= 0 {
		o.ChaikinIterations = 2
	}
	if o.MinAngle <= 0 {
		o.MinAngle = 120
	}
	if o.MaxExtend <= 0 {
		o.MaxExtend = 3.0
	}
	return o
}

// Stats summarizes one extraction batch.
type Stats struct {
	NumPolygons  int
	NumPolylines int
	TotalLength  float64
	Elapsed      time.Duration
	Resolution   float64
	MinLength    float64
}

// Extract runs the selected strategy over every polygon. The result always
// has one slice per input polygon, in order; a polygon that fails (panics
// or produces nothing) contributes an empty slice rather than aborting the
// batch.
func Extract(polys []polygon.Polygon, opts Options) ([][]geometry.Polyline, Stats) {
	opts = opts.withDefaults()
	began := time.Now()

	results := make([][]geometry.Polyline, len(polys))
	for i, poly := range polys {
		results[i] = extractOne(poly, opts)
	}

	stats := Stats{
		NumPolygons: len(polys),
		Elapsed:     time.Since(began),
		Resolution:  opts.Resolution,
		MinLength:   opts.MinLength,
	}
	for _, lines := range results {
		stats.NumPolylines += len(lines)
		stats.TotalLength += geometry.TotalPolylineLength(lines)
	}
	return results, stats
}

// extractOne isolates per-polygon failures: one bad shape must not take
// down the batch.
func extractOne(poly polygon.Polygon, opts Options) (lines []geometry.Polyline) {
	defer func() {
		if recover() != nil {
			lines = nil
		}
	}()
	if poly.Empty() {
		return nil
	}
	switch opts.Method {
	case MethodOffset:
		return extractOffset(poly, opts)
	case MethodVoronoi:
		return extractVoronoi(poly, opts)
	default:
		return extractSkeleton(poly, opts)
	}
}

// refine is the shared post-processing: simplify away raster staircasing
// and vertex noise, round corners with Chaikin, then relax any remaining
// sharp kinks.
func refine(paths []geometry.Polyline, opts Options) []geometry.Polyline {
	out := paths[:0]
	for _, path := range paths {
		path = path.Simplify(opts.SimplifyTolerance)
		if len(path) < 2 {
			continue
		}
		path = path.Chaikin(opts.ChaikinIterations)
		path = path.SmoothSharpAngles(opts.MinAngle)
		out = append(out, path)
	}
	return out
}

func filterShort(paths []geometry.Polyline, minLength float64) []geometry.Polyline {
	out := paths[:0]
	for _, path := range paths {
		if path.Length() >= minLength {
			out = append(out, path)
		}
	}
	return out
}
