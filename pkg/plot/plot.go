// Package plot is the service boundary: it accepts raw polygon coordinates,
// runs infill, centerline extraction and path ordering, and reports
// aggregate metadata. Every operation respects the request context with
// coarse cancellation: the computation runs on its own goroutine and is
// abandoned when the deadline fires.
package plot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"plotpath/pkg/centerline"
	"plotpath/pkg/geometry"
	"plotpath/pkg/infill"
	"plotpath/pkg/order"
	"plotpath/pkg/polygon"
)

// ErrTimeout reports that the request deadline elapsed before the
// computation finished. No partial results are returned.
var ErrTimeout = errors.New("request timed out")

// ErrInvalidGeometry is the client-error class: malformed polygons reject
// the whole request.
var ErrInvalidGeometry = polygon.ErrInvalidGeometry

// Service exposes the toolpath operations. The zero value is usable; set
// Log for debug logging.
type Service struct {
	Log *slog.Logger
}

func (s *Service) debug(msg string, args ...any) {
	if s.Log != nil {
		s.Log.Debug(msg, args...)
	}
}

// PolygonSpec is a polygon as the caller supplies it: raw rings, not yet
// validated or repaired.
type PolygonSpec struct {
	Outer []geometry.Point
	Holes [][]geometry.Point
}

type InfillRequest struct {
	Polygons      []PolygonSpec
	Pattern       infill.Pattern
	Density       float64
	Angle         float64
	OutlineOffset float64
	Optimize      bool
}

type InfillMetadata struct {
	Pattern             infill.Pattern
	TotalLength         float64
	NumSegments         int
	NumPolylines        int
	OptimizationApplied bool
	TravelLength        float64
	PenLifts            int
}

type InfillResult struct {
	Segments  []geometry.LineSegment
	Polylines []geometry.Polyline
	Metadata  InfillMetadata
}

// run executes f on its own goroutine. If the context finishes first the
// goroutine is abandoned; its iteration caps bound how long it lingers.
func run[T any](ctx context.Context, f func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := f()
		done <- outcome{value, err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	case out := <-done:
		return out.value, out.err
	}
}

func buildPolygons(specs []PolygonSpec) ([]polygon.Polygon, error) {
	polys := make([]polygon.Polygon, 0, len(specs))
	for i, spec := range specs {
		p, err := polygon.Build(spec.Outer, spec.Holes)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		polys = append(polys, p)
	}
	return polys, nil
}

// GenerateInfill fills every request polygon with the requested pattern and
// optionally reorders the result to minimize pen travel. A failure
// generating one polygon's fill skips that polygon; invalid geometry
// rejects the whole request.
func (s *Service) GenerateInfill(ctx context.Context, req InfillRequest) (*InfillResult, error) {
	return run(ctx, func() (*InfillResult, error) {
		if req.Density <= 0 {
			return nil, fmt.Errorf("%w: density must be positive, got %g", ErrInvalidGeometry, req.Density)
		}
		if req.OutlineOffset < 0 {
			return nil, fmt.Errorf("%w: outline offset must not be negative, got %g", ErrInvalidGeometry, req.OutlineOffset)
		}
		polys, err := buildPolygons(req.Polygons)
		if err != nil {
			return nil, err
		}

		opts := infill.Options{Density: req.Density, Angle: req.Angle, OutlineOffset: req.OutlineOffset}
		result := &InfillResult{}
		for i, poly := range polys {
			gen, err := infill.New(req.Pattern, poly, opts)
			if err != nil {
				return nil, err
			}
			segments, polylines, ok := generate(gen)
			if !ok {
				s.debug("infill generation failed, skipping polygon", "index", i, "pattern", req.Pattern)
				continue
			}
			result.Segments = append(result.Segments, segments...)
			result.Polylines = append(result.Polylines, polylines...)
		}

		var stats order.Stats
		if len(result.Polylines) > 0 {
			if req.Optimize {
				result.Polylines, stats = order.Polylines(result.Polylines, nil)
			} else {
				stats.DrawingLength = geometry.TotalPolylineLength(result.Polylines)
				stats.PenLifts = max(len(result.Polylines)-1, 0)
			}
			result.Segments = flatten(result.Polylines)
		} else {
			if req.Optimize {
				result.Segments, stats = order.Segments(result.Segments, nil)
			} else {
				stats.DrawingLength = geometry.TotalLength(result.Segments)
				stats.PenLifts = max(len(result.Segments)-1, 0)
			}
		}

		result.Metadata = InfillMetadata{
			Pattern:             req.Pattern,
			TotalLength:         stats.DrawingLength,
			NumSegments:         len(result.Segments),
			NumPolylines:        len(result.Polylines),
			OptimizationApplied: stats.Applied,
			TravelLength:        stats.TravelLength,
			PenLifts:            stats.PenLifts,
		}
		s.debug("generated infill",
			"pattern", req.Pattern,
			"polygons", len(polys),
			"segments", result.Metadata.NumSegments,
			"polylines", result.Metadata.NumPolylines,
			"length", result.Metadata.TotalLength)
		return result, nil
	})
}

// generate runs one polygon's generator, recovering a panic into a skipped
// polygon so one bad shape cannot abort the batch.
func generate(gen infill.Generator) (segments []geometry.LineSegment, polylines []geometry.Polyline, ok bool) {
	defer func() {
		if recover() != nil {
			segments, polylines, ok = nil, nil, false
		}
	}()
	if pg, isPolyline := gen.(infill.PolylineGenerator); isPolyline {
		return nil, pg.Polylines(), true
	}
	return gen.Segments(), nil, true
}

func flatten(lines []geometry.Polyline) []geometry.LineSegment {
	var out []geometry.LineSegment
	for _, line := range lines {
		out = append(out, line.Segments()...)
	}
	return out
}

// OptimizeSegments reorders segments for minimal pen travel. Degenerate
// segments are dropped before processing.
func (s *Service) OptimizeSegments(ctx context.Context, segments []geometry.LineSegment, start *geometry.Point) ([]geometry.LineSegment, order.Stats, error) {
	type result struct {
		segments []geometry.LineSegment
		stats    order.Stats
	}
	out, err := run(ctx, func() (result, error) {
		ordered, stats := order.Segments(segments, start)
		return result{ordered, stats}, nil
	})
	if err != nil {
		return nil, order.Stats{}, err
	}
	s.debug("optimized segments", "count", len(out.segments), "travel", out.stats.TravelLength)
	return out.segments, out.stats, nil
}

// OptimizePolylines reorders polylines; open lines may reverse and closed
// rings rotate their seam.
func (s *Service) OptimizePolylines(ctx context.Context, lines []geometry.Polyline, start *geometry.Point) ([]geometry.Polyline, order.Stats, error) {
	type result struct {
		lines []geometry.Polyline
		stats order.Stats
	}
	out, err := run(ctx, func() (result, error) {
		ordered, stats := order.Polylines(lines, start)
		return result{ordered, stats}, nil
	})
	if err != nil {
		return nil, order.Stats{}, err
	}
	s.debug("optimized polylines", "count", len(out.lines), "travel", out.stats.TravelLength)
	return out.lines, out.stats, nil
}

// ExtractCenterlines produces single-stroke centerlines per polygon.
// Individual polygon failures leave an empty slot; invalid geometry rejects
// the request.
func (s *Service) ExtractCenterlines(ctx context.Context, specs []PolygonSpec, opts centerline.Options) ([][]geometry.Polyline, centerline.Stats, error) {
	type result struct {
		lines [][]geometry.Polyline
		stats centerline.Stats
	}
	out, err := run(ctx, func() (result, error) {
		polys, err := buildPolygons(specs)
		if err != nil {
			return result{}, err
		}
		lines, stats := centerline.Extract(polys, opts)
		return result{lines, stats}, nil
	})
	if err != nil {
		return nil, centerline.Stats{}, err
	}
	s.debug("extracted centerlines",
		"polygons", out.stats.NumPolygons,
		"polylines", out.stats.NumPolylines,
		"length", out.stats.TotalLength,
		"elapsed", out.stats.Elapsed)
	return out.lines, out.stats, nil
}

// ListPatterns returns the infill pattern catalog. Pure metadata.
func (s *Service) ListPatterns() []infill.PatternInfo {
	return infill.Catalog()
}
