package plot

import (
	"context"
	"errors"
	"math"
	"testing"

	"plotpath/pkg/centerline"
	"plotpath/pkg/geometry"
	"plotpath/pkg/infill"
)

func squareSpec(x0, y0, side float64) PolygonSpec {
	return PolygonSpec{Outer: []geometry.Point{
		{X: x0, Y: y0},
		{X: x0 + side, Y: y0},
		{X: x0 + side, Y: y0 + side},
		{X: x0, Y: y0 + side},
	}}
}

func TestGenerateInfillLines(t *testing.T) {
	var s Service
	result, err := s.GenerateInfill(context.Background(), InfillRequest{
		Polygons: []PolygonSpec{squareSpec(0, 0, 10)},
		Pattern:  infill.PatternLines,
		Density:  2,
	})
	if err != nil {
		t.Fatalf("GenerateInfill: %v", err)
	}
	if len(result.Segments) != 6 {
		t.Fatalf("got %d segments, want 6", len(result.Segments))
	}
	m := result.Metadata
	if m.NumSegments != 6 || m.NumPolylines != 0 {
		t.Errorf("metadata counts = %+v", m)
	}
	if math.Abs(m.TotalLength-60) > 0.1 {
		t.Errorf("TotalLength = %g, want ~60", m.TotalLength)
	}
	if m.OptimizationApplied {
		t.Error("OptimizationApplied without Optimize")
	}
	if m.PenLifts != 5 {
		t.Errorf("PenLifts = %d, want 5", m.PenLifts)
	}
}

func TestGenerateInfillOptimized(t *testing.T) {
	var s Service
	result, err := s.GenerateInfill(context.Background(), InfillRequest{
		Polygons: []PolygonSpec{squareSpec(0, 0, 10)},
		Pattern:  infill.PatternLines,
		Density:  2,
		Optimize: true,
	})
	if err != nil {
		t.Fatalf("GenerateInfill: %v", err)
	}
	m := result.Metadata
	if !m.OptimizationApplied {
		t.Error("optimization did not run")
	}
	// Boustrophedon order over 6 scan lines 2mm apart.
	if m.TravelLength > 10.5 {
		t.Errorf("TravelLength = %g after optimization", m.TravelLength)
	}
	if math.Abs(m.TotalLength-60) > 0.1 {
		t.Errorf("TotalLength = %g, want ~60 (drawing length is order invariant)", m.TotalLength)
	}
}

func TestGenerateInfillZigzagPolylines(t *testing.T) {
	var s Service
	result, err := s.GenerateInfill(context.Background(), InfillRequest{
		Polygons: []PolygonSpec{squareSpec(0, 0, 10)},
		Pattern:  infill.PatternZigzag,
		Density:  2,
	})
	if err != nil {
		t.Fatalf("GenerateInfill: %v", err)
	}
	if result.Metadata.NumPolylines != 1 {
		t.Fatalf("got %d polylines, want 1", result.Metadata.NumPolylines)
	}
	if len(result.Segments) == 0 {
		t.Error("polyline result should also carry flattened segments")
	}
}

func TestGenerateInfillMultiplePolygons(t *testing.T) {
	var s Service
	result, err := s.GenerateInfill(context.Background(), InfillRequest{
		Polygons: []PolygonSpec{squareSpec(0, 0, 10), squareSpec(20, 0, 10)},
		Pattern:  infill.PatternLines,
		Density:  2,
	})
	if err != nil {
		t.Fatalf("GenerateInfill: %v", err)
	}
	if len(result.Segments) != 12 {
		t.Errorf("got %d segments, want 12", len(result.Segments))
	}
}

func TestGenerateInfillRejectsInvalidGeometry(t *testing.T) {
	var s Service
	_, err := s.GenerateInfill(context.Background(), InfillRequest{
		Polygons: []PolygonSpec{{Outer: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}}},
		Pattern:  infill.PatternLines,
		Density:  2,
	})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("err = %v, want ErrInvalidGeometry", err)
	}
}

func TestGenerateInfillRejectsBadParameters(t *testing.T) {
	var s Service
	_, err := s.GenerateInfill(context.Background(), InfillRequest{
		Polygons: []PolygonSpec{squareSpec(0, 0, 10)},
		Pattern:  infill.PatternLines,
		Density:  0,
	})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("zero density: err = %v, want ErrInvalidGeometry", err)
	}

	_, err = s.GenerateInfill(context.Background(), InfillRequest{
		Polygons: []PolygonSpec{squareSpec(0, 0, 10)},
		Pattern:  infill.Pattern("spiral"),
		Density:  2,
	})
	if err == nil {
		t.Error("unknown pattern accepted")
	}
}

func TestRequestTimeout(t *testing.T) {
	var s Service
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.GenerateInfill(ctx, InfillRequest{
		Polygons: []PolygonSpec{squareSpec(0, 0, 10)},
		Pattern:  infill.PatternLines,
		Density:  2,
	})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestOptimizeSegments(t *testing.T) {
	var s Service
	start := geometry.Point{X: 0, Y: 0}
	ordered, stats, err := s.OptimizeSegments(context.Background(), []geometry.LineSegment{
		{A: geometry.Point{X: 4, Y: 0}, B: geometry.Point{X: 6, Y: 0}},
		{A: geometry.Point{X: 0, Y: 0}, B: geometry.Point{X: 2, Y: 0}},
		{A: geometry.Point{X: 2, Y: 0}, B: geometry.Point{X: 4, Y: 0}},
	}, &start)
	if err != nil {
		t.Fatalf("OptimizeSegments: %v", err)
	}
	if stats.TravelLength != 0 {
		t.Errorf("travel = %g, want 0", stats.TravelLength)
	}
	if len(ordered) != 3 {
		t.Errorf("got %d segments", len(ordered))
	}
}

func TestOptimizePolylines(t *testing.T) {
	var s Service
	start := geometry.Point{X: 0, Y: 0}
	ordered, stats, err := s.OptimizePolylines(context.Background(), []geometry.Polyline{
		{{X: 10, Y: 0}, {X: 5, Y: 0}},
		{{X: 12, Y: 0}, {X: 20, Y: 0}},
	}, &start)
	if err != nil {
		t.Fatalf("OptimizePolylines: %v", err)
	}
	if len(ordered) != 2 {
		t.Fatalf("got %d polylines", len(ordered))
	}
	if ordered[0][0].X != 5 {
		t.Errorf("first polyline not entered at nearest end: %v", ordered[0])
	}
	if !stats.Applied {
		t.Error("Applied = false")
	}
}

func TestExtractCenterlines(t *testing.T) {
	var s Service
	specs := []PolygonSpec{{Outer: []geometry.Point{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 1}, {X: 0, Y: 1},
	}}}
	lines, stats, err := s.ExtractCenterlines(context.Background(), specs, centerline.Options{})
	if err != nil {
		t.Fatalf("ExtractCenterlines: %v", err)
	}
	if len(lines) != 1 || len(lines[0]) != 1 {
		t.Fatalf("got %v, want one centerline for one polygon", lines)
	}
	if stats.NumPolylines != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExtractCenterlinesRejectsInvalidGeometry(t *testing.T) {
	var s Service
	_, _, err := s.ExtractCenterlines(context.Background(), []PolygonSpec{
		{Outer: []geometry.Point{{X: 0, Y: 0}, {X: math.NaN(), Y: 1}, {X: 1, Y: 1}}},
	}, centerline.Options{})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("err = %v, want ErrInvalidGeometry", err)
	}
}

func TestListPatterns(t *testing.T) {
	var s Service
	if got := len(s.ListPatterns()); got != 5 {
		t.Errorf("got %d patterns, want 5", got)
	}
}
