package polygon

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"plotpath/pkg/geometry"
)

var approx = cmp.Comparer(func(x, y float64) bool {
	return math.Abs(x-y) < 0.005 // clipper works on a 1µm grid
})

func square(x0, y0, side float64) []geometry.Point {
	return []geometry.Point{
		{X: x0, Y: y0},
		{X: x0 + side, Y: y0},
		{X: x0 + side, Y: y0 + side},
		{X: x0, Y: y0 + side},
	}
}

// canon rotates a closed ring so its lexicographically smallest point comes
// first; clipper output rings start at an arbitrary vertex.
func canon(ring geometry.Polyline) geometry.Polyline {
	if len(ring) < 2 {
		return ring
	}
	open := ring[:len(ring)-1]
	min := 0
	for i, p := range open {
		if p.X < open[min].X || (p.X == open[min].X && p.Y < open[min].Y) {
			min = i
		}
	}
	out := make(geometry.Polyline, 0, len(ring))
	out = append(out, open[min:]...)
	out = append(out, open[:min]...)
	return append(out, out[0])
}

func TestBuildClosesRing(t *testing.T) {
	p, err := Build(square(0, 0, 10), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Empty() {
		t.Fatal("expected non-empty polygon")
	}
	if p.Outer[0] != p.Outer[len(p.Outer)-1] {
		t.Error("outer ring is not stored closed")
	}
	if got := p.Area(); math.Abs(got-100) > 0.01 {
		t.Errorf("Area = %g, want 100", got)
	}
	want := canon(geometry.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}})
	if diff := cmp.Diff(want, canon(p.Outer), approx); diff != "" {
		t.Errorf("outer ring incorrect: %s", diff)
	}
}

func TestBuildWithHole(t *testing.T) {
	p, err := Build(square(0, 0, 10), [][]geometry.Point{square(4, 4, 2)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Holes) != 1 {
		t.Fatalf("got %d holes, want 1", len(p.Holes))
	}
	if got := p.Area(); math.Abs(got-96) > 0.01 {
		t.Errorf("Area = %g, want 96", got)
	}
}

func TestBuildRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		outer []geometry.Point
	}{
		{"two points", []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		{"duplicate points", []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}},
		{"NaN coordinate", []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: math.NaN()}}},
		{"infinite coordinate", []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: math.Inf(1), Y: 1}}},
	}
	for _, test := range tests {
		_, err := Build(test.outer, nil)
		if !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%s: err = %v, want ErrInvalidGeometry", test.name, err)
		}
	}
}

func TestBuildRepairsBowtie(t *testing.T) {
	// Self-intersecting "bowtie": repair splits it into two triangles and
	// the larger one is kept.
	bowtie := []geometry.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 10},
		{X: 10, Y: 0},
		{X: 0, Y: 10},
	}
	p, err := Build(bowtie, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Empty() {
		t.Fatal("expected repaired polygon")
	}
	// The two triangles have equal area 25; either is acceptable, but only one.
	if got := p.Area(); math.Abs(got-25) > 0.1 {
		t.Errorf("Area = %g, want 25 (one triangle)", got)
	}
}

func TestBuildZeroAreaIsEmptyNotError(t *testing.T) {
	collinear := []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	p, err := Build(collinear, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !p.Empty() {
		t.Errorf("expected empty polygon for zero-area input, got area %g", p.Area())
	}
}

func TestOffsetInwardZeroIsNoOp(t *testing.T) {
	p, _ := Build(square(0, 0, 10), nil)
	got := p.OffsetInward(0)
	if len(got) != 1 {
		t.Fatalf("got %d pieces, want 1", len(got))
	}
	if diff := cmp.Diff(p, got[0], approx); diff != "" {
		t.Errorf("OffsetInward(0) changed the polygon: %s", diff)
	}
}

func TestOffsetInwardShrinks(t *testing.T) {
	p, _ := Build(square(0, 0, 10), nil)
	got := p.OffsetInward(2)
	if len(got) != 1 {
		t.Fatalf("got %d pieces, want 1", len(got))
	}
	if area := got[0].Area(); math.Abs(area-36) > 0.1 {
		t.Errorf("offset square area = %g, want 36", area)
	}
	b := got[0].Bounds()
	want := geometry.Rectangle{Min: geometry.Point{X: 2, Y: 2}, Max: geometry.Point{X: 8, Y: 8}}
	if diff := cmp.Diff(want, b, approx); diff != "" {
		t.Errorf("offset bounds incorrect: %s", diff)
	}
}

func TestOffsetInwardVanishes(t *testing.T) {
	p, _ := Build(square(0, 0, 10), nil)
	if got := p.OffsetInward(6); len(got) != 0 {
		t.Errorf("offset beyond half-width returned %d pieces, want none", len(got))
	}
}

func TestOffsetInwardSplits(t *testing.T) {
	// Dumbbell: two 10x10 squares joined by a 2mm tall neck. Offsetting by
	// 2 eats the neck and leaves two pieces.
	dumbbell := []geometry.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4}, {X: 20, Y: 4},
		{X: 20, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}, {X: 20, Y: 10},
		{X: 20, Y: 6}, {X: 10, Y: 6}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	p, err := Build(dumbbell, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pieces := p.OffsetInward(2)
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(pieces))
	}
	for i, piece := range pieces {
		if area := piece.Area(); math.Abs(area-36) > 0.5 {
			t.Errorf("piece %d area = %g, want 36", i, area)
		}
	}
}

func TestOffsetInwardKeepsHole(t *testing.T) {
	p, _ := Build(square(0, 0, 20), [][]geometry.Point{square(8, 8, 4)})
	pieces := p.OffsetInward(1)
	if len(pieces) != 1 {
		t.Fatalf("got %d pieces, want 1", len(pieces))
	}
	if len(pieces[0].Holes) != 1 {
		t.Fatalf("hole was lost during offset")
	}
	// Outer shrinks to 18x18, hole grows to 6x6.
	if area := pieces[0].Area(); math.Abs(area-(324-36)) > 0.5 {
		t.Errorf("area = %g, want %g", area, 324.0-36.0)
	}
}

func TestClipSegmentThroughHole(t *testing.T) {
	p, _ := Build(square(0, 0, 10), [][]geometry.Point{square(4, 4, 2)})
	segments := p.ClipSegment(geometry.Point{X: -5, Y: 5}, geometry.Point{X: 15, Y: 5})
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	want := []geometry.LineSegment{
		{A: geometry.Point{X: 0, Y: 5}, B: geometry.Point{X: 4, Y: 5}},
		{A: geometry.Point{X: 6, Y: 5}, B: geometry.Point{X: 10, Y: 5}},
	}
	if diff := cmp.Diff(want, segments, approx); diff != "" {
		t.Errorf("clipped segments incorrect: %s", diff)
	}
}

func TestClipSegmentOutside(t *testing.T) {
	p, _ := Build(square(0, 0, 10), nil)
	if segments := p.ClipSegment(geometry.Point{X: -5, Y: 20}, geometry.Point{X: 15, Y: 20}); len(segments) != 0 {
		t.Errorf("got %d segments for a miss, want 0", len(segments))
	}
}

func TestClipSegmentFollowsQueryDirection(t *testing.T) {
	p, _ := Build(square(0, 0, 10), nil)
	segments := p.ClipSegment(geometry.Point{X: 15, Y: 5}, geometry.Point{X: -5, Y: 5})
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].A.X < segments[0].B.X {
		t.Errorf("segment not oriented along query direction: %+v", segments[0])
	}
}
