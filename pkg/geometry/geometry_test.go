package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var approx = cmp.Comparer(func(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.IsNaN(x) == math.IsNaN(y)
	}
	return math.Abs(x-y) < 1e-9
})

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		seg  LineSegment
		p    Point
		want float64
	}{
		{LineSegment{Point{0, 0}, Point{10, 0}}, Point{5, 3}, 3},
		{LineSegment{Point{0, 0}, Point{10, 0}}, Point{-4, 0}, 4},
		{LineSegment{Point{0, 0}, Point{10, 0}}, Point{13, 4}, 5},
		{LineSegment{Point{0, 0}, Point{0, 10}}, Point{2, 5}, 2},
	}
	for i, test := range tests {
		got := test.seg.Distance(test.p)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("test %d: Distance(%v) = %g, want %g", i, test.p, got, test.want)
		}
	}
}

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name   string
		s, u   LineSegment
		want   Point
		wantOK bool
	}{
		{
			name:   "crossing at center",
			s:      LineSegment{Point{0, 0}, Point{10, 10}},
			u:      LineSegment{Point{0, 10}, Point{10, 0}},
			want:   Point{5, 5},
			wantOK: true,
		},
		{
			name:   "parallel",
			s:      LineSegment{Point{0, 0}, Point{10, 0}},
			u:      LineSegment{Point{0, 1}, Point{10, 1}},
			wantOK: false,
		},
		{
			name:   "lines cross but segments do not",
			s:      LineSegment{Point{0, 0}, Point{1, 1}},
			u:      LineSegment{Point{0, 10}, Point{10, 0}},
			wantOK: false,
		},
		{
			name:   "touching at endpoint",
			s:      LineSegment{Point{0, 0}, Point{5, 5}},
			u:      LineSegment{Point{5, 5}, Point{10, 0}},
			want:   Point{5, 5},
			wantOK: true,
		},
	}
	for _, test := range tests {
		got, ok := test.s.Intersect(test.u)
		if ok != test.wantOK {
			t.Errorf("%s: ok = %v, want %v", test.name, ok, test.wantOK)
			continue
		}
		if ok {
			if diff := cmp.Diff(test.want, got, approx); diff != "" {
				t.Errorf("%s: wrong intersection: %s", test.name, diff)
			}
		}
	}
}

func TestPolylineLengthAndBounds(t *testing.T) {
	line := Polyline{{0, 0}, {3, 4}, {3, 10}}
	if got := line.Length(); math.Abs(got-11) > 1e-9 {
		t.Errorf("Length() = %g, want 11", got)
	}
	want := Rectangle{Min: Point{0, 0}, Max: Point{3, 10}}
	if diff := cmp.Diff(want, line.Bounds(), approx); diff != "" {
		t.Errorf("Bounds() incorrect: %s", diff)
	}
}

func TestPolylineIsClosed(t *testing.T) {
	closed := Polyline{{0, 0}, {10, 0}, {10, 10}, {0, 0.0005}}
	if !closed.IsClosed() {
		t.Error("expected polyline with 0.0005 gap to be closed")
	}
	open := Polyline{{0, 0}, {10, 0}, {10, 10}}
	if open.IsClosed() {
		t.Error("expected open polyline to be open")
	}
}

func TestPolylineReverse(t *testing.T) {
	line := Polyline{{0, 0}, {1, 1}, {2, 0}}
	want := Polyline{{2, 0}, {1, 1}, {0, 0}}
	if diff := cmp.Diff(want, line.Reverse(), approx); diff != "" {
		t.Errorf("Reverse() incorrect: %s", diff)
	}
	// reversal must not disturb the original
	if diff := cmp.Diff(Polyline{{0, 0}, {1, 1}, {2, 0}}, line, approx); diff != "" {
		t.Errorf("Reverse() modified its receiver: %s", diff)
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name    string
		points  Polyline
		epsilon float64
		want    Polyline
	}{
		{
			name:    "peak preserved",
			points:  Polyline{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 2}, {5, 1}, {6, 0}},
			epsilon: 0.001,
			want:    Polyline{{0, 0}, {3, 3}, {6, 0}},
		},
		{
			name:    "collinear run collapses",
			points:  Polyline{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
			epsilon: 0.001,
			want:    Polyline{{0, 0}, {4, 0}},
		},
		{
			name:    "large epsilon keeps endpoints",
			points:  Polyline{{0, 0}, {1, 1}, {2, 0}},
			epsilon: 5,
			want:    Polyline{{0, 0}, {2, 0}},
		},
	}
	for _, test := range tests {
		got := test.points.Simplify(test.epsilon)
		if diff := cmp.Diff(test.want, got, approx); diff != "" {
			t.Errorf("%s: Simplify(%g) incorrect: %s", test.name, test.epsilon, diff)
		}
	}
}

func TestTotalLength(t *testing.T) {
	segments := []LineSegment{
		{Point{0, 0}, Point{1, 0}},
		{Point{0, 0}, Point{0, 2}},
		{Point{0, 0}, Point{3, 4}},
	}
	if got := TotalLength(segments); math.Abs(got-8) > 1e-9 {
		t.Errorf("TotalLength = %g, want 8", got)
	}
}
