package svgout

import (
	"strings"
	"testing"

	"plotpath/pkg/geometry"
)

func TestMarshalBasics(t *testing.T) {
	doc := New(20, 10)
	doc.AddStroke(geometry.Polyline{{X: 0, Y: 0}, {X: 20, Y: 0}})
	doc.AddStroke(geometry.Polyline{{X: 20, Y: 10}, {X: 0, Y: 10}})

	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	svg := string(out)

	for _, want := range []string{
		`width="20mm"`,
		`height="10mm"`,
		`viewBox="0 0 20 10"`,
		`id="stroke_0"`,
		`id="stroke_1"`,
		`id="travel_indicators"`,
		"stroke-dasharray",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMarshalFlipsY(t *testing.T) {
	doc := New(10, 10)
	// World y=10 is the top; it must land at SVG y=0.
	doc.AddStroke(geometry.Polyline{{X: 0, Y: 10}, {X: 10, Y: 10}})
	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `d="M 0,0 L 10,0"`) {
		t.Errorf("y axis not flipped: %s", out)
	}
}

func TestTravelConnectsStrokes(t *testing.T) {
	doc := New(30, 10)
	doc.AddStroke(geometry.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}})
	doc.AddStroke(geometry.Polyline{{X: 20, Y: 0}, {X: 30, Y: 0}})
	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// One travel hop from (10,0) to (20,0), flipped to SVG y=10.
	if !strings.Contains(string(out), "M 10,10 L 20,10") {
		t.Errorf("travel path missing: %s", out)
	}
}

func TestNoTravelLayerWhenContiguous(t *testing.T) {
	doc := New(10, 10)
	doc.AddStroke(geometry.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}})
	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(out), "travel_indicators") {
		t.Error("travel layer emitted for a single stroke starting at the origin")
	}
}

func TestShortStrokesDropped(t *testing.T) {
	doc := New(10, 10)
	doc.AddStroke(geometry.Polyline{{X: 1, Y: 1}})
	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(out), "stroke_0") {
		t.Error("single-point stroke emitted")
	}
}
