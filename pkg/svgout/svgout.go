// Package svgout writes preview SVG documents: pen strokes as solid paths
// plus a dashed layer showing the pen-up travel between them. Output only;
// the tool does not read SVG back.
package svgout

import (
	"encoding/xml"
	"fmt"
	"strings"

	"plotpath/pkg/geometry"
)

const (
	strokeStyle = "fill:none;stroke:#000000;stroke-width:0.3;stroke-linecap:round;stroke-linejoin:round"
	travelStyle = "fill:none;stroke:#c900ce;stroke-width:0.5;stroke-linecap:butt;stroke-linejoin:miter;stroke-opacity:1;stroke-miterlimit:4;stroke-dasharray:0.5,0.5;stroke-dashoffset:0"
)

// minTravelIndicator suppresses dashes for hops too small to see.
const minTravelIndicator = 0.1

type svgNode struct {
	XMLName  xml.Name
	Width    string     `xml:"width,attr,omitempty"`
	Height   string     `xml:"height,attr,omitempty"`
	ViewBox  string     `xml:"viewBox,attr,omitempty"`
	Version  string     `xml:"version,attr,omitempty"`
	ID       string     `xml:"id,attr,omitempty"`
	Style    string     `xml:"style,attr,omitempty"`
	D        string     `xml:"d,attr,omitempty"`
	Children []*svgNode `xml:",any"`
}

// Document accumulates strokes in world mm (y up) and marshals them into
// an SVG of the given size. Strokes are drawn in the order added; the
// travel layer connects each stroke's end to the next stroke's start.
type Document struct {
	Width   float64
	Height  float64
	strokes []geometry.Polyline
}

func New(width, height float64) *Document {
	return &Document{Width: width, Height: height}
}

func (d *Document) AddStroke(line geometry.Polyline) {
	if len(line) >= 2 {
		d.strokes = append(d.strokes, line)
	}
}

func (d *Document) AddSegments(segments []geometry.LineSegment) {
	for _, seg := range segments {
		d.AddStroke(geometry.Polyline{seg.A, seg.B})
	}
}

// Marshal renders the document. The world y axis points up; SVG's points
// down, so every coordinate is flipped here and pixel conventions never
// leak to callers.
func (d *Document) Marshal() ([]byte, error) {
	root := &svgNode{
		XMLName: xml.Name{Space: "http://www.w3.org/2000/svg", Local: "svg"},
		Width:   fmt.Sprintf("%smm", trimFloat(d.Width)),
		Height:  fmt.Sprintf("%smm", trimFloat(d.Height)),
		ViewBox: fmt.Sprintf("0 0 %s %s", trimFloat(d.Width), trimFloat(d.Height)),
		Version: "1.1",
	}

	travel := &svgNode{
		XMLName: xml.Name{Space: "http://www.w3.org/2000/svg", Local: "path"},
		ID:      "travel_indicators",
		Style:   travelStyle,
	}

	// Pen starts parked at the world origin, bottom-left of the page.
	last := geometry.Point{X: 0, Y: 0}
	var travelPath strings.Builder
	for i, stroke := range d.strokes {
		if last.Distance(stroke[0]) > minTravelIndicator {
			fmt.Fprintf(&travelPath, "M %s,%s L %s,%s ",
				trimFloat(last.X), trimFloat(d.Height-last.Y),
				trimFloat(stroke[0].X), trimFloat(d.Height-stroke[0].Y))
		}
		last = stroke[len(stroke)-1]

		root.Children = append(root.Children, &svgNode{
			XMLName: xml.Name{Space: "http://www.w3.org/2000/svg", Local: "path"},
			ID:      fmt.Sprintf("stroke_%d", i),
			Style:   strokeStyle,
			D:       d.pathData(stroke),
		})
	}
	travel.D = strings.TrimSpace(travelPath.String())
	if travel.D != "" {
		root.Children = append(root.Children, travel)
	}

	out, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func (d *Document) pathData(stroke geometry.Polyline) string {
	var b strings.Builder
	for i, p := range stroke {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s %s,%s ", cmd, trimFloat(p.X), trimFloat(d.Height-p.Y))
	}
	return strings.TrimSpace(b.String())
}

// trimFloat formats with 3 decimals and strips trailing zeros, keeping the
// output readable and small.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
