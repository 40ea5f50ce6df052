package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"plotpath/pkg/centerline"
	"plotpath/pkg/geometry"
	"plotpath/pkg/infill"
	"plotpath/pkg/plot"
	"plotpath/pkg/svgout"
)

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonPolygon struct {
	Outer []jsonPoint   `json:"outer"`
	Holes [][]jsonPoint `json:"holes"`
}

func main() {
	pattern := flag.String("pattern", "lines", "infill pattern: lines, grid, concentric, crosshatch, zigzag")
	density := flag.Float64("density", 2, "line spacing in mm")
	angle := flag.Float64("angle", 0, "infill angle in degrees")
	offset := flag.Float64("offset", 0, "outline offset in mm")
	optimize := flag.Bool("optimize", false, "reorder strokes to minimize pen travel")
	centerlineMethod := flag.String("centerline", "", "extract centerlines instead of infill: skeleton, offset or voronoi")
	timeout := flag.Duration("timeout", 2*time.Minute, "request timeout")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] polygons.json\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("file read error: %s", err)
	}

	var input []jsonPolygon
	if err := json.Unmarshal(data, &input); err != nil {
		log.Fatalf("json parse error: %s", err)
	}
	specs := make([]plot.PolygonSpec, len(input))
	for i, poly := range input {
		specs[i].Outer = points(poly.Outer)
		for _, hole := range poly.Holes {
			specs[i].Holes = append(specs[i].Holes, points(hole))
		}
	}

	var service plot.Service
	if *verbose {
		service.Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var strokes []geometry.Polyline
	if *centerlineMethod != "" {
		lines, stats, err := service.ExtractCenterlines(ctx, specs, centerline.Options{
			Method: centerline.Method(*centerlineMethod),
		})
		if err != nil {
			log.Fatalf("centerline extraction failed: %s", err)
		}
		for _, polyLines := range lines {
			strokes = append(strokes, polyLines...)
		}
		if *optimize {
			ordered, _, err := service.OptimizePolylines(ctx, strokes, nil)
			if err != nil {
				log.Fatalf("optimization failed: %s", err)
			}
			strokes = ordered
		}
		fmt.Fprintf(os.Stderr, "extracted %d centerlines, %.1fmm in %s\n",
			stats.NumPolylines, stats.TotalLength, stats.Elapsed)
	} else {
		result, err := service.GenerateInfill(ctx, plot.InfillRequest{
			Polygons:      specs,
			Pattern:       infill.Pattern(*pattern),
			Density:       *density,
			Angle:         *angle,
			OutlineOffset: *offset,
			Optimize:      *optimize,
		})
		if err != nil {
			log.Fatalf("infill generation failed: %s", err)
		}
		if len(result.Polylines) > 0 {
			strokes = result.Polylines
		} else {
			for _, seg := range result.Segments {
				strokes = append(strokes, geometry.Polyline{seg.A, seg.B})
			}
		}
		fmt.Fprintf(os.Stderr, "generated %d segments, %.1fmm drawing, %.1fmm travel\n",
			result.Metadata.NumSegments, result.Metadata.TotalLength, result.Metadata.TravelLength)
	}

	width, height := 0.0, 0.0
	for _, spec := range specs {
		for _, p := range spec.Outer {
			width = max(width, p.X)
			height = max(height, p.Y)
		}
	}

	doc := svgout.New(width, height)
	for _, stroke := range strokes {
		doc.AddStroke(stroke)
	}
	out, err := doc.Marshal()
	if err != nil {
		log.Fatalf("marshal error: %s", err)
	}
	fmt.Println(string(out))
}

func points(in []jsonPoint) []geometry.Point {
	out := make([]geometry.Point, len(in))
	for i, p := range in {
		out[i] = geometry.Point{X: p.X, Y: p.Y}
	}
	return out
}
