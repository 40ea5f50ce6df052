package centerline

import (
	"plotpath/pkg/geometry"
	"plotpath/pkg/polygon"
	"plotpath/pkg/raster"
)

// extractSkeleton is the default strategy: rasterize, thin to a one-pixel
// skeleton, trace the pixel graph, then clean the traces up.
func extractSkeleton(poly polygon.Polygon, opts Options) []geometry.Polyline {
	grid, transform := raster.Rasterize(poly, opts.Resolution)
	if grid.Count() == 0 {
		return nil
	}

	thinned := grid.Thin()
	if thinned.Count() == 0 {
		// Zhang-Suen deletes very small blobs outright; the coarser
		// morphological skeleton still yields something to trace.
		thinned = grid.Skeletonize()
	}

	paths := thinned.Trace(transform)

	// Prefilter before merging; fragments under a third of the cutoff
	// don't survive the final filter even when merged.
	paths = filterShort(paths, 0.3*opts.MinLength)
	paths = mergeNearby(paths, opts.MergeTolerance, poly.Bounds())
	paths = filterShort(paths, opts.MinLength)
	paths = refine(paths, opts)
	return closeOrExtend(paths, poly, opts)
}
