package infill

// PatternInfo describes one pattern for UI listings. RecommendedDensity is
// a sensible min/max spacing in mm for a typical pen.
type PatternInfo struct {
	ID                 Pattern
	Name               string
	Description        string
	RecommendedDensity [2]float64
}

// Catalog returns the static pattern catalog. Pure metadata, no geometry.
func Catalog() []PatternInfo {
	return []PatternInfo{
		{
			ID:                 PatternLines,
			Name:               "Parallel lines",
			Description:        "Straight parallel lines at a fixed angle, clipped to the shape.",
			RecommendedDensity: [2]float64{1, 10},
		},
		{
			ID:                 PatternGrid,
			Name:               "Grid",
			Description:        "Two perpendicular line passes forming a square grid.",
			RecommendedDensity: [2]float64{2, 15},
		},
		{
			ID:                 PatternConcentric,
			Name:               "Concentric",
			Description:        "Closed rings following the shape boundary, shrinking inward.",
			RecommendedDensity: [2]float64{1, 5},
		},
		{
			ID:                 PatternCrosshatch,
			Name:               "Crosshatch",
			Description:        "Two diagonal line passes at +45 and -45 degrees from the base angle.",
			RecommendedDensity: [2]float64{2, 15},
		},
		{
			ID:                 PatternZigzag,
			Name:               "Zigzag",
			Description:        "Parallel lines stitched into continuous back-and-forth strokes.",
			RecommendedDensity: [2]float64{1, 10},
		},
	}
}
