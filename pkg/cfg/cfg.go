package cfg

// Tunable limits for the geometry pipeline. All distances are mm unless
// noted. These exist so pathological inputs hit a cap instead of spinning;
// the request-level timeout in pkg/plot is the backstop, not the norm.

// MinDensity is the floor for infill line spacing. Densities below this
// would generate unbounded numbers of scan lines.
var MinDensity = 0.1

// MaxScanLines caps the number of scan lines a single infill pass may emit.
// Out-of-range inputs produce an empty result, not an error.
var MaxScanLines = 10000

// MaxOffsetIterations bounds concentric ring generation.
var MaxOffsetIterations = 1000

// MinPieceArea is the area (mm²) below which offset fragments are discarded
// to prevent micro-iteration on slivers.
var MinPieceArea = 0.01

// ClosedPolylineTolerance is the endpoint gap below which a polyline is
// treated as a closed ring (drawn by rotation, never reversal).
var ClosedPolylineTolerance = 0.001

// MaxRasterDimension caps the rasterizer grid per axis. Larger requests are
// downscaled preserving aspect ratio.
var MaxRasterDimension = 4096

// MaxThinningIterations bounds skeleton thinning; a 4096px grid converges in
// far fewer passes, so hitting this indicates degenerate input.
var MaxThinningIterations = 10000

// MaxSmoothingPasses bounds sharp-angle smoothing.
var MaxSmoothingPasses = 3

// ExtendSearchLength is how far (mm) the endpoint-extension ray searches for
// an intersection. The committed extension is separately capped by the
// caller's MaxExtend option.
var ExtendSearchLength = 50.0

// MaxHalfWidth caps the binary search for a shape's collapse distance in the
// offset centerline strategy.
var MaxHalfWidth = 50.0
