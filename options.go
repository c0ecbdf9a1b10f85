package repix

// Options configures one restoration run. Every numeric field defaults
// to an identity value; out-of-range values are clamped rather than
// rejected, they are soft preferences, not contracts.
type Options struct {
	// Source pixels per art pixel, fractional, >= 1.
	// 0 asks the pipeline to estimate it from the image itself.
	BlockSize float64
	// Desired output width in art pixels. When set it overrides
	// BlockSize by recomputing it from the source width.
	TargetWidth int
	// Desired output height in art pixels. Used when TargetWidth is
	// unset; overrides BlockSize from the source height.
	TargetHeight int
	// Side length of the averaging neighborhood read around each
	// sample point. 1 takes the single nearest pixel. Reads that fall
	// outside the source count as transparent, which biases border
	// cells toward transparency instead of smearing edge artifacts in.
	SamplePoint int
	// Extra empty cells added around all sides of the reduced canvas.
	Margin int
	// Integer nearest-neighbor magnification of the finished canvas.
	Scale int
	// Posterize levels per channel. 2 is the useful minimum; 255 and
	// above leave the colors visibly unchanged.
	Levels int
	// Merge distance for near-duplicate colors. 0 disables the merge.
	Threshold int
	// Draw a one-pixel opaque black border around non-transparent
	// regions.
	Outline bool
	// Recompute BlockSize so the sampled column count divides the
	// source width without a seam.
	SnapGrid bool
	// Print per-stage progress.
	Verbose bool
}

// DefaultOptions returns the identity configuration: every stage a
// no-op except sampling at block size 1.
func DefaultOptions() Options {
	return Options{
		BlockSize:   1,
		SamplePoint: 1,
		Scale:       1,
		Levels:      255,
	}
}

// OptionsForTarget derives a configuration whose block size shrinks
// src to the given output width or height. Width wins when both are
// set; zero values fall back to DefaultOptions.
func OptionsForTarget(src *Raster, width, height int) Options {
	opt := DefaultOptions()
	if src.Empty() {
		return opt
	}
	opt.TargetWidth = width
	opt.TargetHeight = height
	return opt
}
