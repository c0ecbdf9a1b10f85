package repix

import (
	"fmt"
	"math"
)

// Restorer runs the restoration pipeline over one loaded raster and
// one palette. Source and Palette are set up front; Canvas holds the
// finished result after Run. A Restorer carries no state between runs.
type Restorer struct {
	Source  *Raster
	Canvas  *Raster
	Palette *ColorTable
}

// NewRestorer wraps a source raster and an optional palette. A nil or
// empty palette means no palette mapping is requested.
func NewRestorer(src *Raster, palette *ColorTable) *Restorer {
	return &Restorer{Source: src, Palette: palette}
}

// Run executes the fixed stage order: sample, posterize, normalize,
// palette-map, outline, scale. Later stages assume earlier ones have
// already reduced resolution and color noise, so the order is
// load-bearing. The finished canvas is returned and kept on the
// Restorer.
func (rs *Restorer) Run(opt Options) (*Raster, error) {
	if rs == nil || rs.Source.Empty() {
		return nil, ErrNoImage
	}

	block := rs.resolveBlockSize(opt)
	if opt.Verbose {
		fmt.Printf("   block size %.4f, sample point %d, margin %d\n",
			block, max(opt.SamplePoint, 1), max(opt.Margin, 0))
	}

	canvas, err := Sample(rs.Source, block, opt.SamplePoint, opt.Margin)
	if err != nil {
		return nil, err
	}
	if opt.Verbose {
		fmt.Printf("   sampled %dx%d -> %dx%d\n",
			rs.Source.Width, rs.Source.Height, canvas.Width, canvas.Height)
	}

	if opt.Levels > 0 && opt.Levels < 255 {
		levels := max(opt.Levels, 2)
		Posterize(canvas, levels)
		if opt.Verbose {
			fmt.Printf("   posterized to %d levels\n", levels)
		}
	}
	if opt.Threshold > 0 {
		NormalizeColors(canvas, opt.Threshold)
		if opt.Verbose {
			fmt.Printf("   normalized colors within distance %d\n", opt.Threshold)
		}
	}
	if !rs.Palette.Empty() {
		MapToPalette(canvas, rs.Palette)
		if opt.Verbose {
			fmt.Printf("   mapped to %d-color palette\n", rs.Palette.Defined)
		}
	}
	if opt.Outline {
		ApplyOutline(canvas)
		if opt.Verbose {
			fmt.Println("   outlined")
		}
	}
	if scale := max(opt.Scale, 1); scale > 1 {
		canvas = Scale(canvas, scale)
		if opt.Verbose {
			fmt.Printf("   scaled x%d -> %dx%d\n", scale, canvas.Width, canvas.Height)
		}
	}

	rs.Canvas = canvas
	return canvas, nil
}

// resolveBlockSize picks the authoritative block size: target width,
// then target height, then the explicit value, then estimation.
func (rs *Restorer) resolveBlockSize(opt Options) float64 {
	block := opt.BlockSize
	switch {
	case opt.TargetWidth > 0:
		block = float64(rs.Source.Width) / float64(opt.TargetWidth)
	case opt.TargetHeight > 0:
		block = float64(rs.Source.Height) / float64(opt.TargetHeight)
	case block == 0:
		block = EstimateBlockSize(rs.Source)
	}
	if opt.SnapGrid {
		block = SnapBlockSize(block, rs.Source.Width)
	}
	return max(block, 1)
}

// Sample reduces a depth-32 source to one color per inferred block.
// Cell (dx, dy) of the result holds the color read from the source
// neighborhood centered at ((dx-margin+0.5)*block, (dy-margin+0.5)*block);
// reads outside the source contribute transparent black. A source of
// any other depth is returned unchanged.
func Sample(src *Raster, block float64, samplePoint, margin int) (*Raster, error) {
	if src.Empty() {
		return nil, ErrNoImage
	}
	if src.Depth != 32 {
		return src, nil
	}
	block = max(block, 1)
	samplePoint = max(samplePoint, 1)
	margin = max(margin, 0)

	cw := int(float64(src.Width)/block) + 2*margin
	ch := int(float64(src.Height)/block) + 2*margin
	canvas := newRaster32(cw, ch)

	for dy := 0; dy < ch; dy++ {
		for dx := 0; dx < cw; dx++ {
			cx := int(math.Floor((float64(dx-margin) + 0.5) * block))
			cy := int(math.Floor((float64(dy-margin) + 0.5) * block))
			var c uint32
			if samplePoint == 1 {
				c = src.Pixel(cx, cy)
			} else {
				c = averageAt(src, cx, cy, samplePoint)
			}
			canvas.SetPixel(dx, dy, c)
		}
	}
	return canvas, nil
}

// averageAt sums an n-by-n neighborhood centered on (cx, cy) per
// channel, alpha included, and divides with integer truncation.
// Out-of-bounds reads stay zero in the sum.
func averageAt(src *Raster, cx, cy, n int) uint32 {
	var a, r, g, b uint64
	x0 := cx - n/2
	y0 := cy - n/2
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			c := src.Pixel(x0+i, y0+j)
			a += uint64(alphaOf(c))
			r += uint64(redOf(c))
			g += uint64(greenOf(c))
			b += uint64(blueOf(c))
		}
	}
	count := uint64(n * n)
	return packARGB(
		uint32(a/count),
		uint32(r/count),
		uint32(g/count),
		uint32(b/count),
	)
}
