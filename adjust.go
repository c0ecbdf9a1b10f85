package repix

import "math"

// Posterize quantizes each color channel of a depth-32 raster to
// levels evenly spaced steps and forces alpha fully opaque. Levels
// below 2 are clamped to 2; 256 and above change nothing within 8-bit
// precision. Purely per-pixel, any order.
func Posterize(img *Raster, levels int) {
	if img.Empty() || img.Depth != 32 {
		return
	}
	steps := float64(max(levels, 2) - 1)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := unpackColor(img.Pixel(x, y))
			c.R = math.Round(c.R*steps) / steps
			c.G = math.Round(c.G*steps) / steps
			c.B = math.Round(c.B*steps) / steps
			img.SetPixel(x, y, packColor(c, 1.0))
		}
	}
}

// NormalizeColors merges near-duplicate colors. Scanning in raster
// order, the first pixel of each distinct 24-bit RGB value becomes a
// cluster representative; every pixel in the whole canvas within
// threshold of it is rewritten to the representative's exact value.
// First-seen representatives win ties. Threshold 0 or below disables
// the pass. The full-image inner scan is quadratic in the worst case,
// acceptable because sampling and posterizing have already left few
// distinct colors.
func NormalizeColors(img *Raster, threshold int) {
	if img.Empty() || img.Depth != 32 || threshold <= 0 {
		return
	}
	w, h := img.Width, img.Height
	seen := make(map[uint32]bool)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := img.Pixel(x, y)
			key := base & 0xFFFFFF
			if seen[key] {
				continue
			}
			seen[key] = true
			for jy := 0; jy < h; jy++ {
				for jx := 0; jx < w; jx++ {
					if jx == x && jy == y {
						continue
					}
					if colorDistance(base, img.Pixel(jx, jy)) < uint32(threshold) {
						img.SetPixel(jx, jy, base)
					}
				}
			}
		}
	}
}

// MapToPalette replaces every pixel with the nearest defined palette
// entry by RGB distance, lowest index winning ties. A pixel matching
// the table's transparency entry becomes the transparent sentinel. An
// empty table or a non-32-bit raster leaves the canvas untouched.
func MapToPalette(img *Raster, table *ColorTable) {
	if img.Empty() || img.Depth != 32 || table.Empty() {
		return
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			base := img.Pixel(x, y)
			matched := base
			best := uint32(256)
			for n := 0; n < table.Defined; n++ {
				if d := colorDistance(base, table.Colors[n]); d < best {
					best = d
					matched = table.Colors[n]
				}
			}
			if table.Transparency >= 0 && table.Transparency < table.Defined &&
				matched == table.Colors[table.Transparency] {
				matched = 0
			}
			img.SetPixel(x, y, matched)
		}
	}
}

// ApplyOutline writes opaque black into every transparent 4-neighbor
// of a visible pixel. Pixels already exactly opaque black are skipped,
// so black content never re-outlines. The scan mutates the buffer it
// reads; outline pixels written early can satisfy later tests, which
// keeps orthogonal edges exactly one pixel thick.
func ApplyOutline(img *Raster) {
	if img.Empty() || img.Depth != 32 {
		return
	}
	w, h := img.Width, img.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.Pixel(x, y)
			if c == 0 || c == opaqueBlack {
				continue
			}
			if x > 0 && img.Pixel(x-1, y) == 0 {
				img.SetPixel(x-1, y, opaqueBlack)
			}
			if x < w-1 && img.Pixel(x+1, y) == 0 {
				img.SetPixel(x+1, y, opaqueBlack)
			}
			if y > 0 && img.Pixel(x, y-1) == 0 {
				img.SetPixel(x, y-1, opaqueBlack)
			}
			if y < h-1 && img.Pixel(x, y+1) == 0 {
				img.SetPixel(x, y+1, opaqueBlack)
			}
		}
	}
}
