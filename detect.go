package repix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SnapBlockSize recomputes a block-size guess so the number of sampled
// columns divides the source width cleanly, keeping block boundaries
// aligned with pixel boundaries. The 0.01 shave compensates for
// floating-point rounding that would otherwise drop or duplicate the
// final column.
func SnapBlockSize(guess float64, width int) float64 {
	guess = max(guess, 1)
	if width < 1 {
		return guess
	}
	cols := math.Floor(float64(width) / math.Floor(guess))
	if cols < 1 {
		cols = 1
	}
	bs := float64(width) / cols
	if bs-math.Floor(bs) > 0.01 {
		bs -= 0.01
	}
	return max(bs, 1)
}

// EstimateBlockSize guesses the art grid period of a degraded source
// from the periodicity of its luminance edges. Block boundaries of an
// upscaled pixel grid leave evenly spaced ridges of high column and
// row contrast; the period whose multiples line up with those ridges
// wins. Returns 1 when no clear periodicity exists.
func EstimateBlockSize(img *Raster) float64 {
	if img.Empty() || img.Depth != 32 || img.Width < 4 || img.Height < 4 {
		return 1
	}
	pc := dominantPeriod(edgeSignal(img, false))
	pr := dominantPeriod(edgeSignal(img, true))
	switch {
	case pc > 1 && pr > 1:
		return (float64(pc) + float64(pr)) / 2
	case pc > 1:
		return float64(pc)
	case pr > 1:
		return float64(pr)
	}
	return 1
}

// edgeSignal sums absolute luminance steps across each column boundary
// (or row boundary when rows is true). Entry i holds the contrast
// between source line i and line i+1.
func edgeSignal(img *Raster, rows bool) []float64 {
	w, h := img.Width, img.Height
	if rows {
		w, h = h, w
	}
	edge := make([]float64, w-1)
	for i := 0; i < w-1; i++ {
		var sum float64
		for j := 0; j < h; j++ {
			var c1, c2 uint32
			if rows {
				c1 = img.Pixel(j, i)
				c2 = img.Pixel(j, i+1)
			} else {
				c1 = img.Pixel(i, j)
				c2 = img.Pixel(i+1, j)
			}
			sum += math.Abs(luminance(c1) - luminance(c2))
		}
		edge[i] = sum
	}
	return edge
}

func luminance(c uint32) float64 {
	return 0.2126*float64(redOf(c)) + 0.7152*float64(greenOf(c)) + 0.0722*float64(blueOf(c))
}

// dominantPeriod scores each candidate period by the mean edge
// strength at its multiples relative to the overall mean. Smaller
// periods win near-ties, so a grid of period p beats its harmonics at
// 2p and 3p.
func dominantPeriod(edge []float64) int {
	n := len(edge)
	if n < 3 || floats.Sum(edge) == 0 {
		return 1
	}
	mean := stat.Mean(edge, nil)
	if mean <= 0 {
		return 1
	}

	bestP := 1
	bestScore := 0.0
	limit := min(n/2, 64)
	for p := 2; p <= limit; p++ {
		var sum float64
		var k int
		for i := p - 1; i < n; i += p {
			sum += edge[i]
			k++
		}
		if k == 0 {
			continue
		}
		score := sum / float64(k) / mean
		if score > bestScore*1.02 {
			bestScore = score
			bestP = p
		}
	}
	if bestScore < 1.5 {
		return 1
	}
	return bestP
}
