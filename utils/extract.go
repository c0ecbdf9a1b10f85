package utils

import (
	"image"
	"log"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PaletteMethod selects how ExtractPalette derives colors from an
// image when no color table file is supplied.
type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ExtractPalette derives a k-color palette from the image itself.
// KMeans clusters a pixel subsample in RGB space; the default method
// keeps the strongest dominant-color candidates. Both drop
// near-duplicate results so the palette mapper gets distinct targets.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

// ExtractDominantPalette keeps the k strongest dominant-color
// candidates, skipping any candidate too close in Lab space to one
// already kept.
func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, max(24, k*4))
	if len(candidates) == 0 {
		return nil
	}
	slices.SortFunc(candidates, func(a, b dominantcolor.Color) int {
		if a.Weight > b.Weight {
			return -1
		}
		if a.Weight < b.Weight {
			return 1
		}
		return 0
	})

	const minSeparation = 0.02 // squared Lab distance
	out := make([]colorful.Color, 0, k)
	for _, cand := range candidates {
		col, _ := colorful.MakeColor(cand.RGBA)
		col = col.Clamped()
		dup := false
		for _, kept := range out {
			if labDistanceSq(col, kept) < minSeparation {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		out = append(out, col)
		if len(out) == k {
			break
		}
	}
	return out
}

// ExtractKMeansPalette partitions a subsample of the opaque pixels
// into k RGB clusters and returns the cluster centers, largest
// population first.
func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	const maxSamples = 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) < k {
		return nil
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil
	}
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{
			R: clamp01(c.Center[0]),
			G: clamp01(c.Center[1]),
			B: clamp01(c.Center[2]),
		})
	}
	return out
}
