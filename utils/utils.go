// Package utils holds the file-format collaborators of the
// restoration pipeline: raster decode/encode, Adobe color table
// loading and palette extraction from the image itself.
package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"slices"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/repix"
)

// ReadRaster decodes a PNG, BMP, GIF or JPEG file into a depth-32
// raster. A decode failure is reported before any pipeline stage runs.
func ReadRaster(path string) (*repix.Raster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts any image.Image to a depth-32 raster of packed
// ARGB words. Fully transparent pixels collapse to the zero sentinel.
func FromImage(img image.Image) *repix.Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out, err := repix.NewRaster(w, h, 32)
	if err != nil {
		return out
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			out.SetPixel(x, y, uint32(c.A)<<24|uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
		}
	}
	return out
}

// ToImage converts a raster back to an image.NRGBA, expanding lower
// depths through table first (nil table uses a gray ramp).
func ToImage(r *repix.Raster, table *repix.ColorTable) *image.NRGBA {
	if r != nil && r.Depth != 32 {
		r = r.Expand(table)
	}
	if r == nil {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	out := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := r.Pixel(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(c >> 16),
				G: uint8(c >> 8),
				B: uint8(c),
				A: uint8(c >> 24),
			})
		}
	}
	return out
}

// SaveRaster writes a raster to a PNG file. A failure leaves the
// raster untouched in memory.
func SaveRaster(r *repix.Raster, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	defer f.Close()
	return png.Encode(f, ToImage(r, nil))
}

// SortPaletteByBrightness orders colors from darkest to brightest so
// the first entry becomes the background tone.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// ToColorTable packs up to 256 extracted colors into a read-only
// table. Transparency is the index of the entry that should map to
// the transparent sentinel, or -1.
func ToColorTable(palette []colorful.Color, transparency int) *repix.ColorTable {
	table := repix.NewColorTable()
	n := min(len(palette), 256)
	for i := 0; i < n; i++ {
		c := palette[i].Clamped()
		table.Colors[i] = 0xFF000000 |
			uint32(max(0, min(255, c.R*255)))<<16 |
			uint32(max(0, min(255, c.G*255)))<<8 |
			uint32(max(0, min(255, c.B*255)))
	}
	table.Defined = n
	if transparency >= 0 && transparency < n {
		table.Transparency = transparency
	}
	return table
}

// SavePalette renders the palette as a strip of tiles for inspection.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, c := range palette {
		r := uint8(max(0, min(255, c.R*255)))
		g := uint8(max(0, min(255, c.G*255)))
		b := uint8(max(0, min(255, c.B*255)))
		x0 := i * tileSize
		for y := 0; y < h; y++ {
			for x := x0; x < x0+tileSize; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func labDistanceSq(a, b colorful.Color) float64 {
	l1, a1, b1 := a.Lab()
	l2, a2, b2 := b.Lab()
	d0 := l1 - l2
	d1 := a1 - a2
	d2 := b1 - b2
	return d0*d0 + d1*d1 + d2*d2
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
