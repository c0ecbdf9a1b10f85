// Package repix reconstructs pixel-perfect artwork from a degraded
// raster: an image originally drawn on a small pixel grid, then
// enlarged with a lossy smoothing resampler. It infers the original
// block grid, resamples one representative color per block and
// re-quantizes the palette so the output again looks hand-placed.
package repix

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrNoImage reports an absent or empty source raster.
	ErrNoImage = errors.New("repix: no image data")
	// ErrDepth reports an unsupported per-pixel bit depth.
	ErrDepth = errors.New("repix: unsupported bit depth")
)

// Raster is a rectangular pixel buffer with an explicit per-pixel bit
// depth. Depths 1, 2 and 4 are bit/nibble packed MSB-first with rows
// padded to whole bytes; depth 8 holds one index or gray value per
// byte; depth 24 holds R,G,B byte triplets; depth 32 holds packed ARGB
// words. The restoration stages operate on depth 32 only.
type Raster struct {
	Width  int
	Height int
	Depth  int // bits per pixel: 1, 2, 4, 8, 24 or 32
	Data   []byte
}

// NewRaster allocates a zeroed raster. Zero dimensions are allowed and
// produce an empty raster; negative dimensions and depths outside the
// supported set are rejected.
func NewRaster(w, h, depth int) (*Raster, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("repix: invalid raster size %dx%d", w, h)
	}
	switch depth {
	case 1, 2, 4, 8, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrDepth, depth)
	}
	r := &Raster{Width: w, Height: h, Depth: depth}
	r.Data = make([]byte, r.RowBytes()*h)
	return r, nil
}

func newRaster32(w, h int) *Raster {
	w = max(w, 0)
	h = max(h, 0)
	r, _ := NewRaster(w, h, 32)
	return r
}

// RowBytes returns the byte length of one packed pixel row.
func (r *Raster) RowBytes() int {
	return (r.Width*r.Depth + 7) / 8
}

// Empty reports whether the raster holds no pixel data.
func (r *Raster) Empty() bool {
	return r == nil || r.Width <= 0 || r.Height <= 0 || len(r.Data) == 0
}

// Pixel returns the packed value at (x, y): an ARGB word for depth 32,
// an opaque ARGB word for depth 24 and the raw index or gray value for
// lower depths. Out-of-bounds reads return 0.
func (r *Raster) Pixel(x, y int) uint32 {
	if r == nil || x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return 0
	}
	switch r.Depth {
	case 32:
		off := y*r.RowBytes() + x*4
		return binary.LittleEndian.Uint32(r.Data[off:])
	case 24:
		off := y*r.RowBytes() + x*3
		return packARGB(255, uint32(r.Data[off]), uint32(r.Data[off+1]), uint32(r.Data[off+2]))
	case 8:
		return uint32(r.Data[y*r.RowBytes()+x])
	default:
		off := y*r.RowBytes() + x*r.Depth/8
		shift := 8 - r.Depth - x*r.Depth%8
		mask := byte(1<<r.Depth - 1)
		return uint32(r.Data[off] >> shift & mask)
	}
}

// SetPixel stores a packed value at (x, y) using the same layout as
// Pixel. Out-of-bounds writes are dropped.
func (r *Raster) SetPixel(x, y int, v uint32) {
	if r == nil || x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return
	}
	switch r.Depth {
	case 32:
		off := y*r.RowBytes() + x*4
		binary.LittleEndian.PutUint32(r.Data[off:], v)
	case 24:
		off := y*r.RowBytes() + x*3
		r.Data[off] = byte(v >> 16)
		r.Data[off+1] = byte(v >> 8)
		r.Data[off+2] = byte(v)
	case 8:
		r.Data[y*r.RowBytes()+x] = byte(v)
	default:
		off := y*r.RowBytes() + x*r.Depth/8
		shift := 8 - r.Depth - x*r.Depth%8
		mask := byte(1<<r.Depth-1) << shift
		r.Data[off] = r.Data[off]&^mask | byte(v)<<shift&mask
	}
}

// Clone returns an independent copy of the raster.
func (r *Raster) Clone() *Raster {
	if r == nil {
		return nil
	}
	out := &Raster{Width: r.Width, Height: r.Height, Depth: r.Depth}
	out.Data = make([]byte, len(r.Data))
	copy(out.Data, r.Data)
	return out
}

// Expand returns a depth-32 copy of the raster. Indexed and gray
// values of lower depths are mapped through table when it has entries,
// otherwise spread over a linear gray ramp. A depth-32 input is
// cloned unchanged.
func (r *Raster) Expand(table *ColorTable) *Raster {
	if r == nil {
		return nil
	}
	if r.Depth == 32 {
		return r.Clone()
	}
	out := newRaster32(r.Width, r.Height)
	maxVal := uint32(1)<<r.Depth - 1
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := r.Pixel(x, y)
			switch {
			case r.Depth == 24:
				out.SetPixel(x, y, v)
			case !table.Empty():
				out.SetPixel(x, y, table.Color(int(v)))
			default:
				g := v * 255 / maxVal
				out.SetPixel(x, y, packARGB(255, g, g, g))
			}
		}
	}
	return out
}
