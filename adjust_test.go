package repix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/setanarut/repix"
)

func variedCanvas(t *testing.T, w, h int) *repix.Raster {
	t.Helper()
	r, err := repix.NewRaster(w, h, 32)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := uint32(0xFF)<<24 |
				uint32(x*37%256)<<16 |
				uint32(y*59%256)<<8 |
				uint32((x+y)*11%256)
			r.SetPixel(x, y, c)
		}
	}
	return r
}

func TestPosterizeIdempotent(t *testing.T) {
	canvas := variedCanvas(t, 16, 16)
	repix.Posterize(canvas, 4)
	once := append([]byte(nil), canvas.Data...)
	repix.Posterize(canvas, 4)
	require.Equal(t, once, canvas.Data)
}

func TestPosterizeForcesOpaque(t *testing.T) {
	canvas := newCanvas(t, 1, 1, 0x03FF00FF)
	repix.Posterize(canvas, 16)
	require.Equal(t, uint32(0xFF), canvas.Pixel(0, 0)>>24)
}

func TestPosterizeTwoLevels(t *testing.T) {
	canvas, err := repix.NewRaster(2, 1, 32)
	require.NoError(t, err)
	canvas.SetPixel(0, 0, 0xFFC86450) // 200, 100, 80
	canvas.SetPixel(1, 0, 0xFF201090)

	repix.Posterize(canvas, 2)
	require.Equal(t, uint32(0xFFFF0000), canvas.Pixel(0, 0))
	require.Equal(t, uint32(0xFF0000FF), canvas.Pixel(1, 0))
}

func TestPosterizeWrongDepthNoop(t *testing.T) {
	r, err := repix.NewRaster(2, 2, 8)
	require.NoError(t, err)
	r.Data[0] = 200
	before := append([]byte(nil), r.Data...)
	repix.Posterize(r, 2)
	require.Equal(t, before, r.Data)
}

func TestNormalizeThresholdZeroIsNoop(t *testing.T) {
	canvas := variedCanvas(t, 8, 8)
	before := append([]byte(nil), canvas.Data...)
	repix.NormalizeColors(canvas, 0)
	require.Equal(t, before, canvas.Data)
	repix.NormalizeColors(canvas, -3)
	require.Equal(t, before, canvas.Data)
}

func TestNormalizeMergesNearColors(t *testing.T) {
	canvas, err := repix.NewRaster(2, 1, 32)
	require.NoError(t, err)
	canvas.SetPixel(0, 0, 0xFF0A0A0A)
	canvas.SetPixel(1, 0, 0xFF0C0C0C) // distance ~3.46, truncated to 3

	repix.NormalizeColors(canvas, 4)
	require.Equal(t, uint32(0xFF0A0A0A), canvas.Pixel(0, 0))
	require.Equal(t, uint32(0xFF0A0A0A), canvas.Pixel(1, 0))
}

func TestNormalizeFirstSeenWins(t *testing.T) {
	canvas, err := repix.NewRaster(3, 1, 32)
	require.NoError(t, err)
	canvas.SetPixel(0, 0, 0xFF101010)
	canvas.SetPixel(1, 0, 0xFF121212)
	canvas.SetPixel(2, 0, 0xFF141414)

	repix.NormalizeColors(canvas, 10)
	for x := 0; x < 3; x++ {
		require.Equal(t, uint32(0xFF101010), canvas.Pixel(x, 0))
	}
}

func TestNormalizeKeepsDistantColors(t *testing.T) {
	canvas, err := repix.NewRaster(2, 1, 32)
	require.NoError(t, err)
	canvas.SetPixel(0, 0, 0xFF000000)
	canvas.SetPixel(1, 0, 0xFFFFFFFF)

	repix.NormalizeColors(canvas, 16)
	require.Equal(t, uint32(0xFF000000), canvas.Pixel(0, 0))
	require.Equal(t, uint32(0xFFFFFFFF), canvas.Pixel(1, 0))
}

func paletteRGB(t *testing.T, transparency int) *repix.ColorTable {
	t.Helper()
	table := repix.NewColorTable()
	table.Colors[0] = 0xFFFF0000
	table.Colors[1] = 0xFF00FF00
	table.Colors[2] = 0xFF0000FF
	table.Defined = 3
	table.Transparency = transparency
	return table
}

func TestMapToPaletteIdentity(t *testing.T) {
	canvas, err := repix.NewRaster(3, 1, 32)
	require.NoError(t, err)
	canvas.SetPixel(0, 0, 0xFFFF0000)
	canvas.SetPixel(1, 0, 0xFF00FF00)
	canvas.SetPixel(2, 0, 0xFF0000FF)

	repix.MapToPalette(canvas, paletteRGB(t, -1))
	require.Equal(t, uint32(0xFFFF0000), canvas.Pixel(0, 0))
	require.Equal(t, uint32(0xFF00FF00), canvas.Pixel(1, 0))
	require.Equal(t, uint32(0xFF0000FF), canvas.Pixel(2, 0))
}

func TestMapToPaletteTransparencySentinel(t *testing.T) {
	canvas, err := repix.NewRaster(2, 1, 32)
	require.NoError(t, err)
	canvas.SetPixel(0, 0, 0xFF00FF00)
	canvas.SetPixel(1, 0, 0xFFFF0000)

	repix.MapToPalette(canvas, paletteRGB(t, 1))
	require.Equal(t, uint32(0), canvas.Pixel(0, 0))
	require.Equal(t, uint32(0xFFFF0000), canvas.Pixel(1, 0))
}

func TestMapToPaletteTieKeepsLowestIndex(t *testing.T) {
	table := repix.NewColorTable()
	table.Colors[0] = 0xFF00005A // blue 90
	table.Colors[1] = 0xFF00006E // blue 110
	table.Defined = 2

	canvas := newCanvas(t, 1, 1, 0xFF000064) // blue 100, 10 from both
	repix.MapToPalette(canvas, table)
	require.Equal(t, uint32(0xFF00005A), canvas.Pixel(0, 0))
}

func TestMapToPaletteEmptyTableNoop(t *testing.T) {
	canvas := variedCanvas(t, 4, 4)
	before := append([]byte(nil), canvas.Data...)
	repix.MapToPalette(canvas, repix.NewColorTable())
	require.Equal(t, before, canvas.Data)
	repix.MapToPalette(canvas, nil)
	require.Equal(t, before, canvas.Data)
}

func TestOutlineEmptyCanvas(t *testing.T) {
	canvas, err := repix.NewRaster(4, 4, 32)
	require.NoError(t, err)
	before := append([]byte(nil), canvas.Data...)
	repix.ApplyOutline(canvas)
	require.Equal(t, before, canvas.Data)
}

func TestOutlineSinglePixel(t *testing.T) {
	canvas, err := repix.NewRaster(3, 3, 32)
	require.NoError(t, err)
	canvas.SetPixel(1, 1, magenta)

	repix.ApplyOutline(canvas)
	require.Equal(t, magenta, canvas.Pixel(1, 1))
	require.Equal(t, uint32(0xFF000000), canvas.Pixel(0, 1))
	require.Equal(t, uint32(0xFF000000), canvas.Pixel(2, 1))
	require.Equal(t, uint32(0xFF000000), canvas.Pixel(1, 0))
	require.Equal(t, uint32(0xFF000000), canvas.Pixel(1, 2))
	// Diagonal-only adjacency is never outlined.
	require.Equal(t, uint32(0), canvas.Pixel(0, 0))
	require.Equal(t, uint32(0), canvas.Pixel(2, 0))
	require.Equal(t, uint32(0), canvas.Pixel(0, 2))
	require.Equal(t, uint32(0), canvas.Pixel(2, 2))
}

func TestOutlineAtBorder(t *testing.T) {
	canvas, err := repix.NewRaster(2, 2, 32)
	require.NoError(t, err)
	canvas.SetPixel(0, 0, magenta)

	repix.ApplyOutline(canvas)
	require.Equal(t, magenta, canvas.Pixel(0, 0))
	require.Equal(t, uint32(0xFF000000), canvas.Pixel(1, 0))
	require.Equal(t, uint32(0xFF000000), canvas.Pixel(0, 1))
	require.Equal(t, uint32(0), canvas.Pixel(1, 1))
}

func TestOutlineSkipsExactBlack(t *testing.T) {
	canvas, err := repix.NewRaster(3, 3, 32)
	require.NoError(t, err)
	canvas.SetPixel(1, 1, 0xFF000000)

	before := append([]byte(nil), canvas.Data...)
	repix.ApplyOutline(canvas)
	require.Equal(t, before, canvas.Data)
}
