package repix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/setanarut/repix"
)

// blockCheckerboard paints a checkerboard whose squares span block
// source pixels, so every block boundary is a strong luminance edge.
func blockCheckerboard(t *testing.T, size, block int) *repix.Raster {
	t.Helper()
	r, err := repix.NewRaster(size, size, 32)
	require.NoError(t, err)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := uint32(0xFF202020)
			if (x/block+y/block)%2 == 0 {
				c = 0xFFE0E0E0
			}
			r.SetPixel(x, y, c)
		}
	}
	return r
}

func TestEstimateBlockSizeGrid(t *testing.T) {
	require.Equal(t, 4.0, repix.EstimateBlockSize(blockCheckerboard(t, 48, 4)))
	require.Equal(t, 8.0, repix.EstimateBlockSize(blockCheckerboard(t, 64, 8)))
}

func TestEstimateBlockSizeUniform(t *testing.T) {
	require.Equal(t, 1.0, repix.EstimateBlockSize(newCanvas(t, 32, 32, magenta)))
}

func TestEstimateBlockSizeDegenerate(t *testing.T) {
	require.Equal(t, 1.0, repix.EstimateBlockSize(nil))
	require.Equal(t, 1.0, repix.EstimateBlockSize(newCanvas(t, 3, 3, magenta)))

	r, err := repix.NewRaster(32, 32, 8)
	require.NoError(t, err)
	require.Equal(t, 1.0, repix.EstimateBlockSize(r))
}
