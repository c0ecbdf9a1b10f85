package repix

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel order of a packed pixel word, alpha most significant. The
// all-zero word is the reserved transparent sentinel.
const opaqueBlack = 0xFF000000

func packARGB(a, r, g, b uint32) uint32 {
	return a<<24 | r<<16 | g<<8 | b
}

func alphaOf(c uint32) uint32 { return c >> 24 & 0xFF }
func redOf(c uint32) uint32   { return c >> 16 & 0xFF }
func greenOf(c uint32) uint32 { return c >> 8 & 0xFF }
func blueOf(c uint32) uint32  { return c & 0xFF }

// colorDistance is the Euclidean distance between two packed colors on
// unscaled 0-255 channels, truncated to an integer. Alpha is ignored.
func colorDistance(c1, c2 uint32) uint32 {
	dr := int(redOf(c1)) - int(redOf(c2))
	dg := int(greenOf(c1)) - int(greenOf(c2))
	db := int(blueOf(c1)) - int(blueOf(c2))
	return uint32(math.Sqrt(float64(dr*dr + dg*dg + db*db)))
}

// unpackColor converts a packed word to normalized 0-1 channels.
func unpackColor(c uint32) colorful.Color {
	return colorful.Color{
		R: float64(redOf(c)) / 255.0,
		G: float64(greenOf(c)) / 255.0,
		B: float64(blueOf(c)) / 255.0,
	}
}

// packColor converts normalized 0-1 channels back to a packed word.
func packColor(c colorful.Color, alpha float64) uint32 {
	return packARGB(
		uint32(max(0, min(255, alpha*255))),
		uint32(max(0, min(255, c.R*255))),
		uint32(max(0, min(255, c.G*255))),
		uint32(max(0, min(255, c.B*255))),
	)
}
