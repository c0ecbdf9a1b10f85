package repix

// Scale magnifies a depth-32 raster by an integer factor with
// nearest-neighbor replication: every source pixel becomes a
// factor-by-factor block of the same color. Factor is clamped to at
// least 1; factor 1 is a plain copy. Rasters of any other depth come
// back unchanged.
func Scale(img *Raster, factor int) *Raster {
	if img == nil || img.Depth != 32 {
		return img
	}
	factor = max(factor, 1)
	out := newRaster32(img.Width*factor, img.Height*factor)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Pixel(x, y)
			for j := 0; j < factor; j++ {
				for i := 0; i < factor; i++ {
					out.SetPixel(x*factor+i, y*factor+j, c)
				}
			}
		}
	}
	return out
}
