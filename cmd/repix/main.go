// Command repix restores pixel art from an upscaled, smoothed or
// compression-damaged copy and writes the result as PNG.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/setanarut/repix"
	"github.com/setanarut/repix/utils"
)

const buildNumber = 100200

func main() {
	var (
		output    = flag.String("o", "", "output file (default <input>@<scale>x.png)")
		block     = flag.Float64("b", 1, "block size in source pixels (0 = detect from the image)")
		width     = flag.Int("w", 0, "target output width in art pixels (overrides -b)")
		height    = flag.Int("t", 0, "target output height in art pixels (overrides -b)")
		margin    = flag.Int("m", 0, "empty border cells around the reduced canvas")
		area      = flag.Int("a", 1, "averaging neighborhood size per sample point")
		scale     = flag.Int("s", 1, "integer scale factor for the output image")
		levels    = flag.Int("p", 255, "posterize levels per channel")
		threshold = flag.Int("n", 0, "normalize-colors merge distance (0 = off)")
		outline   = flag.Bool("outline", false, "outline non-transparent regions in black")
		snap      = flag.Bool("snap", false, "snap block size to the pixel grid")
		actFile   = flag.String("act", "", "Adobe color table file to map colors to")
		generate  = flag.Int("g", 0, "extract an N-color palette from the image instead of -act")
		method    = flag.String("method", "dominantcolor", "palette extraction method: dominantcolor or kmeans")
		verbose   = flag.Bool("v", false, "verbose progress output")
		version   = flag.Bool("version", false, "print version information")
	)
	flag.Usage = usage
	flag.Parse()

	if *version {
		printVersion()
		return
	}
	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	input := flag.Arg(0)

	src, err := utils.ReadRaster(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "repix:", err)
		os.Exit(1)
	}

	table, err := paletteFor(src, *actFile, *generate, *method)
	if err != nil {
		fmt.Fprintln(os.Stderr, "repix:", err)
		os.Exit(1)
	}

	opt := repix.DefaultOptions()
	opt.BlockSize = *block
	opt.TargetWidth = *width
	opt.TargetHeight = *height
	opt.Margin = *margin
	opt.SamplePoint = *area
	opt.Scale = *scale
	opt.Levels = *levels
	opt.Threshold = *threshold
	opt.Outline = *outline
	opt.SnapGrid = *snap
	opt.Verbose = *verbose

	restorer := repix.NewRestorer(src, table)
	result, err := restorer.Run(opt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "repix:", err)
		os.Exit(1)
	}

	out := *output
	if out == "" || out == input {
		out = fmt.Sprintf("%s@%dx.png", strings.TrimSuffix(input, filepath.Ext(input)), max(*scale, 1))
	}
	if err := utils.SaveRaster(result, out); err != nil {
		fmt.Fprintln(os.Stderr, "repix:", err)
		os.Exit(1)
	}
	fmt.Printf("Restored %s -> %s (%dx%d)\n", input, out, result.Width, result.Height)
}

// paletteFor loads the ACT file when given, extracts a palette from
// the image when -g is set, and otherwise returns an empty table,
// which the pipeline treats as "no mapping requested".
func paletteFor(src *repix.Raster, actFile string, generate int, method string) (*repix.ColorTable, error) {
	if actFile != "" {
		return utils.LoadColorTable(actFile)
	}
	if generate > 0 {
		m := utils.PaletteMethodDominantColor
		if method == "kmeans" {
			m = utils.PaletteMethodKMeans
		}
		colors := utils.ExtractPalette(utils.ToImage(src, nil), generate, m)
		utils.SortPaletteByBrightness(colors)
		return utils.ToColorTable(colors, -1), nil
	}
	return repix.NewColorTable(), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: repix [options] <input-image>\n\nOptions:\n")
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Printf("repix version %d.%d.%d (build %s)\n",
		buildNumber/100000, buildNumber/10000%10, buildNumber/1000%10, buildCode(buildNumber))
}

// buildCode renders a build number as its major version followed by
// the remainder in base 24. The digit set skips letters that resemble
// each other or numerals.
func buildCode(num int) string {
	major := num / 100000
	return fmt.Sprintf("%d%s", major, decimalToBase24(num-major*100000))
}

func decimalToBase24(num int) string {
	const digits = "0123456789CDFHJKMNRUVWXY"
	if num == 0 {
		return "C"
	}
	var out []byte
	for num > 0 {
		out = append([]byte{digits[num%24]}, out...)
		num /= 24
	}
	return string(out)
}
