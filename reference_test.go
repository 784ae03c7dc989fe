package spike_test

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/spike"
	"seehuhn.de/go/spike/raster"
	"seehuhn.de/go/spike/testcases"
)

func TestAgainstReference(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				// load reference image
				refPath := filepath.Join("testdata", "reference", name+".png")
				ref, err := loadGray(refPath)
				if errors.Is(err, fs.ErrNotExist) {
					t.Skip("no reference image, run testcases/genpdf first")
				} else if err != nil {
					t.Fatalf("loading reference: %v", err)
				}

				g, err := spike.New(tc.Config)
				if err != nil {
					t.Fatal(err)
				}
				w, h := tc.Config.Width, tc.Config.Height
				actual := renderMask(g, tc, w, h)

				if len(ref) != len(actual) {
					t.Fatalf("reference has %d pixels, want %d", len(ref), len(actual))
				}
				if err := compareImages(name, ref, actual, w, h); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

// renderMask draws the spikes and the outline of a test case in white on
// black, the way the reference images are made.
func renderMask(g *spike.Generator, tc testcases.TestCase, w, h int) []byte {
	r := raster.NewRasteriser(rect.Rect{URx: float64(w), URy: float64(h)})
	mask := make([]float32, w*h)
	emit := func(y, xMin int, coverage []float32) {
		row := mask[y*w+xMin:]
		for i, c := range coverage {
			row[i] = c + row[i]*(1-c)
		}
	}

	for s := range g.Spikes(tc.Source()) {
		r.FillNonZero(s.Path(), emit)
	}
	if o := g.Outline(); o != nil {
		r.FillNonZero(o, emit)
	}

	out := make([]byte, w*h)
	for i, v := range mask {
		out[i] = uint8(min(v, 1)*255 + 0.5)
	}
	return out
}

func loadGray(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := make([]byte, w*h)

	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray, nil
}

func compareImages(name string, expected, actual []byte, w, h int) error {
	// Ghostscript uses 4 bits of coverage, so edge pixels differ by up to
	// 1/16 of the range.
	const tolerance = 16
	const maxDiffPercent = 5

	total := w * h
	diffCount := 0
	hasDiff := false

	for i := range total {
		diff := int(expected[i]) - int(actual[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > 0 {
			hasDiff = true
			if diff > tolerance {
				diffCount++
			}
		}
	}

	maxAllowed := total * maxDiffPercent / 100
	if diffCount > maxAllowed || hasDiff {
		writeDiffImage(name, expected, actual, w, h)
	}
	if diffCount > maxAllowed {
		return fmt.Errorf("%d pixels differ by >%d (max allowed: %d)",
			diffCount, tolerance, maxAllowed)
	}
	return nil
}

func writeDiffImage(name string, expected, actual []byte, w, h int) {
	os.MkdirAll("debug", 0755)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			i := y*w + x
			img.Set(x, y, color.RGBA{
				R: expected[i], // expected in red
				G: actual[i],   // actual in green
				B: 0,
				A: 255,
			})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return
	}
	defer f.Close()
	png.Encode(f, img)
}
