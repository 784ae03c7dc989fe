package spike_test

import (
	"fmt"
	"image"
	"testing"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/spike"
	"seehuhn.de/go/spike/testcases"
)

// BenchmarkPainters compares the two painters on a full size field.
func BenchmarkPainters(b *testing.B) {
	painters := map[string]func(dst *image.RGBA, ctm matrix.Matrix) spike.Painter{
		"raster": func(dst *image.RGBA, ctm matrix.Matrix) spike.Painter {
			return spike.NewRasterPainter(dst, ctm, true)
		},
		"vector": func(dst *image.RGBA, ctm matrix.Matrix) spike.Painter {
			return spike.NewVectorPainter(dst, ctm)
		},
	}

	for _, name := range []string{"raster", "vector"} {
		b.Run(name, func(b *testing.B) {
			cfg := spike.DefaultConfig()
			cfg.Supersample = 1
			g, err := spike.New(cfg)
			if err != nil {
				b.Fatal(err)
			}
			g.NewPainter = painters[name]
			tc := testcases.TestCase{Seed: 1}

			b.ReportAllocs()
			for b.Loop() {
				g.Render(tc.Source())
			}
		})
	}
}

// BenchmarkResamplers benchmarks the downsampling step for different
// supersampling factors.
func BenchmarkResamplers(b *testing.B) {
	const w, h = 256, 144
	resamplers := map[string]spike.Resampler{
		"lanczos": spike.Lanczos,
		"nfnt":    spike.NfntLanczos,
	}

	for _, f := range []int{2, 5} {
		src := image.NewRGBA(image.Rect(0, 0, w*f, h*f))
		for i := range src.Pix {
			src.Pix[i] = uint8(i * 7)
		}
		for _, name := range []string{"lanczos", "nfnt"} {
			b.Run(fmt.Sprintf("%s/%dx", name, f), func(b *testing.B) {
				rs := resamplers[name]
				b.ReportAllocs()
				for b.Loop() {
					rs.Resample(src, w, h)
				}
			})
		}
	}
}

// BenchmarkTestCases renders every test case with the default pipeline.
func BenchmarkTestCases(b *testing.B) {
	for category, cases := range testcases.All {
		for _, tc := range cases {
			b.Run(category+"_"+tc.Name, func(b *testing.B) {
				g, err := spike.New(tc.Config)
				if err != nil {
					b.Fatal(err)
				}
				for b.Loop() {
					g.Render(tc.Source())
				}
			})
		}
	}
}
