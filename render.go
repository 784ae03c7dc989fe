// seehuhn.de/go/spike - procedural spike thumbnails
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package spike

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Generator draws spike fields for a fixed configuration.
//
// The exported fields may be changed before the first call to Render.
// After that, a Generator is read-only and can be shared between
// goroutines, provided each Render call uses its own Source.
type Generator struct {
	// NewPainter creates the painter used for the supersampled canvas.
	// If nil, [NewRasterPainter] is used, with hard edges unless
	// Config.Antialias is set.
	NewPainter func(dst *image.RGBA, ctm matrix.Matrix) Painter

	// Resampler reduces the supersampled canvas to the output size.
	// If nil, [Lanczos] is used.
	Resampler Resampler

	cfg    Config
	center vec.Vec2

	innerFill, outerFill color.NRGBA

	outline      bool
	outlineColor color.NRGBA
}

// Stats counts the spikes drawn by one call to [Generator.Render].
type Stats struct {
	Inner, Outer int
}

// New validates cfg and returns a Generator for it.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.normalize()

	g := &Generator{
		cfg:    cfg,
		center: vec.Vec2{X: float64(cfg.Width) / 2, Y: float64(cfg.Height) / 2},
	}
	// The colours were checked by Validate.
	g.innerFill, _ = parseColor(cfg.Inner.Fill)
	g.outerFill, _ = parseColor(cfg.Outer.Fill)
	if cfg.InnerEllipse && cfg.EllipseColor != "" {
		g.outline = true
		g.outlineColor, _ = parseColor(cfg.EllipseColor)
	}
	return g, nil
}

// Config returns the configuration used by g, after normalisation.
func (g *Generator) Config() Config {
	return g.cfg
}

// Outline returns the ring drawn around the inner ellipse, or nil if no
// outline is configured.
func (g *Generator) Outline() *path.Data {
	if !g.outline {
		return nil
	}
	c := &g.cfg.Inner
	return ellipseOutline(g.center, c.A.Min, c.B.Min, g.cfg.EllipseWidth)
}

// Render draws a new spike field, using random numbers from src.
// The result has the size given in the configuration.
func (g *Generator) Render(src Source) (*image.RGBA, Stats) {
	f := g.cfg.Supersample
	canvas := image.NewRGBA(image.Rect(0, 0, g.cfg.Width*f, g.cfg.Height*f))
	ctm := matrix.Matrix{float64(f), 0, 0, float64(f), 0, 0}

	var p Painter
	if g.NewPainter != nil {
		p = g.NewPainter(canvas, ctm)
	} else {
		p = NewRasterPainter(canvas, ctm, g.cfg.Antialias)
	}

	var stats Stats
	for s := range g.Spikes(src) {
		if s.Kind == Inner {
			p.Fill(s.Path(), g.innerFill)
			stats.Inner++
		} else {
			p.Fill(s.Path(), g.outerFill)
			stats.Outer++
		}
	}

	if o := g.Outline(); o != nil {
		p.Fill(o, g.outlineColor)
	}

	if f == 1 {
		return canvas, stats
	}
	rs := g.Resampler
	if rs == nil {
		rs = Lanczos
	}
	return rs.Resample(canvas, canvas.Bounds().Dx()/f, canvas.Bounds().Dy()/f), stats
}

// Generate draws a single spike field for cfg.
func Generate(cfg Config, src Source) (*image.RGBA, error) {
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}
	img, _ := g.Render(src)
	return img, nil
}
