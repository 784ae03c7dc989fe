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
	"math"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/spike/raster"
)

// Painter fills closed paths, given in user space, onto a canvas.
// Paths are filled using the nonzero winding rule.
type Painter interface {
	Fill(p *path.Data, col color.NRGBA)
}

// RasterPainter paints using a [raster.Rasteriser].
type RasterPainter struct {
	dst  *image.RGBA
	r    *raster.Rasteriser
	hard bool
}

// NewRasterPainter returns a painter for dst.  The matrix ctm maps user
// space to the pixel coordinates of dst.  If antialias is false, pixels
// are either painted fully or not at all.
func NewRasterPainter(dst *image.RGBA, ctm matrix.Matrix, antialias bool) *RasterPainter {
	b := dst.Bounds()
	r := raster.NewRasteriser(rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	})
	r.CTM = ctm
	return &RasterPainter{dst: dst, r: r, hard: !antialias}
}

// Fill implements the [Painter] interface.
func (p *RasterPainter) Fill(pth *path.Data, col color.NRGBA) {
	p.r.FillNonZero(pth, raster.Over(p.dst, col, p.hard))
}

// VectorPainter paints using golang.org/x/image/vector.
// Edges are always anti-aliased.
type VectorPainter struct {
	dst *image.RGBA
	ctm matrix.Matrix
	z   *vector.Rasterizer
	dev []vec.Vec2
}

// NewVectorPainter returns a painter for dst.  The matrix ctm maps user
// space to the pixel coordinates of dst.
func NewVectorPainter(dst *image.RGBA, ctm matrix.Matrix) *VectorPainter {
	return &VectorPainter{dst: dst, ctm: ctm}
}

// Fill implements the [Painter] interface.
func (p *VectorPainter) Fill(pth *path.Data, col color.NRGBA) {
	if len(pth.Coords) == 0 {
		return
	}

	m := p.ctm
	p.dev = p.dev[:0]
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, q := range pth.Coords {
		d := vec.Vec2{
			X: m[0]*q.X + m[2]*q.Y + m[4],
			Y: m[1]*q.X + m[3]*q.Y + m[5],
		}
		p.dev = append(p.dev, d)
		xMin, xMax = min(xMin, d.X), max(xMax, d.X)
		yMin, yMax = min(yMin, d.Y), max(yMax, d.Y)
	}

	// Bézier curves lie inside the hull of their control points, so this
	// box contains the whole path.
	box := image.Rect(
		int(math.Floor(xMin)), int(math.Floor(yMin)),
		int(math.Ceil(xMax)), int(math.Ceil(yMax)),
	).Intersect(p.dst.Bounds())
	if box.Empty() {
		return
	}

	if p.z == nil {
		p.z = vector.NewRasterizer(box.Dx(), box.Dy())
	} else {
		p.z.Reset(box.Dx(), box.Dy())
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	at := func(i int) (float32, float32) {
		return float32(p.dev[i].X - ox), float32(p.dev[i].Y - oy)
	}
	k := 0
	for _, cmd := range pth.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			p.z.MoveTo(at(k))
			k++
		case path.CmdLineTo:
			p.z.LineTo(at(k))
			k++
		case path.CmdQuadTo:
			x1, y1 := at(k)
			x2, y2 := at(k + 1)
			p.z.QuadTo(x1, y1, x2, y2)
			k += 2
		case path.CmdCubeTo:
			x1, y1 := at(k)
			x2, y2 := at(k + 1)
			x3, y3 := at(k + 2)
			p.z.CubeTo(x1, y1, x2, y2, x3, y3)
			k += 3
		case path.CmdClose:
			p.z.ClosePath()
		}
	}
	p.z.Draw(p.dst, box, image.NewUniform(col), image.Point{})
}
