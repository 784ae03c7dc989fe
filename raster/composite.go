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

package raster

import (
	"image"
	"image/color"
)

// Over returns an EmitFunc which paints col onto dst, using the coverage
// values as an additional alpha mask (Porter-Duff source-over).
//
// If hard is true, coverage is rounded to 0 or 1 first.  This gives flat,
// aliased fills where a pixel is painted if at least half of it lies
// inside the path.
//
// The rasteriser's clip rectangle must lie within dst.Bounds().
func Over(dst *image.RGBA, col color.NRGBA, hard bool) EmitFunc {
	alpha := float32(col.A) / 255
	return func(y, xMin int, coverage []float32) {
		off := dst.PixOffset(xMin, y)
		pix := dst.Pix[off : off+4*len(coverage)]
		for i, c := range coverage {
			if hard {
				if c < 0.5 {
					continue
				}
				c = 1
			}
			a := alpha * c
			if a <= 0 {
				continue
			}
			p := pix[4*i : 4*i+4 : 4*i+4]
			p[0] = blend(col.R, a, p[0])
			p[1] = blend(col.G, a, p[1])
			p[2] = blend(col.B, a, p[2])
			p[3] = blend(255, a, p[3])
		}
	}
}

// blend composites the straight colour channel s with alpha a over the
// premultiplied channel d.
func blend(s uint8, a float32, d uint8) uint8 {
	v := float32(s)*a + float32(d)*(1-a)
	return uint8(min(v+0.5, 255))
}
