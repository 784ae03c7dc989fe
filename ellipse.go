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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// EllipseRadius returns the distance from the centre to the ellipse with
// semi-axes a and b, in direction theta.
//
// At theta = π/2 and 3π/2 (mod 2π) the tangent is undefined; there the
// result is exactly b.
func EllipseRadius(a, b, theta float64) float64 {
	x, y := ellipsePoint(a, b, theta)
	return math.Hypot(x, y)
}

// ellipsePoint returns the point of the ellipse x²/a² + y²/b² = 1 in
// direction theta, reflected into the first quadrant.
func ellipsePoint(a, b, theta float64) (x, y float64) {
	if t := math.Tan(theta); !isVertical(theta) && !math.IsInf(t, 0) {
		x = a * b / math.Sqrt(a*a*t*t+b*b)
	}
	q := x / a
	y = b * math.Sqrt(max(0, 1-q*q))
	return x, y
}

// isVertical reports whether theta is π/2 or 3π/2, modulo 2π.
func isVertical(theta float64) bool {
	m := math.Mod(theta, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m == math.Pi/2 || m == 3*math.Pi/2
}

// bezierCircle is the control point distance for approximating a quarter
// circle of radius 1 by a cubic Bézier curve.
const bezierCircle = 0.5522847498

// appendEllipse adds a closed ellipse around c to p.  If clockwise is set,
// the ellipse is traversed in the opposite direction, so that it cuts a
// hole into an enclosing ellipse under the nonzero winding rule.
func appendEllipse(p *path.Data, c vec.Vec2, rx, ry float64, clockwise bool) {
	if clockwise {
		ry = -ry
	}
	kx, ky := bezierCircle*rx, bezierCircle*ry
	pt := func(dx, dy float64) vec.Vec2 {
		return vec.Vec2{X: c.X + dx, Y: c.Y + dy}
	}

	p.Cmds = append(p.Cmds, path.CmdMoveTo,
		path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo,
		path.CmdClose)
	p.Coords = append(p.Coords,
		pt(rx, 0),
		pt(rx, ky), pt(kx, ry), pt(0, ry),
		pt(-kx, ry), pt(-rx, ky), pt(-rx, 0),
		pt(-rx, -ky), pt(-kx, -ry), pt(0, -ry),
		pt(kx, -ry), pt(rx, -ky), pt(rx, 0),
	)
}

// ellipseOutline returns a ring of the given line width, centred on the
// ellipse with semi-axes a and b around c.
func ellipseOutline(c vec.Vec2, a, b, width float64) *path.Data {
	p := &path.Data{}
	h := width / 2
	appendEllipse(p, c, a+h, b+h, false)
	if a > h && b > h {
		appendEllipse(p, c, a-h, b-h, true)
	}
	return p
}
