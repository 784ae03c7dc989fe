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

// Package raster converts closed vector paths into per-pixel coverage.
//
// Coverage is computed exactly for the flattened path: a pixel which is
// half inside the shape gets coverage 0.5.  Callers which want hard edges
// threshold the values, see [Over].
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// EmitFunc receives the coverage of one scanline.  Pixel xMin+i of row y
// has coverage coverage[i].  The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasteriser turns paths into coverage values.  A single instance can be
// used for any number of paths; the internal buffers grow as needed and
// are reused, so that steady-state filling does not allocate.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to this device-space rectangle.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and its polygonal approximation.  Must be positive.
	Flatness float64

	// smallPathThreshold is the largest bounding box area, in pixels,
	// for which whole-box buffers are used.  Larger paths are processed
	// one scanline at a time using an active edge list.
	smallPathThreshold int

	cover []float32 // signed vertical extent per pixel; overwritten with the coverage
	area  []float32 // signed area to the right of the edge, within the pixel
	edges []edge
	todo  []bool // per-row flag for the whole-box approach
	live  []int  // active edge indices for the scanline approach

	// device-space bounding box of r.edges
	haveBBox       bool
	bbXMin, bbXMax float64
	bbYMin, bbYMax float64
}

// edge is a line segment in device coordinates, never horizontal.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

func (e *edge) yRange() (float64, float64) {
	return min(e.y0, e.y1), max(e.y0, e.y1)
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, using
// the identity transformation and the default flatness.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:                matrix.Identity,
		Clip:               clip,
		Flatness:           defaultFlatness,
		smallPathThreshold: smallPathThreshold,
	}
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.todo = r.todo[:0]
	r.live = r.live[:0]
}

// FillNonZero fills p using the nonzero winding number rule.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.fill(p, nonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.fill(p, evenOdd, emit)
}

type fillRule int

const (
	nonZero fillRule = iota
	evenOdd
)

func (r *Rasteriser) fill(p *path.Data, rule fillRule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges(p)
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillBox(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillScanlines(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// collectEdges flattens p into device-space edges.  The returned pixel
// range covers all edges and is clipped to r.Clip.
func (r *Rasteriser) collectEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.haveBBox = false

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	// Subpaths are implicitly closed for filling.
	if cur != start {
		r.addEdge(cur, start)
	}

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bbXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

func (r *Rasteriser) toDevice(p vec.Vec2) (float64, float64) {
	m := r.CTM
	return m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]
}

// addEdge appends the user-space segment p0-p1 to the edge list.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	x0, y0 := r.toDevice(p0)
	x1, y1 := r.toDevice(p1)

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if !r.haveBBox {
		r.bbXMin, r.bbXMax = min(x0, x1), max(x0, x1)
		r.bbYMin, r.bbYMax = min(y0, y1), max(y0, y1)
		r.haveBBox = true
		return
	}
	r.bbXMin = min(r.bbXMin, x0, x1)
	r.bbXMax = max(r.bbXMax, x0, x1)
	r.bbYMin = min(r.bbYMin, y0, y1)
	r.bbYMax = max(r.bbYMax, y0, y1)
}

// deviceLength returns the device-space length of the user-space vector v,
// ignoring the translation part of the CTM.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	// deviation of the control polygon from the chord: (P0 - 2P1 + P2)/4
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	// Wang's formula: n = ceil(sqrt(3 M / (4 eps)))
	d1 := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// Coverage is accumulated in two arrays per scanline:
//
//	cover[i]  signed vertical extent of all edge pieces in pixel column i
//	area[i]   the part of cover[i] which lies inside pixel i itself
//
// Scanning from the left, the winding number at pixel i is the sum of
// cover[0:i] plus area[i].  The nonzero rule clamps its absolute value to
// [0, 1]; the even-odd rule folds it with period 2.

// accumulate adds the part of e which lies in scanline y to the cover and
// area buffers.  The buffers are indexed by x-xMin; contributions left of
// xMin are folded into the first pixel, contributions right of xMax are
// dropped.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	lo, hi := e.yRange()
	yTop := max(float64(y), lo)
	yBot := min(float64(y+1), hi)
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(yTop), e.xAt(yBot)
	pixLeft := int(math.Floor(min(xa, xb)))
	pixRight := int(math.Floor(max(xa, xb)))

	switch {
	case pixRight < xMin:
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	case pixLeft >= xMax:
		return
	case pixLeft == pixRight:
		addPiece(e, yTop, yBot, sign, pixLeft, cover, area, xMin, xMax)
		return
	}

	// The edge crosses several pixel columns; split it at the column
	// boundaries.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		top := max(min(ya, yb), yTop)
		bot := min(max(ya, yb), yBot)
		if bot <= top {
			continue
		}
		addPiece(e, top, bot, sign, pix, cover, area, xMin, xMax)
	}
}

// addPiece records the part of e between top and bot, which must lie
// within pixel column pix.
func addPiece(e *edge, top, bot float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	c := sign * float32(bot-top)
	if pix < xMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= xMax {
		return
	}

	frac := e.xAt((top+bot)/2) - float64(pix)
	i := pix - xMin
	cover[i] += c
	area[i] += c * float32(1-frac)
}

// integrate converts cover/area into coverage values.  The result
// overwrites cover.
func integrate(cover, area []float32, rule fillRule) {
	var acc float32
	for i := range cover {
		w := acc + area[i]
		acc += cover[i]
		if w < 0 {
			w = -w
		}
		if rule == nonZero {
			cover[i] = min(w, 1)
		} else {
			m := w - 2*float32(int(w/2))
			if m > 1 {
				m = 2 - m
			}
			cover[i] = m
		}
	}
}

// trimZeros strips zero coverage from both ends of row.  It returns nil
// if the whole row is zero.
func trimZeros(row []float32) ([]float32, int) {
	lo := 0
	for lo < len(row) && row[lo] == 0 {
		lo++
	}
	if lo == len(row) {
		return nil, 0
	}
	hi := len(row)
	for row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}

// fillBox rasterises small paths using buffers covering the whole
// bounding box.
func (r *Rasteriser) fillBox(xMin, xMax, yMin, yMax int, rule fillRule, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin

	r.cover = slices.Grow(r.cover[:0], w*h)[:w*h]
	r.area = slices.Grow(r.area[:0], w*h)[:w*h]
	r.todo = slices.Grow(r.todo[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.todo)

	for i := range r.edges {
		e := &r.edges[i]
		lo, hi := e.yRange()
		from := max(int(math.Floor(lo)), yMin)
		to := min(int(math.Floor(hi))+1, yMax)
		for y := from; y < to; y++ {
			row := y - yMin
			off := row * w
			accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			r.todo[row] = true
		}
	}

	for row, ok := range r.todo {
		if !ok {
			continue
		}
		off := row * w
		line := r.cover[off : off+w]
		integrate(line, r.area[off:off+w], rule)
		if cov, dx := trimZeros(line); cov != nil {
			emit(yMin+row, xMin+dx, cov)
		}
	}
}

// fillScanlines rasterises large paths one scanline at a time, keeping a
// list of the edges which intersect the current scanline.
func (r *Rasteriser) fillScanlines(xMin, xMax, yMin, yMax int, rule fillRule, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.live = r.live[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bot := float64(y + 1)

		for next < len(r.edges) {
			if lo, _ := r.edges[next].yRange(); lo >= bot {
				break
			}
			r.live = append(r.live, next)
			next++
		}
		if len(r.live) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.live); {
			e := &r.edges[r.live[i]]
			if _, hi := e.yRange(); hi <= top {
				r.live[i] = r.live[len(r.live)-1]
				r.live = r.live[:len(r.live)-1]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, rule)
		if cov, dx := trimZeros(r.cover); cov != nil {
			emit(y, xMin+dx, cov)
		}
	}
}

const (
	// defaultFlatness is the default curve tolerance in device pixels.
	// A quarter pixel is below what can be seen.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent for an edge
	// to contribute coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the default for Rasteriser.smallPathThreshold.
	smallPathThreshold = 65536
)
