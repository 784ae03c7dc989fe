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
	"iter"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Kind distinguishes inner and outer spikes.
type Kind int

const (
	Inner Kind = iota
	Outer
)

func (k Kind) String() string {
	switch k {
	case Inner:
		return "inner"
	case Outer:
		return "outer"
	default:
		return "unknown"
	}
}

// Spike is a single triangle of the field.  Coordinates are in output
// pixels, with the origin in the top-left corner of the image.
type Spike struct {
	Kind Kind

	// Angle is the direction of the spike, in radians.
	Angle float64

	// Radius is the distance of the inner vertex P1 from the image centre.
	Radius float64

	Width, Height float64

	// P1 is the inner vertex.  P2 and P3 are the ends of the base, which
	// is perpendicular to the spike direction.
	P1, P2, P3 vec.Vec2

	// Step is the angle from this spike to the next one in the sweep.
	Step float64
}

// Path returns the closed triangle P1-P2-P3.
func (s *Spike) Path() *path.Data {
	return (&path.Data{}).MoveTo(s.P1).LineTo(s.P2).LineTo(s.P3).Close()
}

// polar returns the vector of length r in direction theta.
func polar(r, theta float64) vec.Vec2 {
	sin, cos := math.Sincos(theta)
	return vec.Vec2{X: r * cos, Y: r * sin}
}

// Spikes returns the spikes of one field, in drawing order.  Each call of
// the returned iterator consumes fresh random numbers from src.
//
// In overlap mode all inner spikes are produced first, followed by the
// outer spikes.
func (g *Generator) Spikes(src Source) iter.Seq[Spike] {
	return func(yield func(Spike) bool) {
		if g.cfg.Overlap {
			if g.sweep(src, Inner, yield) {
				g.sweep(src, Outer, yield)
			}
			return
		}

		p := g.cfg.InnerPercent / 100
		angle := src.Float64() * 2 * math.Pi
		for done := 0.0; done <= 2*math.Pi; {
			kind := Outer
			if src.Float64() < p {
				kind = Inner
			}
			s := g.spike(src, kind, angle)
			if !yield(s) {
				return
			}
			angle += s.Step
			done += s.Step
		}
	}
}

// sweep places spikes of a single kind once around the circle, starting
// at a random angle.  The last step may not overshoot the start by more
// than the smallest possible step.  The return value is false if yield
// asked to stop.
func (g *Generator) sweep(src Source, kind Kind, yield func(Spike) bool) bool {
	limit := 2*math.Pi - g.class(kind).Step.Min
	angle := src.Float64() * 2 * math.Pi
	for done := 0.0; done <= limit; {
		s := g.spike(src, kind, angle)
		if !yield(s) {
			return false
		}
		angle += s.Step
		done += s.Step
	}
	return true
}

// spike constructs a spike in direction angle.
func (g *Generator) spike(src Source, kind Kind, angle float64) Spike {
	c := g.class(kind)

	r1 := EllipseRadius(c.A.Min, c.B.Min, angle)
	r2 := EllipseRadius(c.A.Max, c.B.Max, angle)
	s := Spike{
		Kind:   kind,
		Angle:  angle,
		Radius: Range{r1, r2}.Sample(src),
		Width:  c.Width.Sample(src),
		Height: c.Height.Sample(src),
	}

	s.P1 = g.center.Add(polar(s.Radius, angle))
	base := s.P1.Add(polar(s.Height, angle))
	s.P2 = base.Add(polar(s.Width/2, angle+math.Pi/2))
	s.P3 = base.Add(polar(s.Width/2, angle-math.Pi/2))

	s.Step = c.Step.Sample(src)
	return s
}

func (g *Generator) class(kind Kind) *Class {
	if kind == Inner {
		return &g.cfg.Inner
	}
	return &g.cfg.Outer
}
