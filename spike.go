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

// Package spike renders radial "spiky" thumbnail graphics.
//
// A spike field consists of thin triangles which point away from the
// centre of the image.  The inner vertex of every triangle lies between
// two ellipses, and the triangles are placed by sweeping once around the
// full circle with random angular steps.  There are two classes of
// spikes, inner and outer, each with their own ellipses, sizes, steps and
// colour.
//
// The field is drawn on a supersampled canvas and then reduced to the
// output size with a Lanczos filter, which gives smooth edges.
//
//	g, err := spike.New(spike.DefaultConfig())
//	if err != nil {
//		...
//	}
//	img, _ := g.Render(rand.New(rand.NewPCG(seed, 0)))
package spike

// Source is a source of random numbers, uniformly distributed in [0, 1).
// A *math/rand/v2.Rand can be used here.
type Source interface {
	Float64() float64
}

// Range is a closed interval [Min, Max] of parameter values.
// Min == Max is allowed and gives a fixed value.
type Range struct {
	Min, Max float64
}

// Fixed returns the range which contains only v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Sample returns a value chosen uniformly from r.
// It always consumes exactly one number from src.
func (r Range) Sample(src Source) float64 {
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// Scale returns r with both ends multiplied by f.
func (r Range) Scale(f float64) Range {
	return Range{Min: r.Min * f, Max: r.Max * f}
}
