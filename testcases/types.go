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

// Package testcases holds seeded spike field configurations which are
// shared by the tests, the benchmarks and the reference image generator.
package testcases

import (
	"math/rand/v2"

	"seehuhn.de/go/spike"
)

// TestCase defines a single reproducible spike field.
type TestCase struct {
	Name   string       // lowercase a-z and _ only
	Config spike.Config // the field to draw
	Seed   uint64       // seed for the random source
}

// Source returns a new random source for the test case.
// Every call returns a source which produces the same sequence.
func (tc TestCase) Source() *rand.Rand {
	return rand.New(rand.NewPCG(tc.Seed, 0x5deece66d))
}

// thumbnail returns a reduced version of the default configuration, one
// tenth of the size in every direction.
func thumbnail() spike.Config {
	cfg := spike.DefaultConfig()
	cfg.Width /= 10
	cfg.Height /= 10
	cfg.Supersample = 1
	for _, c := range []*spike.Class{&cfg.Inner, &cfg.Outer} {
		c.A = c.A.Scale(0.1)
		c.B = c.B.Scale(0.1)
		c.Width = c.Width.Scale(0.1)
		c.Height = c.Height.Scale(0.1)
	}
	cfg.Save = false
	cfg.Output = ""
	return cfg
}
