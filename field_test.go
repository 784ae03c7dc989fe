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
	"math/rand/v2"
	"slices"
	"testing"

	"seehuhn.de/go/geom/vec"
)

// constSource returns the same number every time.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func newSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1))
}

// smallConfig returns a field which fits into a 200x200 image.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 200, 200
	cfg.Supersample = 1
	cfg.Inner = Class{
		A:      Fixed(20),
		B:      Fixed(20),
		Width:  Fixed(20),
		Height: Fixed(30),
		Step:   Fixed(30 * math.Pi / 180),
		Fill:   "#9c0a09",
	}
	cfg.Outer = cfg.Inner
	cfg.Outer.A = Fixed(40)
	cfg.Outer.B = Fixed(30)
	cfg.Outer.Fill = "#203040"
	cfg.Save = false
	return cfg
}

func mustNew(t testing.TB, cfg Config) *Generator {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRangeSample(t *testing.T) {
	r := Fixed(3.25)
	for _, u := range []float64{0, 0.1, 0.5, 0.999999} {
		if got := r.Sample(constSource(u)); got != 3.25 {
			t.Errorf("Fixed(3.25).Sample(%g) = %g", u, got)
		}
	}

	r = Range{Min: 10, Max: 20}
	if got := r.Sample(constSource(0)); got != 10 {
		t.Errorf("lower end: got %g", got)
	}
	if got := r.Sample(constSource(0.5)); got != 15 {
		t.Errorf("midpoint: got %g", got)
	}
}

func TestSpikeGeometry(t *testing.T) {
	cfg := smallConfig()
	cfg.InnerPercent = 100
	g := mustNew(t, cfg)

	// With a constant zero source the first spike points along the
	// positive x-axis and all sizes take their minimum.
	var first Spike
	for s := range g.Spikes(constSource(0)) {
		first = s
		break
	}

	const eps = 1e-9
	want := []vec.Vec2{
		{X: 100 + 20, Y: 100},
		{X: 100 + 20 + 30, Y: 100 + 10},
		{X: 100 + 20 + 30, Y: 100 - 10},
	}
	got := []vec.Vec2{first.P1, first.P2, first.P3}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > eps || math.Abs(got[i].Y-want[i].Y) > eps {
			t.Errorf("vertex %d: got %v, want %v", i+1, got[i], want[i])
		}
	}
	if first.Kind != Inner || first.Radius != 20 || first.Width != 20 || first.Height != 30 {
		t.Errorf("unexpected spike %+v", first)
	}
}

func TestSpikeRadius(t *testing.T) {
	cfg := smallConfig()
	cfg.Inner.A = Range{Min: 20, Max: 35}
	cfg.Inner.B = Range{Min: 15, Max: 25}
	cfg.Inner.Step = Range{Min: 0.05, Max: 0.3}
	cfg.Overlap = true
	g := mustNew(t, cfg)

	for s := range g.Spikes(newSource(7)) {
		if s.Kind != Inner {
			continue
		}
		lo := EllipseRadius(20, 15, s.Angle)
		hi := EllipseRadius(35, 25, s.Angle)
		if s.Radius < lo-1e-9 || s.Radius > hi+1e-9 {
			t.Errorf("angle %.4f: radius %.4f not in [%.4f, %.4f]", s.Angle, s.Radius, lo, hi)
		}
	}
}

func TestReproducible(t *testing.T) {
	for _, overlap := range []bool{false, true} {
		cfg := smallConfig()
		cfg.Overlap = overlap
		cfg.Inner.Width = Range{Min: 5, Max: 25}
		cfg.Outer.Step = Range{Min: 0.1, Max: 0.4}
		g := mustNew(t, cfg)

		a := slices.Collect(g.Spikes(newSource(42)))
		b := slices.Collect(g.Spikes(newSource(42)))
		if !slices.Equal(a, b) {
			t.Errorf("overlap=%t: same seed gave different spikes", overlap)
		}
		c := slices.Collect(g.Spikes(newSource(43)))
		if slices.Equal(a, c) {
			t.Errorf("overlap=%t: different seeds gave the same spikes", overlap)
		}
	}
}

// checkSweep verifies the stopping rule for one sweep: the accumulated
// angle before every spike is at most limit, and after the last spike it
// exceeds limit.
func checkSweep(t *testing.T, spikes []Spike, limit float64) {
	t.Helper()
	if len(spikes) == 0 {
		t.Fatal("empty sweep")
	}
	done := 0.0
	for i, s := range spikes {
		if done > limit {
			t.Fatalf("spike %d placed after %.6f > %.6f", i, done, limit)
		}
		done += s.Step
	}
	if done <= limit {
		t.Errorf("sweep stopped early at %.6f <= %.6f", done, limit)
	}
}

func TestRatioSweep(t *testing.T) {
	cfg := smallConfig()
	cfg.Inner.Step = Range{Min: 0.02, Max: 0.3}
	cfg.Outer.Step = Range{Min: 0.05, Max: 0.2}
	g := mustNew(t, cfg)

	bound := int(math.Ceil(2*math.Pi/0.02)) + 1
	for seed := range uint64(20) {
		spikes := slices.Collect(g.Spikes(newSource(seed)))
		checkSweep(t, spikes, 2*math.Pi)
		if len(spikes) > bound {
			t.Errorf("seed %d: %d spikes, more than %d", seed, len(spikes), bound)
		}
	}
}

func TestRatioExtremes(t *testing.T) {
	for _, tc := range []struct {
		percent float64
		want    Kind
	}{
		{100, Inner},
		{0, Outer},
	} {
		cfg := smallConfig()
		cfg.InnerPercent = tc.percent
		g := mustNew(t, cfg)
		for s := range g.Spikes(newSource(3)) {
			if s.Kind != tc.want {
				t.Fatalf("percent %g: got a %s spike", tc.percent, s.Kind)
			}
		}
	}
}

func TestOverlapSweeps(t *testing.T) {
	cfg := smallConfig()
	cfg.Overlap = true
	cfg.Inner.Step = Range{Min: 0.1, Max: 0.25}
	cfg.Outer.Step = Range{Min: 0.05, Max: 0.15}
	g := mustNew(t, cfg)

	spikes := slices.Collect(g.Spikes(newSource(11)))
	n := slices.IndexFunc(spikes, func(s Spike) bool { return s.Kind == Outer })
	if n <= 0 {
		t.Fatalf("expected inner spikes followed by outer spikes, got split at %d", n)
	}
	inner, outer := spikes[:n], spikes[n:]
	for _, s := range outer {
		if s.Kind != Outer {
			t.Fatal("inner spike after the start of the outer sweep")
		}
	}
	checkSweep(t, inner, 2*math.Pi-0.1)
	checkSweep(t, outer, 2*math.Pi-0.05)

	// The inner sweep does not depend on the outer spike parameters.
	cfg2 := cfg
	cfg2.Outer.Width = Range{Min: 1, Max: 3}
	cfg2.Outer.Step = Fixed(0.5)
	g2 := mustNew(t, cfg2)
	spikes2 := slices.Collect(g2.Spikes(newSource(11)))
	if !slices.Equal(spikes2[:n], inner) {
		t.Error("inner sweep changed with the outer configuration")
	}
}

func TestFixedStepCount(t *testing.T) {
	// A fixed step of 30 degrees places 12 or 13 spikes, depending on
	// rounding of the accumulated angle at exactly 2π.
	cfg := smallConfig()
	g := mustNew(t, cfg)
	n := 0
	for range g.Spikes(constSource(0.25)) {
		n++
	}
	if n != 12 && n != 13 {
		t.Errorf("got %d spikes, want 12 or 13", n)
	}
}

func TestSpikesEarlyStop(t *testing.T) {
	for _, overlap := range []bool{false, true} {
		cfg := smallConfig()
		cfg.Overlap = overlap
		g := mustNew(t, cfg)
		n := 0
		for range g.Spikes(newSource(5)) {
			n++
			if n == 3 {
				break
			}
		}
		if n != 3 {
			t.Errorf("overlap=%t: got %d spikes", overlap, n)
		}
	}
}
