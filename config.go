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
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidConfig is wrapped by all errors returned by [Config.Validate].
var ErrInvalidConfig = errors.New("invalid spike configuration")

// Class describes one kind of spike.
//
// All lengths are in output pixels, all angles in radians.
type Class struct {
	// A and B give the horizontal and vertical semi-axes of the ellipses
	// on which the inner vertices of the spikes are placed.  The vertex is
	// chosen between the ellipse with semi-axes (A.Min, B.Min) and the one
	// with semi-axes (A.Max, B.Max).
	A, B Range

	// Width is the length of the base of the triangle.
	Width Range

	// Height is the distance from the inner vertex to the base.
	Height Range

	// Step is the angle between a spike of this class and the next spike.
	// Step.Min must be positive, so that every sweep terminates.
	Step Range

	// Fill is the colour of the spikes, as a hex string like "#9c0a09".
	Fill string
}

// Config holds all parameters of a spike field.
//
// A Config is a plain value; [New] works on a copy.
type Config struct {
	// Width and Height give the size of the output image in pixels.
	Width, Height int

	// Supersample is the factor by which the image is enlarged for
	// drawing.  1 disables supersampling.
	Supersample int

	Inner, Outer Class

	// Overlap selects two independent sweeps, one for each class.  The
	// resulting spikes may overlap.  Otherwise a single sweep is used
	// and each spike is an inner spike with probability InnerPercent/100.
	Overlap bool

	// InnerPercent is the expected percentage of inner spikes.
	// Only used if Overlap is false.
	InnerPercent float64

	// Antialias uses fractional pixel coverage on the supersampled
	// canvas.  If false, spikes are drawn as flat, aliased polygons and
	// smooth edges come only from the downsampling step.
	Antialias bool

	// InnerEllipse draws the outline of the smaller inner ellipse, using
	// EllipseColor and a line width of EllipseWidth output pixels.  An
	// empty EllipseColor draws nothing.
	InnerEllipse bool
	EllipseColor string
	EllipseWidth float64

	// Save and Show control what a command does with the result: write
	// it to Output and/or open it in the default image viewer.
	Save   bool
	Show   bool
	Output string
}

// DefaultConfig returns the parameters of the standard 1280x720 thumbnail.
func DefaultConfig() Config {
	const deg = math.Pi / 180
	return Config{
		Width:       1280,
		Height:      720,
		Supersample: 5,

		Inner: Class{
			A:      Fixed(450),
			B:      Fixed(350),
			Width:  Range{50, 70},
			Height: Range{400, 600},
			Step:   Fixed(6 * deg),
			Fill:   "#9c0a09",
		},
		Outer: Class{
			A:      Fixed(550),
			B:      Fixed(400),
			Width:  Range{40, 60},
			Height: Range{400, 500},
			Step:   Fixed(6 * deg),
			Fill:   "#9c0a09",
		},

		Overlap:      false,
		InnerPercent: 40,

		EllipseWidth: 1,

		Save:   true,
		Show:   false,
		Output: "spike.png",
	}
}

// Validate checks that cfg describes a spike field which can be drawn.
// The returned error wraps [ErrInvalidConfig].
func (cfg *Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return invalid("image size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Supersample < 1 {
		return invalid("supersample factor %d", cfg.Supersample)
	}
	if err := cfg.Inner.validate("inner"); err != nil {
		return err
	}
	if err := cfg.Outer.validate("outer"); err != nil {
		return err
	}
	if !(cfg.InnerPercent >= 0 && cfg.InnerPercent <= 100) {
		return invalid("inner percentage %g not in [0, 100]", cfg.InnerPercent)
	}
	if cfg.InnerEllipse && cfg.EllipseColor != "" {
		if _, err := parseColor(cfg.EllipseColor); err != nil {
			return invalid("ellipse colour: %v", err)
		}
		if !(cfg.EllipseWidth > 0) || math.IsInf(cfg.EllipseWidth, 0) {
			return invalid("ellipse line width %g", cfg.EllipseWidth)
		}
	}
	return nil
}

func (c *Class) validate(name string) error {
	ranges := []struct {
		what     string
		r        Range
		positive bool
	}{
		{"horizontal semi-axis", c.A, true},
		{"vertical semi-axis", c.B, true},
		{"width", c.Width, false},
		{"height", c.Height, false},
		{"angular step", c.Step, true},
	}
	for _, x := range ranges {
		if err := x.r.check(x.positive); err != nil {
			return invalid("%s %s: %v", name, x.what, err)
		}
	}
	if _, err := parseColor(c.Fill); err != nil {
		return invalid("%s fill: %v", name, err)
	}
	return nil
}

func (r Range) check(positive bool) error {
	switch {
	case math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0):
		return fmt.Errorf("non-finite range [%g, %g]", r.Min, r.Max)
	case r.Min > r.Max:
		return fmt.Errorf("empty range [%g, %g]", r.Min, r.Max)
	case positive && r.Min <= 0:
		return fmt.Errorf("minimum %g is not positive", r.Min)
	case r.Min < 0:
		return fmt.Errorf("minimum %g is negative", r.Min)
	}
	return nil
}

// normalize raises the outer ellipses to at least the size of the inner
// ones.
func (cfg *Config) normalize() {
	o, i := &cfg.Outer, &cfg.Inner
	o.A.Min = max(o.A.Min, i.A.Min)
	o.A.Max = max(o.A.Max, i.A.Max)
	o.B.Min = max(o.B.Min, i.B.Min)
	o.B.Max = max(o.B.Max, i.B.Max)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// parseColor converts a hex colour string into an opaque colour.
func parseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
