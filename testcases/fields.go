package testcases

import (
	"math"

	"seehuhn.de/go/spike"
)

const deg = math.Pi / 180

var ratioCases = []TestCase{
	{
		Name:   "default",
		Config: thumbnail(),
		Seed:   1,
	},
	{
		Name: "all_inner",
		Config: with(thumbnail(), func(cfg *spike.Config) {
			cfg.InnerPercent = 100
			cfg.Inner.Fill = "#1f4e79"
		}),
		Seed: 2,
	},
	{
		Name: "all_outer",
		Config: with(thumbnail(), func(cfg *spike.Config) {
			cfg.InnerPercent = 0
		}),
		Seed: 3,
	},
	{
		Name: "random_steps",
		Config: with(thumbnail(), func(cfg *spike.Config) {
			cfg.Inner.Step = spike.Range{Min: 3 * deg, Max: 12 * deg}
			cfg.Outer.Step = spike.Range{Min: 4 * deg, Max: 9 * deg}
			cfg.Inner.A = spike.Range{Min: 35, Max: 50}
			cfg.Inner.B = spike.Range{Min: 25, Max: 35}
			cfg.InnerPercent = 60
		}),
		Seed: 4,
	},
	{
		Name: "supersampled",
		Config: with(thumbnail(), func(cfg *spike.Config) {
			cfg.Supersample = 4
		}),
		Seed: 5,
	},
}

var overlapCases = []TestCase{
	{
		Name: "default",
		Config: with(thumbnail(), func(cfg *spike.Config) {
			cfg.Overlap = true
			cfg.Outer.Fill = "#e0a030"
		}),
		Seed: 6,
	},
	{
		Name: "dense",
		Config: with(thumbnail(), func(cfg *spike.Config) {
			cfg.Overlap = true
			cfg.Inner.Step = spike.Range{Min: 2 * deg, Max: 5 * deg}
			cfg.Outer.Step = spike.Range{Min: 2 * deg, Max: 5 * deg}
			cfg.Inner.Width = spike.Range{Min: 2, Max: 4}
			cfg.Outer.Width = spike.Range{Min: 2, Max: 4}
		}),
		Seed: 7,
	},
}

var outlineCases = []TestCase{
	{
		Name: "inner_ellipse",
		Config: with(thumbnail(), func(cfg *spike.Config) {
			cfg.InnerEllipse = true
			cfg.EllipseColor = "#ffffff"
			cfg.EllipseWidth = 1.5
		}),
		Seed: 8,
	},
}

// with applies modify to a copy of cfg.
func with(cfg spike.Config, modify func(*spike.Config)) spike.Config {
	modify(&cfg)
	return cfg
}
