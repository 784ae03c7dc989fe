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

// Command spike draws a new random spike thumbnail with the default
// parameters and writes it to spike.png.
package main

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"seehuhn.de/go/spike"
	"seehuhn.de/go/spike/internal/logging"
)

func main() {
	logging.Setup()

	cfg := spike.DefaultConfig()
	g, err := spike.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}

	seed := uint64(time.Now().UnixNano())
	src := rand.New(rand.NewPCG(seed, 0))

	start := time.Now()
	img, stats := g.Render(src)
	log.Info().
		Uint64("seed", seed).
		Int("inner", stats.Inner).
		Int("outer", stats.Outer).
		Dur("elapsed", time.Since(start)).
		Msg("spike field drawn")

	name := ""
	if cfg.Save {
		name = cfg.Output
		if err := spike.WritePNG(name, img); err != nil {
			log.Fatal().Err(err).Str("file", name).Msg("cannot save image")
		}
		log.Info().Str("file", name).Msg("image saved")
	}
	if cfg.Show {
		if err := spike.Show(img, name); err != nil {
			log.Fatal().Err(err).Msg("cannot show image")
		}
	}
}
