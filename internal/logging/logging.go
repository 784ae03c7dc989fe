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

// Package logging configures the global zerolog logger for the commands.
package logging

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	colorRed    = 31
	colorGreen  = 32
	colorYellow = 33
	colorBold   = 1
)

// Setup sends log output to stderr, in human readable form if stderr is
// a terminal and as JSON lines otherwise.
func Setup() {
	log.Logger = log.Output(os.Stderr)
	if isTerminalAttached() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:         os.Stderr,
			TimeFormat:  "2006-01-02 15:04:05",
			FormatLevel: formatLevel,
		})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func isTerminalAttached() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) && runtime.GOOS != "windows"
}

// formatLevel prints the level as a coloured three letter code.
func formatLevel(i any) string {
	ll, _ := i.(string)
	switch ll {
	case "debug":
		return "DBG"
	case "info":
		return colorize("INF", colorGreen)
	case "warn":
		return colorize("WRN", colorYellow)
	case "error":
		return colorize("ERR", colorRed)
	case "fatal":
		return colorize(colorize("FTL", colorRed), colorBold)
	default:
		return colorize("???", colorBold)
	}
}

func colorize(s any, c int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
