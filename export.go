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
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/pkg/browser"
)

// WritePNG stores img in the named file.
func WritePNG(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encodePNG(f, img)
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// Show opens an image in the default viewer of the desktop.
//
// If name is not empty, it must be a file which already contains img,
// for example written by [WritePNG].  Otherwise img is first written to a
// temporary file.  The temporary file is not removed, since the viewer
// may read it after Show returns.
func Show(img image.Image, name string) error {
	if name == "" {
		f, err := os.CreateTemp("", "spike-*.png")
		if err != nil {
			return err
		}
		err = encodePNG(f, img)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		name = f.Name()
	}
	return browser.OpenFile(name)
}
