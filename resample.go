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
	"image"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Resampler scales an image to a new size.
type Resampler interface {
	Resample(src image.Image, width, height int) *image.RGBA
}

// KernelResampler scales images with a golang.org/x/image/draw kernel.
type KernelResampler struct {
	Kernel *draw.Kernel
}

// Resample implements the [Resampler] interface.
func (k KernelResampler) Resample(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	k.Kernel.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// NfntResampler scales images using github.com/nfnt/resize.
type NfntResampler struct {
	Interp resize.InterpolationFunction
}

// Resample implements the [Resampler] interface.
func (n NfntResampler) Resample(src image.Image, width, height int) *image.RGBA {
	out := resize.Resize(uint(width), uint(height), src, n.Interp)
	if rgba, ok := out.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Copy(dst, image.Point{}, out, out.Bounds(), draw.Src, nil)
	return dst
}

var (
	// Lanczos resamples using a Lanczos filter with three lobes.
	Lanczos Resampler = KernelResampler{Kernel: &draw.Kernel{Support: 3, At: lanczos3}}

	// NfntLanczos is the Lanczos-3 filter of github.com/nfnt/resize.
	NfntLanczos Resampler = NfntResampler{Interp: resize.Lanczos3}
)

// lanczos3 is the Lanczos window sinc(t)·sinc(t/3), for 0 <= t < 3.
func lanczos3(t float64) float64 {
	if t == 0 {
		return 1
	}
	if t >= 3 {
		return 0
	}
	x := math.Pi * t
	return 3 * math.Sin(x) * math.Sin(x/3) / (x * x)
}
