// This file is part of Beamrace.
//
// Beamrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Beamrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Beamrace.  If not, see <https://www.gnu.org/licenses/>.

// Package convert turns images into frame buffer levels. It is used by the
// frame sources that draw with an image library and by the CONVERT mode of the
// harness.
package convert

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/beamrace/beamrace/palette"
)

// Scale the image to width by height and convert every pixel to the nearest
// level. The aspect ratio of the image is not preserved.
func Scale(img image.Image, width, height int) []uint8 {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	// the image is nearly always being reduced. Catmull-Rom averages the
	// source pixels that each destination pixel covers
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return Levels(dst)
}

// Levels converts every pixel of the image to the nearest level. The levels
// are returned row by row.
func Levels(img image.Image) []uint8 {
	b := img.Bounds()
	l := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			l = append(l, palette.Nearest(img.At(x, y)))
		}
	}
	return l
}

// Image creates an image from levels. It is the inverse of Levels() for any
// image containing only palette colours.
func Image(levels []uint8, width, height int) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, width, height), palette.Palette)
	copy(img.Pix, levels)
	return img
}
