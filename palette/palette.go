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

// Package palette defines the colours of the six bit pixel levels.
//
// Each level is two bits of blue, two bits of green and two bits of red, from
// the most significant bit down. The two bits of each component drive a
// resistor ladder. The high bit contributes two thirds of full scale and the
// low bit one third.
//
//	bit  5  4  3  2  1  0
//	     B1 B0 G1 G0 R1 R0
package palette

import (
	"image/color"
)

// NumLevels is the number of distinct pixel levels.
const NumLevels = 64

// Mask selects the bits of a level that reach the output.
const Mask = NumLevels - 1

// component intensities for the high and low bits of a colour component
const (
	highBit = 170
	lowBit  = 85
)

// Palette is the colour of every level. The index of a colour is its level.
var Palette color.Palette

func init() {
	Palette = make(color.Palette, NumLevels)
	for l := range NumLevels {
		Palette[l] = RGB(uint8(l))
	}
}

func component(bits uint8) uint8 {
	var v uint8
	if bits&0b10 == 0b10 {
		v += highBit
	}
	if bits&0b01 == 0b01 {
		v += lowBit
	}
	return v
}

// RGB returns the colour of the level. Bits above the six level bits are
// ignored.
func RGB(level uint8) color.RGBA {
	level &= Mask
	return color.RGBA{
		R: component(level),
		G: component(level >> 2),
		B: component(level >> 4),
		A: 0xff,
	}
}

// Nearest returns the level with the colour closest to c.
func Nearest(c color.Color) uint8 {
	return uint8(Palette.Index(c))
}

// Level builds a level from two bit components. Values above three are
// clamped.
func Level(r, g, b uint8) uint8 {
	return min(b, 3)<<4 | min(g, 3)<<2 | min(r, 3)
}
