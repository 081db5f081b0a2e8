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

package gui

import (
	"github.com/beamrace/beamrace/palette"
)

// PixelDepth is the number of bytes for each pixel written by ToRGBA().
const PixelDepth = 4

// ToRGBA converts levels to red, green, blue and alpha bytes. The dst slice
// must be at least PixelDepth times the length of levels.
func ToRGBA(dst []byte, levels []uint8) {
	for i, l := range levels {
		c := palette.RGB(l)
		j := i * PixelDepth
		dst[j] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = 0xff
	}
}
