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

package convert_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/beamrace/beamrace/palette"
	"github.com/beamrace/beamrace/sources/convert"
	"github.com/beamrace/beamrace/test"
)

func TestLevels(t *testing.T) {
	levels := make([]uint8, 8*4)
	for i := range levels {
		levels[i] = uint8(i)
	}
	img := convert.Image(levels, 8, 4)
	test.ExpectEquality(t, string(convert.Levels(img)), string(levels))
}

func TestScale(t *testing.T) {
	// a uniform image stays uniform at any size
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	l := convert.Scale(src, 80, 60)
	test.DemandEquality(t, len(l), 80*60)
	for i := range l {
		test.DemandEquality(t, l[i], uint8(palette.Mask), i)
	}

	// left half red and right half blue
	for y := range 480 {
		for x := range 640 {
			if x < 320 {
				src.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
			} else {
				src.Set(x, y, color.RGBA{B: 0xff, A: 0xff})
			}
		}
	}
	l = convert.Scale(src, 80, 60)
	test.ExpectEquality(t, l[0], palette.Level(3, 0, 0))
	test.ExpectEquality(t, l[79], palette.Level(0, 0, 3))
}
