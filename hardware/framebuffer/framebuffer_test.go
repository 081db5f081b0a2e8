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

package framebuffer_test

import (
	"testing"

	"github.com/beamrace/beamrace/hardware/framebuffer"
	"github.com/beamrace/beamrace/test"
)

func TestTerminatingColumn(t *testing.T) {
	fb := framebuffer.NewFrameBuffer(80, 60)
	test.ExpectSuccess(t, fb.Terminated())
	test.ExpectEquality(t, fb.Stride(), 81)

	// fill every pixel with every possible method of writing
	full := make([]uint8, 200)
	for i := range full {
		full[i] = 0xff
	}
	for y := range 60 {
		fb.SetRow(y, full)
		for x := -1; x <= 81; x++ {
			fb.Set(x, y, 0xff)
		}
	}

	test.ExpectSuccess(t, fb.Terminated())
	for y := range 60 {
		r := fb.Row(y)
		test.ExpectEquality(t, len(r), 81)
		test.ExpectEquality(t, r[79], uint8(0xff), y)
		test.ExpectEquality(t, r[80], uint8(0), y)
		test.ExpectEquality(t, fb.Read(fb.RowAddress(y)+80), uint8(0), y)
	}

	fb.Clear()
	test.ExpectEquality(t, fb.Get(10, 10), uint8(0))
	test.ExpectSuccess(t, fb.Terminated())
}

func TestAddressing(t *testing.T) {
	fb := framebuffer.NewFrameBuffer(4, 3)
	fb.Set(2, 1, 7)
	test.ExpectEquality(t, fb.RowAddress(1), uint32(5))
	test.ExpectEquality(t, fb.Read(7), uint8(7))
	test.ExpectEquality(t, fb.Get(2, 1), uint8(7))

	// short rows leave the remaining pixels untouched
	fb.SetRow(2, []uint8{1, 2})
	test.ExpectEquality(t, fb.Get(1, 2), uint8(2))
	test.ExpectEquality(t, fb.Get(2, 2), uint8(0))

	// out of range reads are zero
	test.ExpectEquality(t, fb.Read(1000), uint8(0))
	test.ExpectEquality(t, fb.Get(0, 3), uint8(0))
}
