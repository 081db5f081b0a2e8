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

package qrcode_test

import (
	"strings"
	"testing"

	"github.com/beamrace/beamrace/sources/qrcode"
	"github.com/beamrace/beamrace/test"
)

func TestQRCode(t *testing.T) {
	q, err := qrcode.NewQRCode("beamrace", 80, 60, 0x3f)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, q.Scale >= 1)

	l, err := q.Frame(0)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(l), 80*60)

	// the corners of the frame are outside of the code
	test.ExpectEquality(t, l[0], uint8(0))
	test.ExpectEquality(t, l[len(l)-1], uint8(0))

	// the code has light and dark modules
	var light, dark int
	for y := range 60 {
		for x := 10; x < 70; x++ {
			if l[y*80+x] == 0x3f {
				light++
			} else {
				dark++
			}
		}
	}
	test.ExpectSuccess(t, light > 0)
	test.ExpectSuccess(t, dark > 0)
}

func TestTooLong(t *testing.T) {
	_, err := qrcode.NewQRCode(strings.Repeat("beamrace ", 50), 80, 60, 0x3f)
	test.ExpectFailure(t, err)
}
