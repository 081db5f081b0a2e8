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

package text_test

import (
	"bytes"
	"testing"

	"github.com/beamrace/beamrace/sources/text"
	"github.com/beamrace/beamrace/test"
)

func count(l []uint8, level uint8) int {
	var n int
	for _, v := range l {
		if v == level {
			n++
		}
	}
	return n
}

func TestStatic(t *testing.T) {
	txt, err := text.NewText("HELLO", 80, 60, 0x3f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, txt.Scrolls(), false)

	a, err := txt.Frame(0)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(a), 80*60)
	test.ExpectSuccess(t, count(a, 0x3f) > 0)

	// only the two levels are used
	test.ExpectEquality(t, count(a, 0x3f)+count(a, 0), 80*60)

	a = bytes.Clone(a)
	b, _ := txt.Frame(100)
	test.ExpectSuccess(t, bytes.Equal(a, b))
}

func TestMultiLine(t *testing.T) {
	_, err := text.NewText(`ONE\nTWO\nTHREE`, 80, 60, 0x3f)
	test.ExpectSuccess(t, err)

	// five lines of 13 pixels are taller than the frame
	_, err = text.NewText("1\n2\n3\n4\n5", 80, 60, 0x3f)
	test.ExpectFailure(t, err)
}

func TestScroll(t *testing.T) {
	txt, err := text.NewText("THIS LINE IS TOO WIDE", 80, 60, 0x3f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, txt.Scrolls(), true)

	// the text starts outside of the frame
	a, _ := txt.Frame(0)
	test.ExpectEquality(t, count(a, 0x3f), 0)

	a, _ = txt.Frame(40)
	a = bytes.Clone(a)
	test.ExpectSuccess(t, count(a, 0x3f) > 0)

	b, _ := txt.Frame(41)
	test.ExpectSuccess(t, !bytes.Equal(a, b))
}
