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

package pattern_test

import (
	"testing"

	"github.com/beamrace/beamrace/palette"
	"github.com/beamrace/beamrace/sources/pattern"
	"github.com/beamrace/beamrace/test"
)

func TestSolid(t *testing.T) {
	s := pattern.NewSolid(80, 60, 0xff)
	l, err := s.Frame(0)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(l), 80*60)
	for i := range l {
		test.DemandEquality(t, l[i], uint8(palette.Mask), i)
	}
}

func TestBars(t *testing.T) {
	b := pattern.NewBars(80, 60)
	l, err := b.Frame(0)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(l), 80*60)

	// the centre of each bar. the bars are ten pixels wide
	test.ExpectEquality(t, l[5], palette.Level(3, 3, 3))
	test.ExpectEquality(t, l[15], palette.Level(3, 3, 0))
	test.ExpectEquality(t, l[75], uint8(0))

	// the ramp starts at black and ends at white
	test.ExpectEquality(t, l[59*80], uint8(0))
	test.ExpectEquality(t, l[59*80+79], uint8(palette.Mask))
}

func TestBounce(t *testing.T) {
	b := pattern.NewBounce(80, 60)
	a, err := b.Frame(0)
	test.DemandSuccess(t, err)
	a = append([]uint8{}, a...)

	c, err := b.Frame(10)
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, string(a), string(c))
}
