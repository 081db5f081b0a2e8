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

package test_test

import (
	"errors"
	"testing"

	"github.com/beamrace/beamrace/test"
)

func TestExpect(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectFailure(t, false)

	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)

	err = errors.New("test")
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, 10, 10)
	test.ExpectInequality(t, "a", "b")
	test.ExpectApproximate(t, 99.5, 100, 0.01)
}

func TestCompareWriter(t *testing.T) {
	tw := &test.CompareWriter{}
	test.ExpectSuccess(t, tw.Compare(""))
	test.ExpectEquality(t, len(tw.Lines()), 0)

	tw.Write([]byte("hello\nworld\n"))
	test.ExpectSuccess(t, tw.Compare("hello\nworld\n"))
	test.ExpectEquality(t, len(tw.Lines()), 2)
	test.ExpectEquality(t, tw.Lines()[1], "world")

	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}
