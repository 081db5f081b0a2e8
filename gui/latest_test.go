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

package gui_test

import (
	"testing"

	"github.com/beamrace/beamrace/gui"
	"github.com/beamrace/beamrace/monitor"
	"github.com/beamrace/beamrace/test"
)

func TestLatest(t *testing.T) {
	var l gui.Latest
	dst := make([]uint8, 4)

	_, ok := l.Take(dst)
	test.ExpectEquality(t, ok, false)

	src := []uint8{1, 2, 3, 4}
	l.Put(monitor.Frame{Number: 7, Levels: src})

	// the frame is copied
	src[0] = 99

	n, ok := l.Take(dst)
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, n, 7)
	test.ExpectEquality(t, dst[0], uint8(1))

	_, ok = l.Take(dst)
	test.ExpectEquality(t, ok, false)

	l.Put(monitor.Frame{Number: 8, Levels: src})
	l.Put(monitor.Frame{Number: 9, Levels: src})
	n, _ = l.Take(dst)
	test.ExpectEquality(t, n, 9)
	test.ExpectEquality(t, l.Skipped, 1)
}

func TestSend(t *testing.T) {
	ch := make(chan gui.Event, 1)
	gui.Send(ch, gui.EventQuit{})
	gui.Send(ch, gui.EventQuit{})
	test.ExpectEquality(t, len(ch), 1)
	gui.Send(nil, gui.EventQuit{})
}

func TestToRGBA(t *testing.T) {
	dst := make([]byte, 2*gui.PixelDepth)
	gui.ToRGBA(dst, []uint8{0x00, 0x3f})
	test.ExpectEquality(t, dst[0], byte(0))
	test.ExpectEquality(t, dst[3], byte(0xff))
	test.ExpectEquality(t, dst[4], byte(0xff))
	test.ExpectEquality(t, dst[5], byte(0xff))
	test.ExpectEquality(t, dst[6], byte(0xff))
}
