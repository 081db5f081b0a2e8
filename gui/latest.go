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
	"sync"

	"github.com/beamrace/beamrace/monitor"
)

// Latest holds a copy of the most recent frame. Frames that arrive before the
// previous one has been taken replace it.
type Latest struct {
	crit   sync.Mutex
	number int
	levels []uint8
	fresh  bool

	// number of frames replaced before they were taken
	Skipped int
}

// Put a copy of the frame.
func (l *Latest) Put(f monitor.Frame) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if l.fresh {
		l.Skipped++
	}
	if len(l.levels) != len(f.Levels) {
		l.levels = make([]uint8, len(f.Levels))
	}
	copy(l.levels, f.Levels)
	l.number = f.Number
	l.fresh = true
}

// Take copies the frame into dst if there is a frame that has not been taken.
// Returns the frame number and true if it did.
func (l *Latest) Take(dst []uint8) (int, bool) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if !l.fresh {
		return 0, false
	}
	copy(dst, l.levels)
	l.fresh = false
	return l.number, true
}
