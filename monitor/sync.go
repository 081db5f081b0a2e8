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

package monitor

import (
	"github.com/beamrace/beamrace/hardware/timing"
)

// syncDetector finds the polarity and the leading edge of a sync signal. The
// polarity is not known until one complete run of each level has been seen.
// The active level is the shorter of the two.
type syncDetector struct {
	started bool
	level   bool

	// the first run is never complete because it started before the
	// detector did
	partial bool
	run     int

	highRun int
	lowRun  int

	known  bool
	active bool

	// the length of the most recent complete active run
	width int
}

// sample returns true on the first tick of the active level.
func (d *syncDetector) sample(level bool) bool {
	if !d.started {
		d.started = true
		d.partial = true
		d.level = level
		d.run = 1
		return false
	}

	if level == d.level {
		d.run++
		return false
	}

	prev := d.level
	if !d.partial {
		if prev {
			d.highRun = d.run
		} else {
			d.lowRun = d.run
		}
	}
	d.partial = false

	if !d.known && d.highRun > 0 && d.lowRun > 0 {
		d.known = true
		d.active = d.highRun < d.lowRun
	}

	if d.known && prev == d.active {
		d.width = d.run
	}

	d.level = level
	d.run = 1

	return d.known && level == d.active
}

func (d *syncDetector) polarity() timing.Polarity {
	if d.active {
		return timing.Positive
	}
	return timing.Negative
}
