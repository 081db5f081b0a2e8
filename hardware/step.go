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

package hardware

import (
	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/hardware/signal"
)

// Step the board by one tick of the master clock.
func (b *Board) Step() error {
	if !b.booted {
		return curated.Errorf(NotBooted)
	}

	// timers. the pixel timer is stepped by the horizontal generator after
	// the master so that a trigger on this tick is seen by the slave
	b.Vertical.Step()
	b.Horizontal.Step()

	// processor
	b.Core.Step()

	b.sample = signal.Sample{
		HSync: b.Horizontal.HSync(),
		VSync: b.Vertical.VSync(),
		Level: b.Port.Level(),
	}

	for _, s := range b.sinks {
		if err := s.Signal(b.sample); err != nil {
			return curated.Errorf(SinkError, err)
		}
	}

	b.ticks++

	return nil
}

// StepLine steps the board until the start of the next line of the master
// timer.
func (b *Board) StepLine() error {
	n := b.Profile.LineTicks() - b.Horizontal.Position()
	for range n {
		if err := b.Step(); err != nil {
			return err
		}
	}
	return nil
}
