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

package raster

import (
	"github.com/beamrace/beamrace/hardware/peripherals"
	"github.com/beamrace/beamrace/hardware/timing"
)

// Vertical is the vertical timing generator. The counter runs at the master
// clock rate for the whole of the frame, which is why it must be 32 bits wide.
// Dividing the counter with the prescaler would count lines directly but
// the prescaler phase would then be unrelated to the horizontal counter.
type Vertical struct {
	profile timing.Profile
	counter *peripherals.Timer

	onFrameComplete func()
}

// NewVertical is the preferred method of initialisation for the Vertical
// type. The timer should be in its reset state.
func NewVertical(profile timing.Profile, counter *peripherals.Timer) *Vertical {
	v := &Vertical{
		profile: profile,
		counter: counter,
	}

	counter.OnInterrupt(func(ch int) {
		if ch == chanEvent && v.onFrameComplete != nil {
			v.onFrameComplete()
		}
	})

	return v
}

// OnFrameComplete sets the function called when the frame event occurs.
func (v *Vertical) OnFrameComplete(f func()) {
	v.onFrameComplete = f
}

// Configure the timer. The timer is not started.
func (v *Vertical) Configure() {
	p := v.profile
	v.counter.Reset()

	v.counter.SetAutoReload(uint32(p.FrameTicks() - 1))

	if p.Vertical.Polarity == timing.Positive {
		v.counter.SetChannelMode(chanSync, peripherals.PWM1, true)
	} else {
		v.counter.SetChannelMode(chanSync, peripherals.PWM2, true)
	}
	v.counter.SetCompare(chanSync, uint32(p.LineTick(p.Vertical.Sync)))

	// frame event on the first tick after the last visible line
	v.counter.SetCompare(chanEvent, uint32(p.LineTick(p.Vertical.VisibleEnd())))
	v.counter.SetChannelInterrupt(chanEvent, true)
}

// Start the timer. The skew is the number of ticks that the vertical counter
// is ahead of the horizontal counter.
func (v *Vertical) Start(skew int) {
	v.counter.SetCount(uint32(skew % v.profile.FrameTicks()))
	v.counter.Start()
}

// Step the timer by one tick of the master clock.
func (v *Vertical) Step() {
	v.counter.Step()
}

// VSync is the level of the vertical sync output.
func (v *Vertical) VSync() bool {
	return v.counter.Output(chanSync)
}

// Line is the current line of the frame.
func (v *Vertical) Line() int {
	return int(v.counter.Count()) / v.profile.LineTicks()
}
