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

// Horizontal is the horizontal timing generator.
type Horizontal struct {
	profile timing.Profile
	master  *peripherals.Timer
	pixel   *peripherals.Timer

	onEndOfVisible func()
}

// NewHorizontal is the preferred method of initialisation for the Horizontal
// type. The master and pixel timers should be in their reset state.
func NewHorizontal(profile timing.Profile, master *peripherals.Timer, pixel *peripherals.Timer) *Horizontal {
	h := &Horizontal{
		profile: profile,
		master:  master,
		pixel:   pixel,
	}

	master.OnInterrupt(func(ch int) {
		if ch == chanEvent && h.onEndOfVisible != nil {
			h.onEndOfVisible()
		}
	})

	return h
}

// OnEndOfVisible sets the function called when the line event occurs.
func (h *Horizontal) OnEndOfVisible(f func()) {
	h.onEndOfVisible = f
}

// Configure both timers of the cascade. The trigger latency is the number of
// ticks it takes the pixel timer to start after the trigger from the master.
// Neither timer is started.
func (h *Horizontal) Configure(triggerLatency int) {
	p := h.profile
	h.master.Reset()
	h.pixel.Reset()

	h.master.SetAutoReload(uint32(p.Horizontal.Total - 1))

	// sync pulse on the output pin
	if p.Horizontal.Polarity == timing.Positive {
		h.master.SetChannelMode(chanSync, peripherals.PWM1, true)
	} else {
		h.master.SetChannelMode(chanSync, peripherals.PWM2, true)
	}
	h.master.SetCompare(chanSync, uint32(p.Horizontal.Sync))

	// pixel timer trigger
	h.master.SetCompare(chanTrigger, uint32(p.Horizontal.VisibleStart()-TriggerCompensation))
	h.master.SetMasterMode(peripherals.MasterComparePulse, chanTrigger)
	h.master.AddSlave(h.pixel)

	// line interrupt
	h.master.SetCompare(chanEvent, uint32(p.Horizontal.VisibleEnd()-LineInterruptLead))
	h.master.SetChannelInterrupt(chanEvent, true)

	// the pixel timer runs for Width+1 periods and then stops
	h.pixel.SetAutoReload(uint32(p.PixelClocks - 1))
	h.pixel.SetRepetition(uint32(p.Width))
	h.pixel.SetOnePulse(true)
	h.pixel.SetTriggerMode(triggerLatency)
	h.pixel.SetCompare(chanTrigger, PixelRequestPhase)
	h.pixel.SetChannelRequest(chanTrigger, true)
}

// Start the master timer.
func (h *Horizontal) Start() {
	h.master.Start()
}

// Step both timers by one tick of the master clock.
func (h *Horizontal) Step() {
	h.master.Step()
	h.pixel.Step()
}

// HSync is the level of the horizontal sync output.
func (h *Horizontal) HSync() bool {
	return h.master.Output(chanSync)
}

// Position is the number of ticks since the start of the line.
func (h *Horizontal) Position() int {
	return int(h.master.Count())
}

// Pixel returns the timer that sends the pixel data requests.
func (h *Horizontal) Pixel() *peripherals.Timer {
	return h.pixel
}
