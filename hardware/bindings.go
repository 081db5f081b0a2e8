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
	"github.com/beamrace/beamrace/hardware/peripherals"
)

// Bindings are the peripherals of the microcontroller that the firmware uses.
// They are created once by NewBoard. Every component is given the peripherals
// it needs from the bindings when it is created, there are no register
// globals.
type Bindings struct {
	// the horizontal cascade
	Master *peripherals.Timer
	Pixel  *peripherals.Timer

	// the vertical counter. it must be a 32 bit timer
	Counter *peripherals.Timer

	DMA  *peripherals.DMAChannel
	Port *peripherals.GPIOPort
	NVIC *peripherals.NVIC
}

// NewBindings creates the peripherals. The DMA channel reads from the memory
// and writes to the output port. Requests from the pixel timer are routed to
// the DMA channel.
func NewBindings(mem peripherals.Memory, interruptLatency int) *Bindings {
	b := &Bindings{
		Master:  peripherals.NewTimer("TIM1"),
		Pixel:   peripherals.NewTimer("TIM3"),
		Counter: peripherals.NewTimer("TIM2"),
		Port:    &peripherals.GPIOPort{},
		NVIC:    peripherals.NewNVIC(interruptLatency),
	}
	b.DMA = peripherals.NewDMAChannel("DMA1_CH3", mem, b.Port)

	// the request line is fixed in silicon. there is no software involvement
	b.Pixel.OnRequest(func(_ int) {
		b.DMA.Request()
	})

	return b
}

// Violations is the number of times the DMA channel was reprogrammed while
// enabled.
func (b *Bindings) Violations() int {
	return b.DMA.Violations
}
