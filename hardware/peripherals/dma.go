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

package peripherals

import (
	"fmt"

	"github.com/beamrace/beamrace/curated"
)

// Sentinel errors returned by the DMA channel.
const (
	LiveReprogram = "dma: %s: source changed while channel is enabled"
	LiveConfigure = "dma: %s: configured while channel is enabled"
)

// DMAChannel is one channel of the DMA controller, configured for memory to
// peripheral transfers. Each request from the peripheral (a timer in this
// case) copies one byte from memory to the output port.
//
// Changing the source address (CMAR) of an enabled channel is not allowed by
// the hardware. In the real part the write is ignored or, depending on timing,
// half applied. Here the write is refused and counted so that a test can
// assert that it never happens.
type DMAChannel struct {
	label string
	mem   Memory
	port  OutputPort

	source    uint32
	count     int
	circular  bool
	increment bool

	enabled   bool
	index     uint32
	remaining int

	// total number of transfers made and the number of refused writes to an
	// enabled channel
	Transfers  uint64
	Violations int
}

// NewDMAChannel is the preferred method of initialisation for the DMAChannel
// type.
func NewDMAChannel(label string, mem Memory, port OutputPort) *DMAChannel {
	return &DMAChannel{
		label: label,
		mem:   mem,
		port:  port,
	}
}

func (d *DMAChannel) String() string {
	return fmt.Sprintf("%s: src=%#04x idx=%d/%d enabled=%v", d.label, d.source, d.index, d.count, d.enabled)
}

// Configure sets the number of transfers (CNDTR), circular mode (CIRC) and
// memory increment (MINC). The channel must be disabled.
func (d *DMAChannel) Configure(count int, circular bool, increment bool) error {
	if d.enabled {
		d.Violations++
		return curated.Errorf(LiveConfigure, d.label)
	}
	d.count = count
	d.circular = circular
	d.increment = increment
	return nil
}

// SetSource implements the TransferEngine interface.
func (d *DMAChannel) SetSource(addr uint32) error {
	if d.enabled {
		d.Violations++
		return curated.Errorf(LiveReprogram, d.label)
	}
	d.source = addr
	return nil
}

// Source implements the TransferEngine interface.
func (d *DMAChannel) Source() uint32 {
	return d.source
}

// Enable implements the TransferEngine interface. Enabling the channel
// reloads the transfer count and starts again from the source address.
func (d *DMAChannel) Enable() {
	if d.enabled {
		return
	}
	d.enabled = true
	d.index = 0
	d.remaining = d.count
}

// Disable implements the TransferEngine interface.
func (d *DMAChannel) Disable() {
	d.enabled = false
}

// Enabled implements the TransferEngine interface.
func (d *DMAChannel) Enabled() bool {
	return d.enabled
}

// Request is called by the peripheral that triggers the transfers.
func (d *DMAChannel) Request() {
	if !d.enabled || d.remaining == 0 {
		return
	}

	d.port.Write(d.mem.Read(d.source + d.index))
	d.Transfers++

	if d.increment {
		d.index++
	}
	d.remaining--

	// in circular mode the count and the address are reloaded automatically
	// so that the same block is sent again on the next run of requests
	if d.remaining == 0 && d.circular {
		d.index = 0
		d.remaining = d.count
	}
}
