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

// Package peripherals implements the on-chip peripherals of the simulated
// microcontroller that take part in generating the video signal: the
// counter/comparator timers, a DMA channel, a GPIO output port and the nested
// vectored interrupt controller.
//
// The peripherals are modelled on the STM32F0 family. Register level detail
// is not reproduced. Instead each peripheral has methods that correspond to
// the operations the firmware performs on it. Behaviour that matters to the
// timing of the signal is reproduced exactly: when a compare event happens,
// when a trigger propagates to a slave timer and when a DMA transfer reaches
// the output port.
//
// Components that reprogram peripherals while the signal is running depend
// on the narrow interfaces in this file and not on the concrete types. This
// allows them to be tested with fakes.
package peripherals

// Counter is the current value of a free-running counter.
type Counter interface {
	Count() uint32
}

// RequestGate enables and disables the data requests a timer sends to a
// transfer engine.
type RequestGate interface {
	EnableRequests()
	DisableRequests()
	RequestsEnabled() bool
}

// TransferEngine is an autonomous memory to peripheral copier. The source
// address and the configuration must only be changed while the engine is
// disabled.
type TransferEngine interface {
	Configure(count int, circular bool, increment bool) error
	Enable()
	Disable()
	Enabled() bool
	SetSource(addr uint32) error
	Source() uint32
}

// OutputPort is a parallel output port.
type OutputPort interface {
	Write(level uint8)
	Level() uint8
}

// Memory is read by a TransferEngine.
type Memory interface {
	Read(addr uint32) uint8
}
