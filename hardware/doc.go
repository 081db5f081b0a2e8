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

// Package hardware is the base package for the signal simulation. It and its
// sub-packages contain everything required to generate the video signal
// without a display.
//
// The Board type is the root of the simulation and contains references to all
// the sub-systems of the microcontroller. Once booted the board can either be
// run continuously (with an optional callback to check for continuation) or
// it can be stepped one master clock tick at a time.
//
// Every tick of the master clock is processed in the same order:
//
//	1. the vertical timer
//	2. the horizontal master timer
//	3. the pixel timer, whose data requests are serviced by the DMA channel
//	   immediately, writing the output port
//	4. the processor: interrupt entry, the running handler or the idle context
//	5. the signal sample is sent to every attached sink
//
// The order is significant. A level written by the DMA channel on a tick is
// visible in the sample for the same tick.
package hardware
