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

// Package raster programs the two timer cascades that produce the sync
// signals of the video output and the events that the rest of the system is
// driven by.
//
// The horizontal cascade is a master timer with a period of one line and a
// slave timer with a period of one pixel. The master generates the horizontal
// sync pulse, starts the slave at the beginning of the visible region and
// raises the line interrupt at the end of the visible region. The slave sends
// Width+1 data requests, one per pixel and one for the terminating zero, and
// then stops itself.
//
// The vertical cascade is a single timer with a period of one frame. It
// generates the vertical sync pulse and raises the frame interrupt on the
// first tick after the last visible line.
package raster

// Latency compensation. These values are the result of measuring the output
// of real hardware and are tuned for the default simulation preferences.
const (
	// the slave timer is triggered this many ticks before the first pixel is
	// due. it covers the time for the trigger to reach the slave and for the
	// first transfer to reach the output port
	TriggerCompensation = 7

	// the line interrupt is raised this many ticks before the end of the
	// visible region. the handler's first instruction executes after the
	// interrupt entry latency, by which time the terminating zero has been
	// sent
	LineInterruptLead = 32

	// the slave counter value at which the pixel data request is sent
	PixelRequestPhase = 0
)

// timer channel allocation. the same allocation is used for both cascades
const (
	chanTrigger = 0
	chanSync    = 1
	chanEvent   = 2
)
