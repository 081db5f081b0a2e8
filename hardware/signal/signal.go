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

// Package signal is the interface between the simulated hardware and
// anything that observes the video output.
package signal

import (
	"fmt"
)

// Sample is the state of the video output for one tick of the master clock.
// The sync values are the electrical levels of the pins and so their meaning
// depends on the polarity of the timing profile.
type Sample struct {
	HSync bool
	VSync bool

	// level of the output port. the DAC converts the low six bits into the
	// three colour signals
	Level uint8
}

func (s Sample) String() string {
	h := "-"
	if s.HSync {
		h = "H"
	}
	v := "-"
	if s.VSync {
		v = "V"
	}
	return fmt.Sprintf("%s%s %02x", h, v, s.Level)
}

// Sink implementations receive every sample of the video output.
type Sink interface {
	Signal(Sample) error
}
