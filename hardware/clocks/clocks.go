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

// Package clocks defines the master clock of the simulated microcontroller
// and the Configurator interface that locks the clock at boot.
//
// Every timing value in the timing package is an integer number of master
// clock ticks. The frequency of the clock only matters when a tick count is
// converted to real time, which is what a display does when it measures the
// line and frame rates of the signal.
package clocks

import (
	"fmt"
)

// Frequencies in Hz.
const (
	// the internal RC oscillator. the part runs from this clock after reset
	// and until a PLL has locked
	HSI = 8_000_000.0

	// the highest system clock the part supports
	MaxSysclk = 48_000_000.0

	// pixel clocks for the build-time timing profiles
	SVGA = 40_000_000.0
	VGA  = 25_175_000.0
)

// Configurator is implemented by types that set up the master clock. Configure
// must be called before any timer is armed.
type Configurator interface {
	Configure() error
	Locked() bool
	Hz() float64
}

// PLL is a phase locked loop driven from the internal oscillator. It fails to
// lock if asked for a frequency outside of the supported range, in which case
// the system clock remains at HSI.
type PLL struct {
	target float64
	locked bool
}

// NewPLL is the preferred method of initialisation for the PLL type.
func NewPLL(target float64) *PLL {
	return &PLL{
		target: target,
	}
}

func (p *PLL) String() string {
	if p.locked {
		return fmt.Sprintf("PLL locked at %.3fMHz", p.target/1e6)
	}
	return fmt.Sprintf("PLL unlocked (running at %.3fMHz)", HSI/1e6)
}

// Configure implements the Configurator interface. A PLL that fails to lock is
// not an error. The part silently continues on the internal oscillator.
func (p *PLL) Configure() error {
	p.locked = p.target > HSI && p.target <= MaxSysclk
	return nil
}

// Locked implements the Configurator interface.
func (p *PLL) Locked() bool {
	return p.locked
}

// Hz implements the Configurator interface.
func (p *PLL) Hz() float64 {
	if p.locked {
		return p.target
	}
	return HSI
}
