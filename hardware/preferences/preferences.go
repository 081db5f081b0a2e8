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

// Package preferences holds the tunable values of the simulated hardware.
// These are the properties of the microcontroller that the timing profile does
// not describe: propagation and interrupt latencies, and how many CPU cycles
// the interrupt handlers and the frame render take.
//
// The default values reproduce a Cortex-M0 class part running from flash with
// no wait states.
package preferences

import (
	"fmt"
	"strings"

	"github.com/beamrace/beamrace/prefs"
)

// Default values for the preferences.
const (
	DefaultTriggerLatency      = 7
	DefaultInterruptLatency    = 36
	DefaultStartSkew           = 2
	DefaultLineHandlerCycles   = 60
	DefaultFrameHandlerCycles  = 20
	DefaultRenderCyclesPerByte = 4
)

// Preferences defines and collates all the preference values used by the
// simulated hardware.
type Preferences struct {
	group *prefs.Group

	// master clock ticks between a trigger output of one timer and the first
	// data request of the slave timer it starts
	TriggerLatency prefs.Int

	// master clock ticks between a peripheral raising an interrupt and the
	// first effect of the handler
	InterruptLatency prefs.Int

	// master clock ticks that the vertical counter is ahead of the horizontal
	// counter. the counters are enabled by consecutive instructions and so
	// can never start at exactly the same time
	StartSkew prefs.Int

	// CPU cycles consumed by the interrupt handlers. the idle context does not
	// progress while a handler is running
	LineHandlerCycles  prefs.Int
	FrameHandlerCycles prefs.Int

	// CPU cycles needed to copy one byte from the frame source into the frame
	// buffer. a value of zero copies the entire frame in one cycle
	RenderCyclesPerByte prefs.Int
}

func (p *Preferences) String() string {
	s := &strings.Builder{}
	p.group.Write(s)
	return s.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		group: prefs.NewGroup(),
	}

	p.TriggerLatency.SetRange(0, 64)
	p.InterruptLatency.SetRange(0, 512)
	p.StartSkew.SetRange(0, 4096)
	p.LineHandlerCycles.SetRange(0, 1024)
	p.FrameHandlerCycles.SetRange(0, 1024)
	p.RenderCyclesPerByte.SetRange(0, 4096)

	p.SetDefaults()

	for k, v := range map[string]prefs.Pref{
		"hardware.triggerlatency":      &p.TriggerLatency,
		"hardware.interruptlatency":    &p.InterruptLatency,
		"hardware.startskew":           &p.StartSkew,
		"hardware.linehandlercycles":   &p.LineHandlerCycles,
		"hardware.framehandlercycles":  &p.FrameHandlerCycles,
		"hardware.rendercyclesperbyte": &p.RenderCyclesPerByte,
	} {
		if err := p.group.Add(k, v); err != nil {
			return nil, fmt.Errorf("preferences: %w", err)
		}
	}

	// values on the command line stack override the defaults
	if err := p.group.ApplyCommandLine(); err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.TriggerLatency.Set(DefaultTriggerLatency)
	p.InterruptLatency.Set(DefaultInterruptLatency)
	p.StartSkew.Set(DefaultStartSkew)
	p.LineHandlerCycles.Set(DefaultLineHandlerCycles)
	p.FrameHandlerCycles.Set(DefaultFrameHandlerCycles)
	p.RenderCyclesPerByte.Set(DefaultRenderCyclesPerByte)
}
