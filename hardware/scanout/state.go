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

package scanout

import (
	"sync/atomic"
)

// State of the scan-out. The state is shared between the two interrupt
// handlers and the idle context.
type State uint32

// List of valid State values.
//
// The line interrupt moves between Blanking and Visible. The frame interrupt
// moves from Blanking to FrameReady, and the idle context moves from
// FrameReady back to Blanking before it regenerates the frame buffer.
const (
	Blanking State = iota
	Visible
	FrameReady
)

func (s State) String() string {
	switch s {
	case Blanking:
		return "Blanking"
	case Visible:
		return "Visible"
	case FrameReady:
		return "FrameReady"
	}
	return "unknown"
}

// Tracker holds the State. Transitions are made with compare-and-swap so that
// a transition made by a preempting context is never lost. There is a single
// producer of FrameReady (the frame interrupt) and a single consumer (the
// idle context).
type Tracker struct {
	state atomic.Uint32
}

// State returns the current state.
func (t *Tracker) State() State {
	return State(t.state.Load())
}

// EnterVisible moves to the Visible state. Returns true if the previous state
// was FrameReady, meaning that the frame was never consumed.
func (t *Tracker) EnterVisible() bool {
	for {
		old := t.state.Load()
		if State(old) == Visible {
			return false
		}
		if t.state.CompareAndSwap(old, uint32(Visible)) {
			return State(old) == FrameReady
		}
	}
}

// EnterBlanking moves from Visible to Blanking. Any other state is left
// alone.
func (t *Tracker) EnterBlanking() {
	t.state.CompareAndSwap(uint32(Visible), uint32(Blanking))
}

// SignalFrameReady moves from Blanking to FrameReady. Returns false if the
// state was not Blanking.
func (t *Tracker) SignalFrameReady() bool {
	return t.state.CompareAndSwap(uint32(Blanking), uint32(FrameReady))
}

// ConsumeFrameReady moves from FrameReady to Blanking. Returns false if the
// state was not FrameReady.
func (t *Tracker) ConsumeFrameReady() bool {
	return t.state.CompareAndSwap(uint32(FrameReady), uint32(Blanking))
}
