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
	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/hardware/framebuffer"
	"github.com/beamrace/beamrace/hardware/peripherals"
)

// Sentinel error returned by Streamer.Retarget() if the streamer has not been
// halted.
const LiveRetarget = "scanout: retarget to row %d while streaming"

// Streamer is the pixel streamer. It sends one row of the frame buffer to the
// output port, one byte per pixel request, and repeats the row until it is
// retargeted.
type Streamer struct {
	fb     *framebuffer.FrameBuffer
	engine peripherals.TransferEngine
	gate   peripherals.RequestGate

	// number of refused Retarget() calls
	Violations int
}

// NewStreamer is the preferred method of initialisation for the Streamer
// type.
func NewStreamer(fb *framebuffer.FrameBuffer, engine peripherals.TransferEngine, gate peripherals.RequestGate) *Streamer {
	return &Streamer{
		fb:     fb,
		engine: engine,
		gate:   gate,
	}
}

// Configure the transfer engine to send Width+1 bytes from the first row of
// the frame buffer, repeating. The streamer is left halted.
func (s *Streamer) Configure() error {
	s.Halt()
	if err := s.engine.Configure(s.fb.Width()+1, true, true); err != nil {
		return err
	}
	return s.engine.SetSource(s.fb.RowAddress(0))
}

// Halt stops the pixel requests and then the transfer engine.
func (s *Streamer) Halt() {
	s.gate.DisableRequests()
	s.engine.Disable()
}

// Retarget the transfer engine to the row. The streamer must be halted.
func (s *Streamer) Retarget(row int) error {
	if s.engine.Enabled() || s.gate.RequestsEnabled() {
		s.Violations++
		return curated.Errorf(LiveRetarget, row)
	}
	return s.engine.SetSource(s.fb.RowAddress(row))
}

// Resume enables the transfer engine and then the pixel requests.
func (s *Streamer) Resume() {
	s.engine.Enable()
	s.gate.EnableRequests()
}

// Streaming returns true if both the transfer engine and the pixel requests
// are enabled.
func (s *Streamer) Streaming() bool {
	return s.engine.Enabled() && s.gate.RequestsEnabled()
}

// Halted returns true if both the transfer engine and the pixel requests are
// disabled.
func (s *Streamer) Halted() bool {
	return !s.engine.Enabled() && !s.gate.RequestsEnabled()
}
