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

// Package gui defines the Display interface, implemented by the windows and
// terminals that show the decoded frames to the user. The implementations are
// in sub-packages.
//
// A Display is a monitor.Renderer and so receives frames from the goroutine
// running the board. Presenting a frame is done in Service(), which is called
// from the main thread. Many graphics libraries (notably SDL) require that.
// The Latest type hands a frame from one to the other.
package gui

import (
	"io"

	"github.com/beamrace/beamrace/monitor"
)

// Display is the interface to all visual user interfaces.
type Display interface {
	monitor.Renderer

	// Service presents the most recent frame and handles user input. It must
	// not block for longer than necessary. MUST ONLY be called from the
	// #mainthread
	Service()

	// Destroy the display and release all resources. Errors are written to
	// the output.
	Destroy(output io.Writer)

	// SetFeature requests a change to the display.
	SetFeature(request FeatureReq, args ...FeatureReqData) error
}

// Sentinel error returned if the display does not support the requested
// feature.
const (
	UnsupportedGuiFeature = "unsupported gui feature: %v"
)
