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

package monitor

import (
	"fmt"
)

// Frame is a decoded frame. The levels are stored row by row, Width levels per
// row, with no terminator.
type Frame struct {
	Number int
	Width  int
	Height int
	Levels []uint8
}

func (f Frame) String() string {
	return fmt.Sprintf("frame %d (%dx%d)", f.Number, f.Width, f.Height)
}

// At returns the level of the pixel at x, y.
func (f Frame) At(x, y int) uint8 {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return 0
	}
	return f.Levels[y*f.Width+x]
}

// Renderer implementations display, or otherwise work with, the frames
// decoded by the monitor.
//
// The Levels slice of the Frame is reused by the monitor. Implementations must
// copy the levels if they are needed after NewFrame() has returned.
type Renderer interface {
	NewFrame(Frame) error

	// some renderers may need to conclude and/or dispose of resources gently.
	// for simplicity, the Renderer should be considered unusable after
	// EndRendering() has been called
	EndRendering() error
}
