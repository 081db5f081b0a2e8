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

// Package raw is a frame source that reads levels directly from a file. The
// file is exactly width*height bytes, one level per byte, row after row. This
// is the format written by the CONVERT mode.
package raw

import (
	"io"
	"os"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/palette"
)

// Raw implements the scheduler.FrameSource interface.
type Raw struct {
	levels []uint8
}

// Load levels from the named file.
func Load(filename string, width, height int) (*Raw, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("raw: %v", err)
	}
	if len(b) != width*height {
		return nil, curated.Errorf("raw: %s is %d bytes (expected %d)", filename, len(b), width*height)
	}

	// levels only use the lower six bits
	for i := range b {
		b[i] &= palette.Mask
	}

	return &Raw{levels: b}, nil
}

// Frame implements the scheduler.FrameSource interface.
func (r *Raw) Frame(_ int) ([]uint8, error) {
	return r.levels, nil
}

// Write levels in the format expected by Load().
func Write(w io.Writer, levels []uint8) error {
	if _, err := w.Write(levels); err != nil {
		return curated.Errorf("raw: %v", err)
	}
	return nil
}
