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

// Package framebuffer implements the memory that the video signal is read
// from.
//
// Each row of the frame buffer is one byte longer than the width of the
// picture. The extra byte is always zero and is sent to the output port after
// the last pixel of every line, so that the signal is at the blank level for
// the whole of the horizontal blanking period. No method of the FrameBuffer
// type can write to that byte.
package framebuffer

import (
	"fmt"
)

// FrameBuffer is Height rows of Width+1 bytes, stored contiguously.
type FrameBuffer struct {
	width  int
	height int
	stride int
	data   []uint8
}

// NewFrameBuffer is the preferred method of initialisation for the
// FrameBuffer type. Every byte of the new frame buffer is zero.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		stride: width + 1,
		data:   make([]uint8, (width+1)*height),
	}
}

func (fb *FrameBuffer) String() string {
	return fmt.Sprintf("%dx%d (%d bytes)", fb.width, fb.height, len(fb.data))
}

// Width of the picture in pixels.
func (fb *FrameBuffer) Width() int {
	return fb.width
}

// Height of the picture in pixels.
func (fb *FrameBuffer) Height() int {
	return fb.height
}

// Stride is the number of bytes between the start of one row and the start of
// the next.
func (fb *FrameBuffer) Stride() int {
	return fb.stride
}

// RowAddress returns the address of the first byte of the row. The address is
// suitable for use as the source of a transfer engine.
func (fb *FrameBuffer) RowAddress(y int) uint32 {
	return uint32(y * fb.stride)
}

// Read implements the peripherals.Memory interface. Reading outside of the
// frame buffer returns zero.
func (fb *FrameBuffer) Read(addr uint32) uint8 {
	if int(addr) >= len(fb.data) {
		return 0
	}
	return fb.data[addr]
}

// Set the level of a single pixel. Coordinates outside the picture are
// ignored.
func (fb *FrameBuffer) Set(x, y int, level uint8) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.data[y*fb.stride+x] = level
}

// Get the level of a single pixel. Coordinates outside the picture return
// zero.
func (fb *FrameBuffer) Get(x, y int) uint8 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0
	}
	return fb.data[y*fb.stride+x]
}

// SetRow copies the levels into the row. At most Width bytes are copied.
func (fb *FrameBuffer) SetRow(y int, levels []uint8) {
	if y < 0 || y >= fb.height {
		return
	}
	i := y * fb.stride
	copy(fb.data[i:i+fb.width], levels)
}

// Row returns a copy of the row including the terminating byte.
func (fb *FrameBuffer) Row(y int) []uint8 {
	r := make([]uint8, fb.stride)
	copy(r, fb.data[y*fb.stride:(y+1)*fb.stride])
	return r
}

// Clear sets every pixel to zero.
func (fb *FrameBuffer) Clear() {
	clear(fb.data)
}

// Terminated returns true if the terminating byte of every row is zero.
func (fb *FrameBuffer) Terminated() bool {
	for y := range fb.height {
		if fb.data[y*fb.stride+fb.width] != 0 {
			return false
		}
	}
	return true
}
