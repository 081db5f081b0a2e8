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

package scheduler

import (
	"github.com/beamrace/beamrace/hardware/framebuffer"
)

// render is a copy from the frame source into the frame buffer that can be
// spread over many processor cycles. bytes are copied in scan-out order, so
// the top row of the new frame is complete first.
type render struct {
	fb     *framebuffer.FrameBuffer
	levels []uint8
	idx    int
	credit int

	// tick of the frame interrupt this render belongs to
	eventTick uint64
}

// step is called once per processor cycle. a cost of zero or less copies
// everything in one cycle. returns true when the render is complete.
func (r *render) step(cost int) bool {
	w := r.fb.Width()
	n := w * r.fb.Height()

	if cost <= 0 {
		for y := range r.fb.Height() {
			r.fb.SetRow(y, r.levels[y*w:(y+1)*w])
		}
		r.idx = n
		return true
	}

	r.credit++
	if r.credit >= cost {
		r.credit = 0
		r.fb.Set(r.idx%w, r.idx/w, r.levels[r.idx])
		r.idx++
	}

	return r.idx >= n
}
