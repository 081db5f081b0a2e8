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

package termmonitor

import (
	"fmt"
	"io"

	"github.com/beamrace/beamrace/palette"
)

// each character cell shows two pixels, one above the other. the top pixel
// is the foreground colour and the bottom pixel is the background colour
const halfBlock = "▀"

// Draw levels to the writer using 24 bit colour control sequences. The frame
// is drawn from the top left corner of the terminal and is reduced to fit
// inside cols by rows character cells if necessary.
func Draw(w io.Writer, levels []uint8, width, height int, cols, rows int) error {
	outW := min(width, cols)
	outH := min((height+1)/2, rows)
	if outW <= 0 || outH <= 0 {
		return nil
	}

	pixel := func(x, y int) uint8 {
		if y >= height {
			return 0
		}
		return levels[y*width+x]
	}

	var fg, bg int = -1, -1

	for cy := range outH {
		if _, err := fmt.Fprintf(w, "\x1b[%d;1H", cy+1); err != nil {
			return err
		}

		// the top and bottom pixel of the cell in the frame
		ty := (2 * cy) * height / (2 * outH)
		by := (2*cy + 1) * height / (2 * outH)
		if outH*2 > height {
			ty = 2 * cy
			by = 2*cy + 1
		}

		for cx := range outW {
			x := cx * width / outW
			t := int(pixel(x, ty))
			b := int(pixel(x, by))

			if t != fg {
				c := palette.RGB(uint8(t))
				fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
				fg = t
			}
			if b != bg {
				c := palette.RGB(uint8(b))
				fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
				bg = b
			}

			if _, err := io.WriteString(w, halfBlock); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "\x1b[0m")
	return err
}
