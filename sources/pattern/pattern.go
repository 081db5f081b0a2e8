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

// Package pattern contains frame sources that are drawn rather than loaded.
// They need no files and so are the sources used for testing the signal.
package pattern

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/beamrace/beamrace/palette"
	"github.com/beamrace/beamrace/sources/convert"
)

// Solid is a frame source that sets every pixel to the same level.
type Solid struct {
	levels []uint8
}

// NewSolid is the preferred method of initialisation for the Solid type.
func NewSolid(width, height int, level uint8) *Solid {
	s := &Solid{
		levels: make([]uint8, width*height),
	}
	for i := range s.levels {
		s.levels[i] = level & palette.Mask
	}
	return s
}

// Frame implements the scheduler.FrameSource interface.
func (s *Solid) Frame(_ int) ([]uint8, error) {
	return s.levels, nil
}

// the colours of the bars, left to right, in the order of a broadcast test
// card
var bars = []uint8{
	palette.Level(3, 3, 3),
	palette.Level(3, 3, 0),
	palette.Level(0, 3, 3),
	palette.Level(0, 3, 0),
	palette.Level(3, 0, 3),
	palette.Level(3, 0, 0),
	palette.Level(0, 0, 3),
	palette.Level(0, 0, 0),
}

// Bars is a test card. Vertical colour bars above a ramp of every level.
type Bars struct {
	levels []uint8
}

// NewBars is the preferred method of initialisation for the Bars type.
func NewBars(width, height int) *Bars {
	dc := gg.NewContext(width, height)

	barHeight := float64(height) * 3 / 4
	barWidth := float64(width) / float64(len(bars))
	for i, l := range bars {
		dc.SetColor(palette.RGB(l))
		dc.DrawRectangle(math.Round(float64(i)*barWidth), 0, math.Ceil(barWidth), barHeight)
		dc.Fill()
	}

	// every level in order along the bottom of the card
	stepWidth := float64(width) / palette.NumLevels
	for l := range palette.NumLevels {
		dc.SetColor(palette.RGB(uint8(l)))
		dc.DrawRectangle(float64(l)*stepWidth, barHeight, math.Max(stepWidth, 1), float64(height)-barHeight)
		dc.Fill()
	}

	return &Bars{
		levels: convert.Levels(dc.Image()),
	}
}

// Frame implements the scheduler.FrameSource interface.
func (b *Bars) Frame(_ int) ([]uint8, error) {
	return b.levels, nil
}

// Bounce is a ball moving across a grid. Every frame is different, which
// makes it easy to see a frame that was not rendered in time.
type Bounce struct {
	dc *gg.Context
}

// NewBounce is the preferred method of initialisation for the Bounce type.
func NewBounce(width, height int) *Bounce {
	return &Bounce{
		dc: gg.NewContext(width, height),
	}
}

// Frame implements the scheduler.FrameSource interface.
func (b *Bounce) Frame(n int) ([]uint8, error) {
	w := float64(b.dc.Width())
	h := float64(b.dc.Height())
	r := h / 8

	b.dc.SetColor(palette.RGB(palette.Level(0, 0, 1)))
	b.dc.Clear()

	b.dc.SetColor(palette.RGB(palette.Level(0, 1, 2)))
	b.dc.SetLineWidth(1)
	for x := 0.0; x < w; x += 10 {
		b.dc.DrawLine(x+0.5, 0, x+0.5, h)
	}
	for y := 0.0; y < h; y += 10 {
		b.dc.DrawLine(0, y+0.5, w, y+0.5)
	}
	b.dc.Stroke()

	// position of the ball follows a triangle wave on each axis
	tri := func(n int, span float64) float64 {
		p := math.Mod(float64(n), 2*span)
		if p > span {
			p = 2*span - p
		}
		return p
	}
	x := r + tri(n, w-2*r)
	y := r + tri(n*2/3, h-2*r)

	b.dc.SetColor(palette.RGB(palette.Level(3, 2, 0)))
	b.dc.DrawCircle(x, y, r)
	b.dc.Fill()

	return convert.Levels(b.dc.Image()), nil
}
