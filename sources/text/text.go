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

// Package text is a frame source that shows lines of text in a fixed width
// bitmap font. Text that is too wide for the frame scrolls from right to left,
// one pixel every frame.
package text

import (
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/palette"
	"github.com/beamrace/beamrace/sources/convert"
)

// Text implements the scheduler.FrameSource interface.
type Text struct {
	width  int
	height int

	// the text drawn once. if the strip is wider than the frame then the
	// frame is a window onto the strip that moves with every frame
	strip      []uint8
	stripWidth int
	scrolls    bool

	levels []uint8
}

// NewText is the preferred method of initialisation for the Text type. Lines
// in the text are separated by the newline character or the two character
// sequence `\n`, which is easier to give on the command line.
func NewText(s string, width, height int, level uint8) (*Text, error) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()

	lines := strings.Split(strings.ReplaceAll(s, `\n`, "\n"), "\n")
	if len(lines)*lineHeight > height {
		return nil, curated.Errorf("text: %d lines do not fit in %d pixels", len(lines), height)
	}

	drawer := &font.Drawer{Face: face}
	textWidth := 0
	for _, l := range lines {
		textWidth = max(textWidth, drawer.MeasureString(l).Ceil())
	}

	txt := &Text{
		width:  width,
		height: height,
		levels: make([]uint8, width*height),
	}

	// a strip that scrolls has a gap the width of the frame after the text so
	// that the text leaves the frame completely before it returns
	txt.stripWidth = width
	if textWidth > width {
		txt.stripWidth = textWidth + width
		txt.scrolls = true
	}

	img := image.NewRGBA(image.Rect(0, 0, txt.stripWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(palette.RGB(0)), image.Point{}, draw.Src)

	drawer.Dst = img
	drawer.Src = image.NewUniform(palette.RGB(level & palette.Mask))

	top := (height - len(lines)*lineHeight) / 2
	for i, l := range lines {
		x := 0
		if !txt.scrolls {
			x = (width - drawer.MeasureString(l).Ceil()) / 2
		}
		drawer.Dot = fixed.P(x, top+i*lineHeight+ascent)
		drawer.DrawString(l)
	}

	txt.strip = convert.Levels(img)

	if !txt.scrolls {
		copy(txt.levels, txt.strip)
	}

	return txt, nil
}

// Scrolls returns true if the text is too wide for the frame.
func (txt *Text) Scrolls() bool {
	return txt.scrolls
}

// Frame implements the scheduler.FrameSource interface.
func (txt *Text) Frame(n int) ([]uint8, error) {
	if !txt.scrolls {
		return txt.levels, nil
	}

	// the text enters from the right edge of the frame
	start := (n + txt.stripWidth - txt.width) % txt.stripWidth
	for y := range txt.height {
		row := txt.strip[y*txt.stripWidth : (y+1)*txt.stripWidth]
		dst := txt.levels[y*txt.width : (y+1)*txt.width]
		for x := range dst {
			dst[x] = row[(start+x)%txt.stripWidth]
		}
	}

	return txt.levels, nil
}
