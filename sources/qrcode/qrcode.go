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

// Package qrcode is a frame source that shows a QR code. Each module of the
// code is drawn as a square of pixels, as large as the frame buffer allows,
// in the centre of a black frame.
//
// The frame buffer is small so the amount of content that can be shown is
// limited. NewQRCode() returns an error if the code does not fit.
package qrcode

import (
	qr "github.com/skip2/go-qrcode"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/palette"
)

// QRCode implements the scheduler.FrameSource interface.
type QRCode struct {
	levels []uint8

	// the size in pixels of each module of the code
	Scale int
}

// the smallest scale that can be reliably read from a monitor
const minScale = 1

// NewQRCode is the preferred method of initialisation for the QRCode type.
func NewQRCode(content string, width, height int, level uint8) (*QRCode, error) {
	code, err := qr.New(content, qr.Low)
	if err != nil {
		return nil, curated.Errorf("qrcode: %v", err)
	}

	// the bitmap includes the quiet zone around the code
	bm := code.Bitmap()
	n := len(bm)

	scale := min(width, height) / n
	if scale < minScale {
		return nil, curated.Errorf("qrcode: content too long for %dx%d frame (%d modules)", width, height, n)
	}

	q := &QRCode{
		levels: make([]uint8, width*height),
		Scale:  scale,
	}

	left := (width - n*scale) / 2
	top := (height - n*scale) / 2
	level &= palette.Mask

	for my, row := range bm {
		for mx, set := range row {
			// modules that are set are dark. the light modules and quiet zone
			// are drawn in the requested level
			if set {
				continue
			}
			for y := range scale {
				i := (top+my*scale+y)*width + left + mx*scale
				for x := range scale {
					q.levels[i+x] = level
				}
			}
		}
	}

	return q, nil
}

// Frame implements the scheduler.FrameSource interface.
func (q *QRCode) Frame(_ int) ([]uint8, error) {
	return q.levels, nil
}
