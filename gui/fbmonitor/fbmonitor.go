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

// Package fbmonitor shows the decoded frames on the Linux framebuffer device.
// The frame is scaled to the largest size that fits the device without
// changing the aspect ratio and is centred. This display is useful on a
// machine with no window system.
//
// There is no input. The simulation must be stopped with ctrl-c or by
// limiting the number of frames.
package fbmonitor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/gui"
	"github.com/beamrace/beamrace/monitor"
	"github.com/beamrace/beamrace/sources/convert"
)

// DefaultDevice is the framebuffer device opened by NewFbMonitor().
const DefaultDevice = "/dev/fb0"

// surface is the framebuffer device or a substitute for testing
type surface interface {
	draw.Image
	Close() error
}

// FbMonitor implements the gui.Display interface.
type FbMonitor struct {
	dev    surface
	width  int
	height int

	latest gui.Latest
	levels []uint8

	// the area of the device the frame is scaled to
	dest image.Rectangle
}

// NewFbMonitor is the preferred method of initialisation for the FbMonitor
// type.
func NewFbMonitor(device string, width, height int) (*FbMonitor, error) {
	dev, err := fb.Open(device)
	if err != nil {
		return nil, curated.Errorf("fbmonitor: %v", err)
	}
	return newFbMonitor(dev, width, height), nil
}

func newFbMonitor(dev surface, width, height int) *FbMonitor {
	scr := &FbMonitor{
		dev:    dev,
		width:  width,
		height: height,
		levels: make([]uint8, width*height),
		dest:   Fit(dev.Bounds(), width, height),
	}

	draw.Draw(scr.dev, scr.dev.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	return scr
}

// Fit returns the largest rectangle inside bounds with the aspect ratio of
// width by height, centred in bounds.
func Fit(bounds image.Rectangle, width, height int) image.Rectangle {
	w := bounds.Dx()
	h := w * height / width
	if h > bounds.Dy() {
		h = bounds.Dy()
		w = h * width / height
	}
	origin := bounds.Min.Add(image.Pt((bounds.Dx()-w)/2, (bounds.Dy()-h)/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
}

// NewFrame implements the monitor.Renderer interface.
func (scr *FbMonitor) NewFrame(f monitor.Frame) error {
	scr.latest.Put(f)
	return nil
}

// EndRendering implements the monitor.Renderer interface.
func (scr *FbMonitor) EndRendering() error {
	return nil
}

// SetFeature implements the gui.Display interface. No features are
// supported.
func (scr *FbMonitor) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	return curated.Errorf(gui.UnsupportedGuiFeature, request)
}

// Service implements the gui.Display interface.
func (scr *FbMonitor) Service() {
	if _, ok := scr.latest.Take(scr.levels); !ok {
		return
	}

	// each frame buffer pixel is a block of device pixels
	img := convert.Image(scr.levels, scr.width, scr.height)
	xdraw.NearestNeighbor.Scale(scr.dev, scr.dest, img, img.Bounds(), xdraw.Src, nil)
}

// Destroy implements the gui.Display interface.
func (scr *FbMonitor) Destroy(output io.Writer) {
	if err := scr.dev.Close(); err != nil {
		fmt.Fprintln(output, err)
	}
}
