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

// Package sdlmonitor shows the decoded frames in an SDL window.
//
// The window and everything else to do with SDL must be created and used in
// the main thread. NewSdlMonitor(), Service() and Destroy() MUST ONLY be
// called from the #mainthread. NewFrame() is called by the monitor and can be
// called from any goroutine.
package sdlmonitor

import (
	"fmt"
	"io"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/gui"
	"github.com/beamrace/beamrace/monitor"
)

// DefaultScale is the size of each frame buffer pixel in the window.
const DefaultScale = 8.0

// SdlMonitor implements the gui.Display interface.
type SdlMonitor struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int32
	height int32
	scale  float32
	title  string

	latest gui.Latest
	levels []uint8

	// copied to the texture on every new frame
	pixels []byte

	events chan gui.Event
}

// NewSdlMonitor is the preferred method of initialisation for the SdlMonitor
// type. The events channel receives gui.EventQuit and gui.EventKeyboard
// events. It can be nil.
//
// MUST ONLY be called from the #mainthread
func NewSdlMonitor(title string, width, height int, events chan gui.Event) (*SdlMonitor, error) {
	scr := &SdlMonitor{
		width:  int32(width),
		height: int32(height),
		title:  title,
		levels: make([]uint8, width*height),
		pixels: make([]byte, width*height*gui.PixelDepth),
		events: events,
	}

	var err error

	err = sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	// the size of the window is set by setScale()
	scr.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		scr.width, scr.height,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	// texture is the size of the frame buffer. the renderer stretches it to
	// the size of the window
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		scr.width, scr.height)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	// MOUSEMOTION events fill up the event queue and are never used
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)

	scr.setScale(DefaultScale)

	// black until the first frame
	gui.ToRGBA(scr.pixels, scr.levels)
	if err := scr.present(); err != nil {
		return nil, err
	}

	return scr, nil
}

func (scr *SdlMonitor) setScale(scale float32) {
	if scale <= 0 {
		return
	}
	scr.scale = scale
	scr.window.SetSize(int32(float32(scr.width)*scale), int32(float32(scr.height)*scale))
}

// NewFrame implements the monitor.Renderer interface.
func (scr *SdlMonitor) NewFrame(f monitor.Frame) error {
	scr.latest.Put(f)
	return nil
}

// EndRendering implements the monitor.Renderer interface.
func (scr *SdlMonitor) EndRendering() error {
	return nil
}

// SetFeature implements the gui.Display interface.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlMonitor) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	switch request {
	case gui.ReqSetScale:
		scr.setScale(args[0].(float32))
	case gui.ReqSetTitle:
		scr.title = args[0].(string)
		scr.window.SetTitle(scr.title)
	case gui.ReqSetStatus:
		scr.window.SetTitle(fmt.Sprintf("%s - %s", scr.title, args[0].(string)))
	default:
		return curated.Errorf(gui.UnsupportedGuiFeature, request)
	}
	return nil
}

func (scr *SdlMonitor) present() error {
	err := scr.texture.Update(nil, scr.pixels, int(scr.width*gui.PixelDepth))
	if err != nil {
		return curated.Errorf("sdl: %v", err)
	}

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf("sdl: %v", err)
	}

	scr.renderer.Present()

	return nil
}

// Service implements the gui.Display interface.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlMonitor) Service() {
	// every queued event is handled before the frame is presented
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			gui.Send(scr.events, gui.EventQuit{})

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				break // switch
			}

			mod := gui.KeyModNone
			ms := sdl.GetModState()
			if ms&sdl.KMOD_LALT == sdl.KMOD_LALT || ms&sdl.KMOD_RALT == sdl.KMOD_RALT {
				mod = gui.KeyModAlt
			} else if ms&sdl.KMOD_LSHIFT == sdl.KMOD_LSHIFT || ms&sdl.KMOD_RSHIFT == sdl.KMOD_RSHIFT {
				mod = gui.KeyModShift
			} else if ms&sdl.KMOD_LCTRL == sdl.KMOD_LCTRL || ms&sdl.KMOD_RCTRL == sdl.KMOD_RCTRL {
				mod = gui.KeyModCtrl
			}

			gui.Send(scr.events, gui.EventKeyboard{
				Key:  sdl.GetKeyName(ev.Keysym.Sym),
				Down: ev.Type == sdl.KEYDOWN,
				Mod:  mod,
			})
		}
	}

	if _, ok := scr.latest.Take(scr.levels); !ok {
		return
	}
	gui.ToRGBA(scr.pixels, scr.levels)

	// an error presenting a frame is not fatal. the next frame will try again
	_ = scr.present()
}

// Destroy implements the gui.Display interface.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlMonitor) Destroy(output io.Writer) {
	if err := scr.texture.Destroy(); err != nil {
		fmt.Fprintln(output, err)
	}
	if err := scr.renderer.Destroy(); err != nil {
		fmt.Fprintln(output, err)
	}
	if err := scr.window.Destroy(); err != nil {
		fmt.Fprintln(output, err)
	}
	sdl.Quit()
}
