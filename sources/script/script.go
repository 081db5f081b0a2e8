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

// Package script is a frame source that runs a Lua script to draw each frame.
// The script must define a global function frame(n), which is called once for
// every frame the scheduler renders. The frame buffer is not cleared between
// calls.
//
// The following are provided to the script:
//
//	width, height      the size of the frame buffer
//	set(x, y, level)   set one pixel. pixels outside the frame are ignored
//	get(x, y)          the level of one pixel. zero outside the frame
//	clear([level])     set every pixel. level defaults to zero
//	rgb(r, g, b)       the level for red, green and blue components 0 to 3
//
// Standard libraries are opened so that a script can make use of math and
// string functions.
package script

import (
	"context"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/palette"
)

// FrameTimeout is the longest that a single call to the frame() function may
// run before it is cancelled.
const FrameTimeout = time.Second

// Script implements the scheduler.FrameSource interface.
type Script struct {
	L      *lua.LState
	fn     lua.LValue
	width  int
	height int
	levels []uint8
}

// NewScript is the preferred method of initialisation for the Script type.
// Exactly one of filename or source should be non-empty.
func NewScript(filename string, source string, width, height int) (*Script, error) {
	scr := &Script{
		L:      lua.NewState(),
		width:  width,
		height: height,
		levels: make([]uint8, width*height),
	}

	scr.L.SetGlobal("width", lua.LNumber(width))
	scr.L.SetGlobal("height", lua.LNumber(height))
	scr.L.SetGlobal("set", scr.L.NewFunction(scr.set))
	scr.L.SetGlobal("get", scr.L.NewFunction(scr.get))
	scr.L.SetGlobal("clear", scr.L.NewFunction(scr.clear))
	scr.L.SetGlobal("rgb", scr.L.NewFunction(rgb))

	var err error
	if filename != "" {
		err = scr.L.DoFile(filename)
	} else {
		err = scr.L.DoString(source)
	}
	if err != nil {
		scr.L.Close()
		return nil, curated.Errorf("script: %v", err)
	}

	scr.fn = scr.L.GetGlobal("frame")
	if scr.fn.Type() != lua.LTFunction {
		scr.L.Close()
		return nil, curated.Errorf("script: no frame() function")
	}

	return scr, nil
}

// Close the Lua state. The Script should not be used after Close().
func (scr *Script) Close() error {
	scr.L.Close()
	return nil
}

// Frame implements the scheduler.FrameSource interface.
func (scr *Script) Frame(n int) ([]uint8, error) {
	ctx, cancel := context.WithTimeout(context.Background(), FrameTimeout)
	defer cancel()
	scr.L.SetContext(ctx)
	defer scr.L.RemoveContext()

	err := scr.L.CallByParam(lua.P{
		Fn:      scr.fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(n))
	if err != nil {
		return nil, curated.Errorf("script: frame %d: %v", n, err)
	}

	return scr.levels, nil
}

func (scr *Script) set(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	l := L.CheckInt(3)
	if x >= 0 && x < scr.width && y >= 0 && y < scr.height {
		scr.levels[y*scr.width+x] = uint8(l) & palette.Mask
	}
	return 0
}

func (scr *Script) get(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	if x >= 0 && x < scr.width && y >= 0 && y < scr.height {
		L.Push(lua.LNumber(scr.levels[y*scr.width+x]))
	} else {
		L.Push(lua.LNumber(0))
	}
	return 1
}

func (scr *Script) clear(L *lua.LState) int {
	l := uint8(L.OptInt(1, 0)) & palette.Mask
	for i := range scr.levels {
		scr.levels[i] = l
	}
	return 0
}

func rgb(L *lua.LState) int {
	r := L.CheckInt(1)
	g := L.CheckInt(2)
	b := L.CheckInt(3)
	L.Push(lua.LNumber(palette.Level(uint8(max(r, 0)), uint8(max(g, 0)), uint8(max(b, 0)))))
	return 1
}
