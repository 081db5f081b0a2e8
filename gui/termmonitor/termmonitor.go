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

// Package termmonitor shows the decoded frames in a terminal that supports 24
// bit colour. Each character cell shows two pixels so a frame buffer of 80 by
// 60 pixels needs a terminal of 80 by 31 cells, including the status line.
//
// The terminal is put into raw mode so that single key presses are seen. The
// q and escape keys, and ctrl-c, send the gui.EventQuit event.
package termmonitor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/term"
	xterm "golang.org/x/term"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/gui"
	"github.com/beamrace/beamrace/monitor"
)

// the controlling terminal. input is read from here even if stdin has been
// redirected
const tty = "/dev/tty"

// TermMonitor implements the gui.Display interface.
type TermMonitor struct {
	output *os.File
	input  *term.Term

	width  int
	height int

	latest gui.Latest
	levels []uint8
	number int
	status string

	buf bytes.Buffer

	events chan gui.Event
	quit   chan bool
	done   chan bool
}

// NewTermMonitor is the preferred method of initialisation for the
// TermMonitor type. The output must be a terminal.
func NewTermMonitor(output *os.File, width, height int, events chan gui.Event) (*TermMonitor, error) {
	if !xterm.IsTerminal(int(output.Fd())) {
		return nil, curated.Errorf("termmonitor: output is not a terminal")
	}

	input, err := term.Open(tty, term.RawMode, term.ReadTimeout(100*time.Millisecond))
	if err != nil {
		return nil, curated.Errorf("termmonitor: %v", err)
	}

	scr := &TermMonitor{
		output: output,
		input:  input,
		width:  width,
		height: height,
		levels: make([]uint8, width*height),
		events: events,
		quit:   make(chan bool),
		done:   make(chan bool),
	}

	// hide cursor and clear screen
	fmt.Fprint(scr.output, "\x1b[?25l\x1b[2J")

	go scr.readInput()

	return scr, nil
}

func (scr *TermMonitor) readInput() {
	defer close(scr.done)

	b := make([]byte, 1)
	for {
		select {
		case <-scr.quit:
			return
		default:
		}

		// read returns after the timeout with no bytes
		n, err := scr.input.Read(b)
		if err != nil && err != io.EOF {
			return
		}
		if n == 0 {
			continue
		}

		switch b[0] {
		case 'q', 'Q', 0x1b, 0x03:
			gui.Send(scr.events, gui.EventQuit{})
		default:
			gui.Send(scr.events, gui.EventKeyboard{Key: string(b[0]), Down: true})
		}
	}
}

// NewFrame implements the monitor.Renderer interface.
func (scr *TermMonitor) NewFrame(f monitor.Frame) error {
	scr.latest.Put(f)
	return nil
}

// EndRendering implements the monitor.Renderer interface.
func (scr *TermMonitor) EndRendering() error {
	return nil
}

// SetFeature implements the gui.Display interface.
func (scr *TermMonitor) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	switch request {
	case gui.ReqSetStatus:
		scr.status = args[0].(string)
	case gui.ReqSetTitle:
		// the window title of most terminal emulators
		fmt.Fprintf(scr.output, "\x1b]0;%s\x07", args[0].(string))
	default:
		return curated.Errorf(gui.UnsupportedGuiFeature, request)
	}
	return nil
}

// Service implements the gui.Display interface.
func (scr *TermMonitor) Service() {
	n, ok := scr.latest.Take(scr.levels)
	if !ok {
		// nothing to draw. don't spin
		time.Sleep(time.Millisecond)
		return
	}
	scr.number = n

	cols, rows, err := xterm.GetSize(int(scr.output.Fd()))
	if err != nil {
		cols = scr.width
		rows = (scr.height+1)/2 + 1
	}

	// the last row is the status line
	rows--

	scr.buf.Reset()
	_ = Draw(&scr.buf, scr.levels, scr.width, scr.height, cols, rows)
	fmt.Fprintf(&scr.buf, "\x1b[%d;1H\x1b[2Kframe %d", min(rows, (scr.height+1)/2)+1, scr.number)
	if scr.status != "" {
		fmt.Fprintf(&scr.buf, "  %s", scr.status)
	}

	_, _ = scr.output.Write(scr.buf.Bytes())
}

// Destroy implements the gui.Display interface.
func (scr *TermMonitor) Destroy(output io.Writer) {
	close(scr.quit)
	<-scr.done

	if err := scr.input.Restore(); err != nil {
		fmt.Fprintln(output, err)
	}
	if err := scr.input.Close(); err != nil {
		fmt.Fprintln(output, err)
	}

	// show cursor and move below the frame
	fmt.Fprintf(scr.output, "\x1b[0m\x1b[?25h\r\n")
}
