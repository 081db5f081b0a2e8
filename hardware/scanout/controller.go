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

// Package scanout decides which row of the frame buffer is sent to the output
// port on each line.
//
// The Controller is driven by the line interrupt. Every RowLines() lines it
// halts the Streamer, checks the vertical position and, if the next line is
// visible, points the Streamer at the next row and restarts it. Between
// qualifying lines the Streamer repeats the row it was last given.
//
// The vertical position is checked on every qualifying line rather than
// counted. A row sequence that has been disturbed, for example by the
// horizontal and vertical counters being started at slightly different
// times, is put right at the start of the next frame.
package scanout

import (
	"github.com/beamrace/beamrace/environment"
	"github.com/beamrace/beamrace/hardware/timing"
	"github.com/beamrace/beamrace/logger"
)

// Position is the vertical position of the signal in lines.
type Position interface {
	Line() int
}

// Controller is the scan-out controller.
type Controller struct {
	env      *environment.Environment
	profile  timing.Profile
	streamer *Streamer
	position Position
	tracker  *Tracker

	row      int
	divisor  int
	rowLines int

	// number of row advances made
	Advances int
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(env *environment.Environment, profile timing.Profile, streamer *Streamer, position Position, tracker *Tracker) *Controller {
	c := &Controller{
		env:      env,
		profile:  profile,
		streamer: streamer,
		position: position,
		tracker:  tracker,
		rowLines: profile.RowLines(),
	}
	c.Reset()
	return c
}

// Reset the controller to its boot state. The first qualifying line event in
// the visible region wraps the row to zero.
func (c *Controller) Reset() {
	c.row = c.profile.Height - 1
	c.divisor = c.rowLines
	c.Advances = 0
}

// Row returns the row currently being sent.
func (c *Controller) Row() int {
	return c.row
}

// Divisor returns the number of line events since the last row advance.
func (c *Controller) Divisor() int {
	return c.divisor
}

// OnLineEvent is the line interrupt handler.
func (c *Controller) OnLineEvent() {
	c.divisor++
	if c.divisor < c.rowLines {
		return
	}

	// the streamer must be halted before it is retargeted, whether or not
	// it is restarted
	c.streamer.Halt()

	next := (c.position.Line() + 1) % c.profile.Vertical.Total
	if !c.profile.Vertical.IsVisible(next) {
		c.tracker.EnterBlanking()
		return
	}

	if c.tracker.State() == Visible {
		c.row = (c.row + 1) % c.profile.Height
	} else {
		if c.row != c.profile.Height-1 {
			logger.Logf(c.env, "scanout", "row sequence corrected at line %d (row was %d)", next, c.row)
		}
		c.row = 0
		if c.tracker.EnterVisible() {
			logger.Log(c.env, "scanout", "frame was not rendered before the visible region")
		}
	}

	c.divisor = 0
	c.Advances++

	if err := c.streamer.Retarget(c.row); err != nil {
		logger.Log(c.env, "scanout", err.Error())
	}
	c.streamer.Resume()
}
