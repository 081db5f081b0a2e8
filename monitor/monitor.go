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

package monitor

import (
	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/environment"
	"github.com/beamrace/beamrace/hardware/signal"
	"github.com/beamrace/beamrace/hardware/timing"
	"github.com/beamrace/beamrace/logger"
)

// Monitor implements the signal.Sink interface.
type Monitor struct {
	env     *environment.Environment
	profile timing.Profile
	clockHz float64

	renderers []Renderer

	hsync syncDetector
	vsync syncDetector

	// ticks since the leading edge of the most recent hsync pulse. -1 until
	// the first edge
	offset int

	// the current line counted from the leading edge of the vsync pulse. -1
	// until the first edge
	line int

	// the next hsync edge starts line zero
	frameStart bool

	// ticks since the leading edge of the most recent vsync pulse
	frameTicks int

	// the active region of the frame being decoded
	hActiveStart int
	hActiveEnd   int
	vActiveStart int
	vActiveEnd   int

	frame Frame

	m Measurements
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
// The profile is the signal the monitor expects to receive. The clock is the
// frequency of the master clock that generates the signal, which is used to
// convert tick counts into rates.
func NewMonitor(env *environment.Environment, profile timing.Profile, clockHz float64) *Monitor {
	mon := &Monitor{
		env:     env,
		profile: profile,
		clockHz: clockHz,
		offset:  -1,
		line:    -1,
		frame: Frame{
			Width:  profile.Width,
			Height: profile.Height,
			Levels: make([]uint8, profile.Width*profile.Height),
		},
	}
	mon.resetActive()
	mon.m.HActiveStart = -1
	mon.m.HActiveEnd = -1
	mon.m.VActiveStart = -1
	mon.m.VActiveEnd = -1
	return mon
}

// AddRenderer registers an (additional) implementation of Renderer.
func (mon *Monitor) AddRenderer(r Renderer) {
	mon.renderers = append(mon.renderers, r)
}

// Measurements returns the current measurements of the signal.
func (mon *Monitor) Measurements() Measurements {
	return mon.m
}

// End implementations of Renderer that have been added to the monitor.
func (mon *Monitor) End() error {
	var err error
	for _, r := range mon.renderers {
		if e := r.EndRendering(); e != nil && err == nil {
			err = e
		}
	}
	if err != nil {
		return curated.Errorf("monitor: %v", err)
	}
	return nil
}

func (mon *Monitor) resetActive() {
	mon.hActiveStart = -1
	mon.hActiveEnd = -1
	mon.vActiveStart = -1
	mon.vActiveEnd = -1
}

// Signal implements the signal.Sink interface.
func (mon *Monitor) Signal(s signal.Sample) error {
	// the vsync edge is handled first. if the two edges happen on the same
	// tick the line that begins is the first line of the frame
	if mon.vsync.sample(s.VSync) {
		if err := mon.newFrame(); err != nil {
			return err
		}
	}

	if mon.hsync.sample(s.HSync) {
		mon.newLine()
	}

	if mon.offset >= 0 && mon.line >= 0 {
		mon.pixel(s.Level)
	}

	if mon.offset >= 0 {
		mon.offset++
	}
	if mon.line >= 0 || mon.frameStart {
		mon.frameTicks++
	}

	return nil
}

func (mon *Monitor) newLine() {
	if mon.offset > 0 {
		mon.m.Lines++
		mon.m.LineTicks = mon.offset
		if mon.m.LineTicksMin == 0 || mon.offset < mon.m.LineTicksMin {
			mon.m.LineTicksMin = mon.offset
		}
		mon.m.LineTicksMax = max(mon.m.LineTicksMax, mon.offset)
		mon.m.LineRate = mon.clockHz / float64(mon.offset)
	}
	mon.m.HSyncTicks = mon.hsync.width
	mon.m.HSyncPolarity = mon.hsync.polarity()

	mon.offset = 0

	if mon.frameStart {
		mon.frameStart = false
		mon.line = 0
	} else if mon.line >= 0 {
		mon.line++
	}
}

func (mon *Monitor) newFrame() error {
	defer func() {
		mon.frameStart = true
		mon.frameTicks = 0
		mon.resetActive()
	}()

	// the first edge only marks the start of the first frame
	if mon.line < 0 {
		return nil
	}

	mon.m.Frames++
	mon.m.FrameLines = mon.line + 1
	mon.m.FrameTicks = mon.frameTicks
	mon.m.VSyncPolarity = mon.vsync.polarity()
	if mon.m.LineTicks > 0 {
		mon.m.VSyncLines = (mon.vsync.width + mon.m.LineTicks/2) / mon.m.LineTicks
	}
	if mon.frameTicks > 0 {
		mon.m.FrameRate = mon.clockHz / float64(mon.frameTicks)
	}
	mon.m.HActiveStart = mon.hActiveStart
	mon.m.HActiveEnd = mon.hActiveEnd
	mon.m.VActiveStart = mon.vActiveStart
	mon.m.VActiveEnd = mon.vActiveEnd

	if mon.m.FrameLines != mon.profile.Vertical.Total {
		logger.Logf(mon.env, "monitor", "frame %d has %d lines", mon.frame.Number, mon.m.FrameLines)
	}

	for _, r := range mon.renderers {
		if err := r.NewFrame(mon.frame); err != nil {
			return curated.Errorf("monitor: %v", err)
		}
	}
	mon.frame.Number++

	return nil
}

func (mon *Monitor) pixel(level uint8) {
	p := mon.profile

	if level != 0 {
		if !p.Horizontal.IsVisible(mon.offset) || !p.Vertical.IsVisible(mon.line) {
			mon.m.BlankingViolations++
		}

		if mon.hActiveStart < 0 || mon.offset < mon.hActiveStart {
			mon.hActiveStart = mon.offset
		}
		mon.hActiveEnd = max(mon.hActiveEnd, mon.offset+1)
		if mon.vActiveStart < 0 {
			mon.vActiveStart = mon.line
		}
		mon.vActiveEnd = max(mon.vActiveEnd, mon.line+1)
	}

	// decode at the centre of each pixel
	v := mon.line - p.Vertical.VisibleStart()
	if v < 0 || v >= p.Vertical.Visible {
		return
	}
	o := mon.offset - p.Horizontal.VisibleStart() - p.PixelClocks/2
	if o < 0 || o%p.PixelClocks != 0 {
		return
	}
	x := o / p.PixelClocks
	if x >= p.Width {
		return
	}

	i := (v/p.RowLines())*p.Width + x
	if v%p.RowLines() == 0 {
		mon.frame.Levels[i] = level
	} else if mon.frame.Levels[i] != level {
		mon.m.RowTears++
	}
}
