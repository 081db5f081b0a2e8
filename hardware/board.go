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

package hardware

import (
	"fmt"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/environment"
	"github.com/beamrace/beamrace/hardware/clocks"
	"github.com/beamrace/beamrace/hardware/core"
	"github.com/beamrace/beamrace/hardware/framebuffer"
	"github.com/beamrace/beamrace/hardware/peripherals"
	"github.com/beamrace/beamrace/hardware/raster"
	"github.com/beamrace/beamrace/hardware/scanout"
	"github.com/beamrace/beamrace/hardware/scheduler"
	"github.com/beamrace/beamrace/hardware/signal"
	"github.com/beamrace/beamrace/hardware/timing"
	"github.com/beamrace/beamrace/logger"
)

// Sentinel errors.
const (
	AlreadyBooted = "board: already booted"
	NotBooted     = "board: not booted"
	SinkError     = "board: sink: %v"
)

// Board is the main container for the simulated components of the
// microcontroller and the firmware running on it.
type Board struct {
	env     *environment.Environment
	Profile timing.Profile
	Clock   clocks.Configurator

	// peripherals and the processor
	*Bindings
	Core     *core.Core
	lineIRQ  peripherals.IRQ
	frameIRQ peripherals.IRQ

	// firmware
	FrameBuffer *framebuffer.FrameBuffer
	Horizontal  *raster.Horizontal
	Vertical    *raster.Vertical
	Tracker     *scanout.Tracker
	Streamer    *scanout.Streamer
	Controller  *scanout.Controller
	Scheduler   *scheduler.Scheduler

	// sinks are not part of the board but are attached to it
	sinks []signal.Sink

	// the sample produced by the most recent tick
	sample signal.Sample

	ticks  uint64
	booted bool
}

// NewBoard creates a new Board and everything associated with the hardware.
// The board must be booted before it is stepped.
func NewBoard(env *environment.Environment, profile timing.Profile, clock clocks.Configurator, source scheduler.FrameSource) (*Board, error) {
	if env == nil {
		return nil, curated.Errorf("board: no environment")
	}
	if clock == nil {
		return nil, curated.Errorf("board: no clock configurator")
	}

	b := &Board{
		env:     env,
		Profile: profile,
		Clock:   clock,
		Tracker: &scanout.Tracker{},
	}

	b.FrameBuffer = framebuffer.NewFrameBuffer(profile.Width, profile.Height)
	b.Bindings = NewBindings(b.FrameBuffer, env.Prefs.InterruptLatency.Get().(int))

	b.Horizontal = raster.NewHorizontal(profile, b.Master, b.Pixel)
	b.Vertical = raster.NewVertical(profile, b.Counter)

	b.Streamer = scanout.NewStreamer(b.FrameBuffer, b.DMA, b.Pixel)
	b.Controller = scanout.NewController(env, profile, b.Streamer, b.Vertical, b.Tracker)
	b.Scheduler = scheduler.NewScheduler(env, profile, b.FrameBuffer, b.Tracker, source, b)
	b.Core = core.NewCore(b.NVIC, b.Scheduler)

	return b, nil
}

func (b *Board) String() string {
	return fmt.Sprintf("%s %v ticks=%d", b.Profile.ID, b.Clock, b.ticks)
}

// AddSink attaches a sink to the board. Every sample of the signal is sent to
// every sink in the order they were added.
func (b *Board) AddSink(s signal.Sink) {
	b.sinks = append(b.sinks, s)
}

// Boot performs the firmware start-up sequence.
//
// The order of operations matters. The clock is configured first because the
// timers count master clock ticks and arming them on the wrong clock would
// produce a signal at the wrong rate. The DMA channel is configured and the
// interrupts registered before any timer starts so that the first events are
// serviced. The vertical timer starts before the horizontal timer. The gap
// between the two is the start skew.
func (b *Board) Boot() error {
	if b.booted {
		return curated.Errorf(AlreadyBooted)
	}

	if err := b.Clock.Configure(); err != nil {
		return curated.Errorf("board: %v", err)
	}
	if !b.Clock.Locked() {
		logger.Logf(b.env, "board", "clock did not lock: running at %.3fMHz", b.Clock.Hz()/1e6)
	}

	if !b.FrameBuffer.Terminated() {
		return curated.Errorf("board: frame buffer rows are not terminated")
	}

	b.Horizontal.Configure(b.env.Prefs.TriggerLatency.Get().(int))
	b.Vertical.Configure()

	if err := b.Streamer.Configure(); err != nil {
		return curated.Errorf("board: %v", err)
	}

	b.NVIC.SetLatency(b.env.Prefs.InterruptLatency.Get().(int))
	b.lineIRQ = b.NVIC.Register("line", 0, b.env.Prefs.LineHandlerCycles.Get().(int), b.Controller.OnLineEvent)
	b.frameIRQ = b.NVIC.Register("frame", 1, b.env.Prefs.FrameHandlerCycles.Get().(int), b.Scheduler.OnFrameComplete)
	b.NVIC.Enable(b.lineIRQ)
	b.NVIC.Enable(b.frameIRQ)

	b.Horizontal.OnEndOfVisible(func() {
		b.NVIC.Raise(b.lineIRQ)
	})
	b.Vertical.OnFrameComplete(func() {
		b.NVIC.Raise(b.frameIRQ)
	})

	b.Vertical.Start(b.env.Prefs.StartSkew.Get().(int))
	b.Horizontal.Start()

	b.booted = true

	return nil
}

// Booted returns true if Boot() has completed successfully.
func (b *Board) Booted() bool {
	return b.booted
}

// Ticks implements the scheduler.Clock interface. It is the number of master
// clock ticks since boot.
func (b *Board) Ticks() uint64 {
	return b.ticks
}

// ClockHz is the frequency of the master clock.
func (b *Board) ClockHz() float64 {
	return b.Clock.Hz()
}

// Frame is the number of whole frames since boot.
func (b *Board) Frame() int {
	return int(b.ticks / uint64(b.Profile.FrameTicks()))
}

// Sample returns the signal produced by the most recent tick.
func (b *Board) Sample() signal.Sample {
	return b.sample
}

// LineIRQ and FrameIRQ return the interrupt lines used by the firmware.
func (b *Board) LineIRQ() peripherals.IRQ {
	return b.lineIRQ
}

func (b *Board) FrameIRQ() peripherals.IRQ {
	return b.frameIRQ
}
