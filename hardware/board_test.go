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

package hardware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/environment"
	"github.com/beamrace/beamrace/govern"
	"github.com/beamrace/beamrace/hardware"
	"github.com/beamrace/beamrace/hardware/clocks"
	"github.com/beamrace/beamrace/hardware/scheduler"
	"github.com/beamrace/beamrace/hardware/signal"
	"github.com/beamrace/beamrace/hardware/timing"
	"github.com/beamrace/beamrace/monitor"
	"github.com/beamrace/beamrace/test"
)

// solid is a frame source that sets every pixel to the same level
type solid struct {
	p     timing.Profile
	level uint8
}

func (s solid) Frame(_ int) ([]uint8, error) {
	l := make([]uint8, s.p.Width*s.p.Height)
	for i := range l {
		l[i] = s.level
	}
	return l, nil
}

// frames is a monitor.Renderer that keeps a copy of every frame
type frames struct {
	frames []monitor.Frame
}

func (f *frames) NewFrame(fr monitor.Frame) error {
	c := fr
	c.Levels = append([]uint8{}, fr.Levels...)
	f.frames = append(f.frames, c)
	return nil
}

func (f *frames) EndRendering() error {
	return nil
}

func newBoard(t *testing.T, p timing.Profile, clock clocks.Configurator, source scheduler.FrameSource) (*hardware.Board, *environment.Environment) {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainSimulation, nil)
	test.DemandSuccess(t, err)
	b, err := hardware.NewBoard(env, p, clock, source)
	test.DemandSuccess(t, err)
	return b, env
}

// run the board for a number of frames with a monitor attached
func runWithMonitor(t *testing.T, b *hardware.Board, numFrames int) (*monitor.Monitor, *frames) {
	t.Helper()
	test.DemandSuccess(t, b.Boot())

	env, err := environment.NewEnvironment(environment.MainSimulation, nil)
	test.DemandSuccess(t, err)
	mon := monitor.NewMonitor(env, b.Profile, b.ClockHz())
	rec := &frames{}
	mon.AddRenderer(rec)
	b.AddSink(mon)

	test.DemandSuccess(t, b.RunForFrameCount(context.Background(), numFrames, nil))
	return mon, rec
}

func TestSignalMatchesProfile(t *testing.T) {
	for _, p := range []timing.Profile{timing.SVGA800x600, timing.VGA640x480} {
		b, _ := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p, level: 0x3f})
		mon, rec := runWithMonitor(t, b, 6)

		m := mon.Measurements()
		test.ExpectSuccess(t, m.Frames >= 3, p.ID)
		test.ExpectEquality(t, len(m.Compare(p)), 0, p.ID, m.Compare(p))
		test.ExpectEquality(t, m.RowTears, 0, p.ID)

		// the active region is the whole of the visible region
		test.ExpectEquality(t, m.HActiveStart, p.Horizontal.VisibleStart(), p.ID)
		test.ExpectEquality(t, m.HActiveEnd, p.Horizontal.VisibleEnd(), p.ID)
		test.ExpectEquality(t, m.VActiveStart, p.Vertical.VisibleStart(), p.ID)
		test.ExpectEquality(t, m.VActiveEnd, p.Vertical.VisibleEnd(), p.ID)

		// every decoded frame is the frame from the source
		test.DemandSuccess(t, len(rec.frames) > 0, p.ID)
		for _, f := range rec.frames {
			for i, l := range f.Levels {
				test.DemandEquality(t, l, uint8(0x3f), p.ID, f.Number, i)
			}
		}

		test.ExpectEquality(t, b.Violations(), 0, p.ID)
		test.ExpectEquality(t, b.Streamer.Violations, 0, p.ID)

		r := b.Scheduler.Report()
		test.ExpectEquality(t, r.Overruns, 0, p.ID)
		test.ExpectEquality(t, r.Dropped, 0, p.ID)
		test.ExpectEquality(t, r.Frames, 6, p.ID)
	}
}

func TestBlackFirstFrame(t *testing.T) {
	p := timing.SVGA800x600
	b, _ := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p, level: 0x3f})
	test.DemandSuccess(t, b.Boot())

	// nothing is rendered until the first frame interrupt
	for range p.FrameTicks() - p.LineTicks()*(p.Vertical.Total-p.Vertical.VisibleEnd()) {
		test.DemandSuccess(t, b.Step())
		test.DemandEquality(t, b.Sample().Level, uint8(0))
	}
}

func TestDMAOnlyDuringVisible(t *testing.T) {
	p := timing.SVGA800x600
	b, _ := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p, level: 0x3f})
	test.DemandSuccess(t, b.Boot())

	// sample the channel in the middle of the visible part of every line
	mid := (p.Horizontal.VisibleStart() + p.Horizontal.VisibleEnd()) / 2

	for range p.FrameTicks() * 2 {
		test.DemandSuccess(t, b.Step())
		if b.Horizontal.Position() != mid {
			continue
		}
		line := b.Vertical.Line()
		test.DemandEquality(t, b.DMA.Enabled(), p.Vertical.IsVisible(line), line)
	}
}

func TestFrameEventLine(t *testing.T) {
	for _, p := range []timing.Profile{timing.SVGA800x600, timing.VGA640x480} {
		b, _ := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p})
		test.DemandSuccess(t, b.Boot())

		var lines []int
		prev := 0
		for range p.FrameTicks() * 3 {
			test.DemandSuccess(t, b.Step())
			if n := b.Scheduler.Report().Frames; n != prev {
				prev = n
				lines = append(lines, b.Vertical.Line())
			}
		}

		// one frame event per frame, on the first line after the visible
		// region
		test.DemandEquality(t, len(lines), 3, p.ID)
		for _, l := range lines {
			test.ExpectEquality(t, l, p.Vertical.VisibleEnd(), p.ID)
		}
	}
}

func TestClockNotLocked(t *testing.T) {
	p := timing.SVGA800x600

	// too fast for the part. the clock stays on the internal oscillator
	b, _ := newBoard(t, p, clocks.NewPLL(64e6), solid{p: p, level: 0x3f})
	mon, _ := runWithMonitor(t, b, 6)

	test.ExpectEquality(t, b.Clock.Locked(), false)
	test.ExpectEquality(t, b.ClockHz(), clocks.HSI)

	// the tick counts are correct. only the rate is wrong
	m := mon.Measurements()
	test.ExpectEquality(t, m.LineTicks, p.LineTicks())
	test.ExpectEquality(t, len(m.Compare(p)), 1, m.Compare(p))
	test.ExpectApproximate(t, m.LineRate, clocks.HSI/float64(p.LineTicks()), 0.001)
}

func TestOverrun(t *testing.T) {
	p := timing.SVGA800x600
	b, env := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p, level: 0x3f})

	// render cost greater than the render budget
	test.DemandSuccess(t, env.Prefs.RenderCyclesPerByte.Set(p.RenderBudget()/(p.Width*p.Height)+1))
	test.DemandSuccess(t, b.Boot())
	test.DemandSuccess(t, b.RunForFrameCount(context.Background(), 3, nil))

	test.ExpectSuccess(t, b.Scheduler.Report().Overruns > 0)
}

func TestBootErrors(t *testing.T) {
	p := timing.SVGA800x600
	b, _ := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p})

	err := b.Step()
	test.ExpectSuccess(t, curated.Is(err, hardware.NotBooted))
	test.ExpectEquality(t, b.Booted(), false)

	test.DemandSuccess(t, b.Boot())
	test.ExpectEquality(t, b.Booted(), true)
	err = b.Boot()
	test.ExpectSuccess(t, curated.Is(err, hardware.AlreadyBooted))

	env, err := environment.NewEnvironment(environment.MainSimulation, nil)
	test.DemandSuccess(t, err)
	_, err = hardware.NewBoard(env, p, nil, solid{p: p})
	test.ExpectFailure(t, err)
	_, err = hardware.NewBoard(nil, p, clocks.NewPLL(p.ClockHz), solid{p: p})
	test.ExpectFailure(t, err)
}

type failingSink struct{}

func (failingSink) Signal(_ signal.Sample) error {
	return errors.New("full")
}

func TestSinkError(t *testing.T) {
	p := timing.SVGA800x600
	b, _ := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p})
	test.DemandSuccess(t, b.Boot())
	b.AddSink(failingSink{})

	err := b.Step()
	test.ExpectSuccess(t, curated.Is(err, hardware.SinkError))
}

func TestRun(t *testing.T) {
	p := timing.SVGA800x600
	b, _ := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p})

	// the board is booted by Run() and ends when the check says so
	lines := 0
	err := b.Run(context.Background(), func() (govern.State, error) {
		lines++
		if lines == p.Vertical.Total {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Booted(), true)
	test.ExpectEquality(t, b.Ticks(), uint64(p.FrameTicks()))
	test.ExpectEquality(t, b.Frame(), 1)

	// a cancelled context stops the board
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	before := b.Ticks()
	test.DemandSuccess(t, b.Run(ctx, nil))
	test.ExpectEquality(t, b.Ticks(), before)

	// unsupported state
	err = b.Run(context.Background(), func() (govern.State, error) {
		return govern.State(99), nil
	})
	test.ExpectFailure(t, err)
}

func TestRunForFrameCount(t *testing.T) {
	p := timing.VGA640x480
	b, _ := newBoard(t, p, clocks.NewPLL(p.ClockHz), solid{p: p})

	var counted []int
	err := b.RunForFrameCount(context.Background(), 5, func(frame int) (govern.State, error) {
		counted = append(counted, frame)
		if frame == 3 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(counted), 3)
	test.ExpectEquality(t, b.Frame(), 3)
}
