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

// Package scheduler regenerates the frame buffer once per frame.
//
// The frame interrupt signals that the last visible line has been sent. The
// idle context, which sleeps until any interrupt, sees the signal when it
// next wakes and copies a new frame from the FrameSource into the frame
// buffer. The copy races the beam: it must finish before the scan-out reaches
// the first row again or part of the old frame will be shown with part of the
// new frame.
//
// The copy is not checked against the deadline while it runs. The Report
// records how long each copy took so that the caller can decide whether the
// frame source and the preferences are compatible with the timing profile.
package scheduler

import (
	"fmt"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/environment"
	"github.com/beamrace/beamrace/hardware/framebuffer"
	"github.com/beamrace/beamrace/hardware/scanout"
	"github.com/beamrace/beamrace/hardware/timing"
	"github.com/beamrace/beamrace/logger"
)

// Sentinel errors.
const (
	SourceError = "scheduler: frame %d: %v"
	ShortFrame  = "scheduler: frame %d: %d levels for a %dx%d frame buffer"
)

// FrameSource supplies the pixel levels of each frame. The slice is
// Width*Height levels, one row after another.
type FrameSource interface {
	Frame(n int) ([]uint8, error)
}

// Clock is the number of master clock ticks since boot.
type Clock interface {
	Ticks() uint64
}

// Report summarises the work of the scheduler.
type Report struct {
	// number of frame interrupts
	Frames int

	// number of completed renders
	Renders int

	// number of frames that were never rendered
	Dropped int

	// number of renders that completed after the deadline
	Overruns int

	// number of frames the source failed to supply
	SourceErrors int

	// the longest render in master clock ticks, measured from the frame
	// interrupt, and the deadline for each render
	WorstTicks uint64
	Budget     uint64
}

func (r Report) String() string {
	return fmt.Sprintf("frames %d, renders %d, dropped %d, overruns %d, source errors %d, worst %d/%d ticks",
		r.Frames, r.Renders, r.Dropped, r.Overruns, r.SourceErrors, r.WorstTicks, r.Budget)
}

// Scheduler is the frame scheduler.
type Scheduler struct {
	env     *environment.Environment
	profile timing.Profile
	fb      *framebuffer.FrameBuffer
	tracker *scanout.Tracker
	source  FrameSource
	clock   Clock

	// the idle context has been woken by an interrupt
	awake bool

	// the render in progress. nil if the idle context is waiting for an
	// interrupt
	job *render

	// frame number given to the source
	frame int

	// tick of the most recent frame interrupt and whether that frame has
	// been consumed
	eventTick uint64
	pending   bool

	report Report
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler(env *environment.Environment, profile timing.Profile, fb *framebuffer.FrameBuffer,
	tracker *scanout.Tracker, source FrameSource, clock Clock) *Scheduler {
	return &Scheduler{
		env:     env,
		profile: profile,
		fb:      fb,
		tracker: tracker,
		source:  source,
		clock:   clock,
		report: Report{
			Budget: uint64(profile.RenderBudget()),
		},
	}
}

// SetSource changes the frame source. The change takes effect at the next
// render.
func (s *Scheduler) SetSource(source FrameSource) {
	s.source = source
}

// Report returns a summary of the scheduler's work.
func (s *Scheduler) Report() Report {
	return s.report
}

// Rendering returns true if a render is in progress.
func (s *Scheduler) Rendering() bool {
	return s.job != nil
}

// OnFrameComplete is the frame interrupt handler.
func (s *Scheduler) OnFrameComplete() {
	s.report.Frames++

	if s.pending {
		s.report.Dropped++
	}

	if !s.tracker.SignalFrameReady() {
		if s.tracker.State() == scanout.Visible {
			logger.Log(s.env, "scheduler", "frame interrupt during visible region")
			return
		}
	}

	s.pending = true
	s.eventTick = s.clock.Ticks()
}

// Wake implements the core.Idle interface.
func (s *Scheduler) Wake() {
	s.awake = true
}

// Step implements the core.Idle interface.
func (s *Scheduler) Step() {
	if s.job == nil {
		// waiting for interrupt
		if !s.awake {
			return
		}
		s.awake = false

		if !s.tracker.ConsumeFrameReady() {
			return
		}
		s.pending = false

		job, err := s.begin()
		if err != nil {
			s.report.SourceErrors++
			logger.Log(s.env, "scheduler", err.Error())
			return
		}
		s.job = job
	}

	if s.job.step(s.cyclesPerByte()) {
		s.finish()
	}
}

// Regenerate copies the next frame from the source into the frame buffer
// immediately.
func (s *Scheduler) Regenerate() error {
	job, err := s.begin()
	if err != nil {
		s.report.SourceErrors++
		return err
	}
	for !job.step(0) {
	}
	return nil
}

func (s *Scheduler) cyclesPerByte() int {
	return s.env.Prefs.RenderCyclesPerByte.Get().(int)
}

func (s *Scheduler) begin() (*render, error) {
	n := s.frame
	s.frame++

	levels, err := s.source.Frame(n)
	if err != nil {
		return nil, curated.Errorf(SourceError, n, err)
	}

	if len(levels) < s.fb.Width()*s.fb.Height() {
		return nil, curated.Errorf(ShortFrame, n, len(levels), s.fb.Width(), s.fb.Height())
	}

	return &render{
		fb:        s.fb,
		levels:    levels,
		eventTick: s.eventTick,
	}, nil
}

func (s *Scheduler) finish() {
	ticks := s.clock.Ticks() - s.job.eventTick
	s.job = nil

	s.report.Renders++
	s.report.WorstTicks = max(s.report.WorstTicks, ticks)
	if ticks > s.report.Budget {
		s.report.Overruns++
		logger.Logf(s.env, "scheduler", "render overrun: %d ticks with a budget of %d", ticks, s.report.Budget)
	}
}
