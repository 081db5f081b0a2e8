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

// Package timing contains the build-time timing profiles of the generated
// video signal.
//
// A profile describes both axes of the signal. The horizontal axis is counted
// in master clock ticks and the vertical axis is counted in lines. Each axis is
// laid out from the point where its counter rolls over to zero:
//
//	| sync | back porch | visible | front porch |
//	0      Sync         VisibleStart  VisibleEnd  Total
//
// The profile also describes the logical frame buffer: Width by Height pixels
// where each pixel is PixelClocks ticks wide and RowLines() lines tall.
//
// Profiles are validated when they are created and so a Profile value can be
// trusted by every component that receives one.
package timing

import (
	"fmt"

	"github.com/beamrace/beamrace/curated"
)

// Sentinel error returned by NewProfile() for a profile that does not satisfy
// one of its invariants.
const InvalidProfile = "timing: invalid profile %s: %s"

// Polarity of a sync pulse. A positive pulse is high for the duration of the
// sync period and low otherwise.
type Polarity int

// List of valid Polarity values.
const (
	Positive Polarity = iota
	Negative
)

func (p Polarity) String() string {
	if p == Negative {
		return "-"
	}
	return "+"
}

// Axis describes one axis of the signal.
type Axis struct {
	Visible    int
	FrontPorch int
	Sync       int
	BackPorch  int
	Total      int
	Polarity   Polarity
}

func (a Axis) String() string {
	return fmt.Sprintf("%d %d %d %d (%d) %s", a.Visible, a.FrontPorch, a.Sync, a.BackPorch, a.Total, a.Polarity)
}

// VisibleStart is the first position of the visible region.
func (a Axis) VisibleStart() int {
	return a.Sync + a.BackPorch
}

// VisibleEnd is the first position after the visible region.
func (a Axis) VisibleEnd() int {
	return a.Sync + a.BackPorch + a.Visible
}

// IsVisible returns true if the position is inside the visible region.
func (a Axis) IsVisible(p int) bool {
	return p >= a.VisibleStart() && p < a.VisibleEnd()
}

// IsSync returns true if the position is inside the sync pulse.
func (a Axis) IsSync(p int) bool {
	return p >= 0 && p < a.Sync
}

// SyncLevel returns the electrical level of the sync output at the position.
func (a Axis) SyncLevel(p int) bool {
	return a.IsSync(p) == (a.Polarity == Positive)
}

func (a Axis) validate(id string, name string) error {
	if a.Visible <= 0 || a.Sync <= 0 || a.FrontPorch < 0 || a.BackPorch < 0 {
		return curated.Errorf(InvalidProfile, id, fmt.Sprintf("%s axis has a non-positive region", name))
	}
	if a.FrontPorch+a.Sync+a.BackPorch+a.Visible != a.Total {
		return curated.Errorf(InvalidProfile, id, fmt.Sprintf("%s axis regions do not sum to %d", name, a.Total))
	}
	return nil
}

// Profile is a complete and validated description of the signal.
type Profile struct {
	ID string

	// master clock frequency the profile was designed for
	ClockHz float64

	// horizontal axis in master clock ticks
	Horizontal Axis

	// vertical axis in lines
	Vertical Axis

	// size of the frame buffer in logical pixels
	Width  int
	Height int

	// number of master clock ticks in one logical pixel
	PixelClocks int
}

// NewProfile creates a Profile and checks that it satisfies every invariant.
// Only a profile created by this function should be used.
func NewProfile(id string, clockHz float64, horiz Axis, vert Axis, width int, height int, pixelClocks int) (Profile, error) {
	p := Profile{
		ID:          id,
		ClockHz:     clockHz,
		Horizontal:  horiz,
		Vertical:    vert,
		Width:       width,
		Height:      height,
		PixelClocks: pixelClocks,
	}

	if clockHz <= 0 {
		return Profile{}, curated.Errorf(InvalidProfile, id, "clock frequency must be positive")
	}
	if err := horiz.validate(id, "horizontal"); err != nil {
		return Profile{}, err
	}
	if err := vert.validate(id, "vertical"); err != nil {
		return Profile{}, err
	}
	if width <= 0 || height <= 0 || pixelClocks <= 0 {
		return Profile{}, curated.Errorf(InvalidProfile, id, "frame buffer dimensions must be positive")
	}
	if width*pixelClocks != horiz.Visible {
		return Profile{}, curated.Errorf(InvalidProfile, id,
			fmt.Sprintf("%d pixels of %d ticks do not fill %d visible ticks", width, pixelClocks, horiz.Visible))
	}
	if vert.Visible%height != 0 {
		return Profile{}, curated.Errorf(InvalidProfile, id,
			fmt.Sprintf("%d visible lines can not be divided into %d rows", vert.Visible, height))
	}

	// the terminating zero of each row is sent PixelClocks ticks after the
	// last pixel. it must be output before the next line begins
	if horiz.FrontPorch+horiz.Sync+horiz.BackPorch < pixelClocks {
		return Profile{}, curated.Errorf(InvalidProfile, id, "horizontal blanking is shorter than one pixel")
	}

	return p, nil
}

func (p Profile) String() string {
	return fmt.Sprintf("%s %dx%d@%.2fHz (%dx%d buffer)", p.ID,
		p.Horizontal.Visible, p.Vertical.Visible, p.FrameRate(), p.Width, p.Height)
}

// LineTicks is the number of master clock ticks in one line.
func (p Profile) LineTicks() int {
	return p.Horizontal.Total
}

// FrameTicks is the number of master clock ticks in one frame.
func (p Profile) FrameTicks() int {
	return p.Horizontal.Total * p.Vertical.Total
}

// RowLines is the number of lines that show the same frame buffer row.
func (p Profile) RowLines() int {
	return p.Vertical.Visible / p.Height
}

// LineRate is the number of lines per second when the master clock is running
// at ClockHz.
func (p Profile) LineRate() float64 {
	return p.ClockHz / float64(p.Horizontal.Total)
}

// FrameRate is the number of frames per second when the master clock is
// running at ClockHz.
func (p Profile) FrameRate() float64 {
	return p.LineRate() / float64(p.Vertical.Total)
}

// RenderBudget is the number of master clock ticks between the end of the
// visible region of one frame and the start of the visible region of the next
// frame. A frame render must complete in this time if it is not to be seen.
func (p Profile) RenderBudget() int {
	return (p.Vertical.Total - p.Vertical.Visible) * p.Horizontal.Total
}

// LineTick converts a line number into master clock ticks from the start of
// the frame.
func (p Profile) LineTick(line int) int {
	return line * p.Horizontal.Total
}
