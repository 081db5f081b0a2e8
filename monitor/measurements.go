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
	"fmt"
	"math"
	"strings"

	"github.com/beamrace/beamrace/hardware/timing"
)

// RateTolerance is the fractional difference between a measured rate and the
// rate of a profile that Compare() accepts.
const RateTolerance = 0.005

// Measurements of the signal. All values except the rates are exact. Values
// that depend on a complete frame are zero until the first frame has been
// decoded.
type Measurements struct {
	// number of complete lines and frames seen
	Lines  int
	Frames int

	HSyncPolarity timing.Polarity
	VSyncPolarity timing.Polarity

	// horizontal timing in master clock ticks. the shortest and longest line
	// are measured over the entire run
	LineTicks    int
	LineTicksMin int
	LineTicksMax int
	HSyncTicks   int

	// the first and last ticks of the most recent frame that had a non-zero
	// level, measured from the leading edge of the hsync pulse. the end is
	// one past the last tick. both values are -1 if every level was zero
	HActiveStart int
	HActiveEnd   int

	// vertical timing of the most recent frame in lines
	FrameLines int
	FrameTicks int
	VSyncLines int

	// as for HActiveStart/HActiveEnd but in lines from the leading edge of
	// the vsync pulse
	VActiveStart int
	VActiveEnd   int

	// rates from the clock frequency given to the monitor
	LineRate  float64
	FrameRate float64

	// number of ticks with a non-zero level outside of the visible region
	BlankingViolations int

	// number of pixels that differ from the same pixel in the first line of
	// the row. a change in the middle of a row means the frame buffer was
	// written while the row was being sent
	RowTears int
}

func (m Measurements) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("lines: %d (%d ticks, min %d, max %d)\n", m.Lines, m.LineTicks, m.LineTicksMin, m.LineTicksMax))
	s.WriteString(fmt.Sprintf("hsync: %d ticks %s\n", m.HSyncTicks, m.HSyncPolarity))
	s.WriteString(fmt.Sprintf("h active: %d to %d\n", m.HActiveStart, m.HActiveEnd))
	s.WriteString(fmt.Sprintf("frames: %d (%d lines, %d ticks)\n", m.Frames, m.FrameLines, m.FrameTicks))
	s.WriteString(fmt.Sprintf("vsync: %d lines %s\n", m.VSyncLines, m.VSyncPolarity))
	s.WriteString(fmt.Sprintf("v active: %d to %d\n", m.VActiveStart, m.VActiveEnd))
	s.WriteString(fmt.Sprintf("rates: %.3fkHz %.3fHz\n", m.LineRate/1000, m.FrameRate))
	s.WriteString(fmt.Sprintf("blanking violations: %d\n", m.BlankingViolations))
	s.WriteString(fmt.Sprintf("row tears: %d", m.RowTears))
	return s.String()
}

// Compare the measurements with the profile. Returns a description of every
// difference. An empty list means the signal matches the profile.
//
// The active region is only compared if any pixel in the most recent frame was
// non-zero. A black frame has no active region to measure.
func (m Measurements) Compare(p timing.Profile) []string {
	var d []string

	differ := func(name string, got, expected any) {
		d = append(d, fmt.Sprintf("%s: %v (expected %v)", name, got, expected))
	}

	if m.Frames == 0 {
		return []string{"no complete frame"}
	}

	if m.LineTicksMin != p.LineTicks() || m.LineTicksMax != p.LineTicks() {
		differ("line ticks", fmt.Sprintf("%d-%d", m.LineTicksMin, m.LineTicksMax), p.LineTicks())
	}
	if m.HSyncTicks != p.Horizontal.Sync {
		differ("hsync ticks", m.HSyncTicks, p.Horizontal.Sync)
	}
	if m.HSyncPolarity != p.Horizontal.Polarity {
		differ("hsync polarity", m.HSyncPolarity, p.Horizontal.Polarity)
	}
	if m.FrameLines != p.Vertical.Total {
		differ("frame lines", m.FrameLines, p.Vertical.Total)
	}
	if m.FrameTicks != p.FrameTicks() {
		differ("frame ticks", m.FrameTicks, p.FrameTicks())
	}
	if m.VSyncLines != p.Vertical.Sync {
		differ("vsync lines", m.VSyncLines, p.Vertical.Sync)
	}
	if m.VSyncPolarity != p.Vertical.Polarity {
		differ("vsync polarity", m.VSyncPolarity, p.Vertical.Polarity)
	}

	if m.HActiveStart >= 0 {
		if m.HActiveStart != p.Horizontal.VisibleStart() || m.HActiveEnd != p.Horizontal.VisibleEnd() {
			differ("h active", fmt.Sprintf("%d-%d", m.HActiveStart, m.HActiveEnd),
				fmt.Sprintf("%d-%d", p.Horizontal.VisibleStart(), p.Horizontal.VisibleEnd()))
		}
	}
	if m.VActiveStart >= 0 {
		if m.VActiveStart < p.Vertical.VisibleStart() || m.VActiveEnd > p.Vertical.VisibleEnd() {
			differ("v active", fmt.Sprintf("%d-%d", m.VActiveStart, m.VActiveEnd),
				fmt.Sprintf("%d-%d", p.Vertical.VisibleStart(), p.Vertical.VisibleEnd()))
		}
	}

	if math.Abs(m.LineRate-p.LineRate()) > p.LineRate()*RateTolerance {
		differ("line rate", fmt.Sprintf("%.3fkHz", m.LineRate/1000), fmt.Sprintf("%.3fkHz", p.LineRate()/1000))
	}

	if m.BlankingViolations > 0 {
		differ("blanking violations", m.BlankingViolations, 0)
	}

	return d
}
