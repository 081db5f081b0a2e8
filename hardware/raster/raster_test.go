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

package raster_test

import (
	"testing"

	"github.com/beamrace/beamrace/hardware/peripherals"
	"github.com/beamrace/beamrace/hardware/raster"
	"github.com/beamrace/beamrace/hardware/timing"
	"github.com/beamrace/beamrace/test"
)

func TestHorizontal(t *testing.T) {
	for _, p := range []timing.Profile{timing.SVGA800x600, timing.VGA640x480} {
		const latency = raster.TriggerCompensation

		h := raster.NewHorizontal(p, peripherals.NewTimer("master"), peripherals.NewTimer("pixel"))
		h.Configure(latency)
		h.Pixel().EnableRequests()

		var requests []int
		var events []int
		tick := 0
		h.Pixel().OnRequest(func(_ int) {
			requests = append(requests, tick)
		})
		h.OnEndOfVisible(func() {
			events = append(events, tick)
		})

		h.Start()

		var sync int
		for tick = range p.LineTicks() * 2 {
			h.Step()
			if p.Horizontal.SyncLevel(tick%p.LineTicks()) != h.HSync() {
				t.Errorf("%s: sync level wrong at tick %d", p.ID, tick)
			}
			if h.HSync() == (p.Horizontal.Polarity == timing.Positive) {
				sync++
			}
		}
		test.ExpectEquality(t, sync, p.Horizontal.Sync*2, p.ID)

		// one request per pixel plus the terminating zero, on every line, the
		// first of which is on the first tick of the visible region
		test.DemandEquality(t, len(requests), (p.Width+1)*2, p.ID)
		for i, r := range requests {
			line := i / (p.Width + 1)
			x := i % (p.Width + 1)
			test.ExpectEquality(t, r, line*p.LineTicks()+p.Horizontal.VisibleStart()+x*p.PixelClocks, p.ID, i)
		}

		// the last request, the terminating zero, is on the first tick after
		// the visible region
		test.ExpectEquality(t, requests[p.Width], p.Horizontal.VisibleEnd(), p.ID)

		test.DemandEquality(t, len(events), 2, p.ID)
		test.ExpectEquality(t, events[0], p.Horizontal.VisibleEnd()-raster.LineInterruptLead, p.ID)
		test.ExpectEquality(t, events[1]-events[0], p.LineTicks(), p.ID)
	}
}

func TestVertical(t *testing.T) {
	p := timing.SVGA800x600
	v := raster.NewVertical(p, peripherals.NewTimer("vertical"))
	v.Configure()

	var events []int
	tick := 0
	v.OnFrameComplete(func() {
		events = append(events, tick)
	})

	v.Start(0)

	var syncTicks int
	var lastLine int
	for tick = range p.FrameTicks() * 2 {
		lastLine = v.Line()
		v.Step()
		if v.VSync() {
			syncTicks++
		}
		if lastLine != (tick/p.LineTicks())%p.Vertical.Total {
			t.Fatalf("line %d reported at tick %d", lastLine, tick)
		}
	}

	test.ExpectEquality(t, syncTicks, p.Vertical.Sync*p.LineTicks()*2)

	// the frame event is on the first tick after the last visible line
	test.DemandEquality(t, len(events), 2)
	test.ExpectEquality(t, events[0], p.Vertical.VisibleEnd()*p.LineTicks())
	test.ExpectEquality(t, events[1]-events[0], p.FrameTicks())
}

func TestVerticalSkew(t *testing.T) {
	p := timing.SVGA800x600
	v := raster.NewVertical(p, peripherals.NewTimer("vertical"))
	v.Configure()
	v.Start(p.LineTicks() - 1)
	test.ExpectEquality(t, v.Line(), 0)
	v.Step()
	test.ExpectEquality(t, v.Line(), 1)
}
