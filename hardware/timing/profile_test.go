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

package timing_test

import (
	"testing"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/hardware/timing"
	"github.com/beamrace/beamrace/test"
)

func TestAxisSums(t *testing.T) {
	for _, id := range timing.List() {
		p, err := timing.Lookup(id)
		test.DemandSuccess(t, err)

		for _, a := range []timing.Axis{p.Horizontal, p.Vertical} {
			test.ExpectEquality(t, a.FrontPorch+a.Sync+a.BackPorch+a.Visible, a.Total, id)
			test.ExpectEquality(t, a.VisibleEnd()+a.FrontPorch, a.Total, id)
		}

		test.ExpectEquality(t, p.Width*p.PixelClocks, p.Horizontal.Visible, id)
		test.ExpectEquality(t, p.RowLines()*p.Height, p.Vertical.Visible, id)
	}
}

func TestReferenceProfile(t *testing.T) {
	p := timing.SVGA800x600
	test.ExpectEquality(t, p.LineTicks(), 1056)
	test.ExpectEquality(t, p.Horizontal.VisibleStart(), 216)
	test.ExpectEquality(t, p.Horizontal.VisibleEnd(), 1016)
	test.ExpectEquality(t, p.Vertical.VisibleStart(), 27)
	test.ExpectEquality(t, p.Vertical.VisibleEnd(), 627)
	test.ExpectEquality(t, p.RowLines(), 10)
	test.ExpectEquality(t, p.RenderBudget(), 29568)
	test.ExpectApproximate(t, p.LineRate(), 37879, 0.001)
	test.ExpectApproximate(t, p.FrameRate(), 60.3, 0.001)

	// the VGA profile has a different row height
	test.ExpectEquality(t, timing.VGA640x480.RowLines(), 8)
}

func TestInvalidProfiles(t *testing.T) {
	good := timing.Axis{Visible: 800, FrontPorch: 40, Sync: 128, BackPorch: 88, Total: 1056}
	vert := timing.Axis{Visible: 600, FrontPorch: 1, Sync: 4, BackPorch: 23, Total: 628}

	_, err := timing.NewProfile("good", 40e6, good, vert, 80, 60, 10)
	test.ExpectSuccess(t, err)

	// regions do not sum to total
	bad := good
	bad.Total = 1055
	_, err = timing.NewProfile("bad", 40e6, bad, vert, 80, 60, 10)
	test.ExpectSuccess(t, curated.Is(err, timing.InvalidProfile))

	badv := vert
	badv.BackPorch = 22
	_, err = timing.NewProfile("bad", 40e6, good, badv, 80, 60, 10)
	test.ExpectSuccess(t, curated.Is(err, timing.InvalidProfile))

	// frame buffer does not fill the visible region
	_, err = timing.NewProfile("bad", 40e6, good, vert, 81, 60, 10)
	test.ExpectSuccess(t, curated.Is(err, timing.InvalidProfile))

	// visible lines not a multiple of the frame buffer height
	_, err = timing.NewProfile("bad", 40e6, good, vert, 80, 70, 10)
	test.ExpectSuccess(t, curated.Is(err, timing.InvalidProfile))

	_, err = timing.NewProfile("bad", 0, good, vert, 80, 60, 10)
	test.ExpectFailure(t, err)
}

func TestSyncLevel(t *testing.T) {
	h := timing.SVGA800x600.Horizontal
	test.ExpectSuccess(t, h.SyncLevel(0))
	test.ExpectSuccess(t, h.SyncLevel(127))
	test.ExpectFailure(t, h.SyncLevel(128))

	h = timing.VGA640x480.Horizontal
	test.ExpectFailure(t, h.SyncLevel(0))
	test.ExpectSuccess(t, h.SyncLevel(96))
}

func TestLookup(t *testing.T) {
	p, err := timing.Lookup("svga800x600")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.ID, timing.SVGA800x600.ID)

	_, err = timing.Lookup("PAL")
	test.ExpectSuccess(t, curated.Is(err, timing.UnknownProfile))
}
