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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/beamrace/beamrace/hardware/signal"
	"github.com/beamrace/beamrace/test"
	"github.com/beamrace/beamrace/wavwriter"
)

func TestCapture(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "capture.wav")

	aw, err := wavwriter.New(fn, 40_000_000)
	test.DemandSuccess(t, err)

	// more ticks than fit in one block
	const ticks = 100_000
	for i := range ticks {
		test.DemandSuccess(t, aw.Signal(signal.Sample{
			HSync: i%1056 < 128,
			VSync: i < 4224,
			Level: uint8(i % 64),
		}))
	}
	test.DemandSuccess(t, aw.EndCapture())
	test.ExpectEquality(t, aw.Ticks, ticks)

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, int(dec.NumChans), wavwriter.NumChannels)
	test.ExpectEquality(t, int(dec.SampleRate), 40_000_000)
	test.ExpectEquality(t, int(dec.BitDepth), wavwriter.BitDepth)

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(buf.Data), ticks*wavwriter.NumChannels)

	// hsync, vsync and level of a few ticks
	test.ExpectEquality(t, buf.Data[0], 255)
	test.ExpectEquality(t, buf.Data[1], 255)
	test.ExpectEquality(t, buf.Data[2], 0)
	test.ExpectEquality(t, buf.Data[200*3], 0)
	test.ExpectEquality(t, buf.Data[5000*3+1], 0)
	test.ExpectEquality(t, buf.Data[63*3+2], 63<<2)
}

func TestBadRate(t *testing.T) {
	_, err := wavwriter.New(filepath.Join(t.TempDir(), "x.wav"), 0)
	test.ExpectFailure(t, err)
}
