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

package raw_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/beamrace/beamrace/sources/raw"
	"github.com/beamrace/beamrace/test"
)

func TestRoundTrip(t *testing.T) {
	levels := make([]uint8, 80*60)
	for i := range levels {
		levels[i] = uint8(i % 64)
	}

	var b bytes.Buffer
	test.DemandSuccess(t, raw.Write(&b, levels))

	fn := filepath.Join(t.TempDir(), "frame.raw")
	test.DemandSuccess(t, os.WriteFile(fn, b.Bytes(), 0644))

	r, err := raw.Load(fn, 80, 60)
	test.DemandSuccess(t, err)
	l, err := r.Frame(0)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(l, levels))
}

func TestMask(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "frame.raw")
	test.DemandSuccess(t, os.WriteFile(fn, bytes.Repeat([]byte{0xff}, 4), 0644))
	r, err := raw.Load(fn, 2, 2)
	test.DemandSuccess(t, err)
	l, _ := r.Frame(0)
	test.ExpectEquality(t, l[3], uint8(0x3f))
}

func TestWrongSize(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "frame.raw")
	test.DemandSuccess(t, os.WriteFile(fn, make([]byte, 4799), 0644))
	_, err := raw.Load(fn, 80, 60)
	test.ExpectFailure(t, err)

	_, err = raw.Load(filepath.Join(t.TempDir(), "missing.raw"), 80, 60)
	test.ExpectFailure(t, err)
}
