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

package picture_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beamrace/beamrace/palette"
	"github.com/beamrace/beamrace/sources/picture"
	"github.com/beamrace/beamrace/test"
)

func writePNG(t *testing.T, fn string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 160, 120))
	for y := range 120 {
		for x := range 160 {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, png.Encode(f, img))
	test.DemandSuccess(t, f.Close())
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "red.png")
	writePNG(t, fn, color.RGBA{R: 0xff, A: 0xff})

	pic, err := picture.NewPicture(fn, 80, 60)
	test.DemandSuccess(t, err)

	l, err := pic.Frame(0)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(l), 80*60)
	test.ExpectEquality(t, l[0], palette.Level(3, 0, 0))
	test.ExpectEquality(t, l[len(l)-1], palette.Level(3, 0, 0))

	test.DemandSuccess(t, pic.Close())
}

func TestMissing(t *testing.T) {
	_, err := picture.NewPicture(filepath.Join(t.TempDir(), "missing.png"), 80, 60)
	test.ExpectFailure(t, err)
}

func TestNotAnImage(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "text.png")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not an image"), 0644))
	_, err := picture.NewPicture(fn, 80, 60)
	test.ExpectFailure(t, err)
}

func TestWatch(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "picture.png")
	writePNG(t, fn, color.RGBA{R: 0xff, A: 0xff})

	pic, err := picture.NewPicture(fn, 80, 60)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, pic.Watch())
	defer pic.Close()

	writePNG(t, fn, color.RGBA{B: 0xff, A: 0xff})

	// the reload happens in the background
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		l, _ := pic.Frame(0)
		if l[0] == palette.Level(0, 0, 3) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("picture was not reloaded")
}
