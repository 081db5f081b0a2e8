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

// Package picture is a frame source that shows an image file. The image is
// scaled to the size of the frame buffer and every pixel converted to the
// nearest level.
//
// The file can optionally be watched for changes, in which case the new image
// is shown from the next frame after the file is written. This makes it
// possible to edit the image while the signal is running.
package picture

import (
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	// supported image formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/howeyc/fsnotify"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/logger"
	"github.com/beamrace/beamrace/sources/convert"
)

// the time to wait after a change to the file before reloading it. editors
// often write a file in more than one step
const settle = 100 * time.Millisecond

// Picture implements the scheduler.FrameSource interface.
type Picture struct {
	filename string
	width    int
	height   int

	// the levels slice is replaced when the file is reloaded. it is never
	// changed in place
	crit   sync.Mutex
	levels []uint8

	watcher *fsnotify.Watcher
	done    chan bool
}

// Load an image file and convert it to levels.
func Load(filename string, width, height int) ([]uint8, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("picture: %v", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, curated.Errorf("picture: %s: %v", filepath.Base(filename), err)
	}

	return convert.Scale(img, width, height), nil
}

// NewPicture is the preferred method of initialisation for the Picture type.
func NewPicture(filename string, width, height int) (*Picture, error) {
	l, err := Load(filename, width, height)
	if err != nil {
		return nil, err
	}

	return &Picture{
		filename: filepath.Clean(filename),
		width:    width,
		height:   height,
		levels:   l,
	}, nil
}

// Frame implements the scheduler.FrameSource interface.
func (pic *Picture) Frame(_ int) ([]uint8, error) {
	pic.crit.Lock()
	defer pic.crit.Unlock()
	return pic.levels, nil
}

// Watch the file for changes. A file that can not be loaded after a change is
// logged and the previous image continues to be shown.
func (pic *Picture) Watch() error {
	if pic.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return curated.Errorf("picture: %v", err)
	}

	// the directory is watched rather than the file because many editors
	// replace the file with a new one
	if err := w.Watch(filepath.Dir(pic.filename)); err != nil {
		w.Close()
		return curated.Errorf("picture: %v", err)
	}

	pic.watcher = w
	pic.done = make(chan bool)

	go func() {
		var reload <-chan time.Time
		for {
			select {
			case <-pic.done:
				return
			case ev := <-w.Event:
				if ev == nil {
					return
				}
				if filepath.Clean(ev.Name) == pic.filename && !ev.IsAttrib() && !ev.IsDelete() {
					reload = time.After(settle)
				}
			case err := <-w.Error:
				if err != nil {
					logger.Logf(logger.Allow, "picture", "watcher: %v", err)
				}
			case <-reload:
				reload = nil
				l, err := Load(pic.filename, pic.width, pic.height)
				if err != nil {
					logger.Log(logger.Allow, "picture", err.Error())
					break
				}
				pic.crit.Lock()
				pic.levels = l
				pic.crit.Unlock()
				logger.Logf(logger.Allow, "picture", "reloaded %s", filepath.Base(pic.filename))
			}
		}
	}()

	return nil
}

// Close stops watching the file.
func (pic *Picture) Close() error {
	if pic.watcher == nil {
		return nil
	}
	close(pic.done)
	err := pic.watcher.Close()
	pic.watcher = nil
	if err != nil {
		return curated.Errorf("picture: %v", err)
	}
	return nil
}
