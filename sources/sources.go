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

// Package sources opens a frame source from a short description. The
// description is the kind of source, optionally followed by a colon and an
// argument. For example:
//
//	bars
//	solid:21
//	picture:testcard.png
//	text:HELLO\nWORLD
//
// The List() function returns the kinds that are recognised.
package sources

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/hardware/scheduler"
	"github.com/beamrace/beamrace/palette"
	"github.com/beamrace/beamrace/sources/pattern"
	"github.com/beamrace/beamrace/sources/picture"
	"github.com/beamrace/beamrace/sources/qrcode"
	"github.com/beamrace/beamrace/sources/raw"
	"github.com/beamrace/beamrace/sources/script"
	"github.com/beamrace/beamrace/sources/text"
)

// Sentinel errors.
const (
	UnknownSource = "sources: unknown source (%s)"
	MissingArg    = "sources: %s requires an argument"
	BadArg        = "sources: %s: %v"
)

// Options for sources that support them.
type Options struct {
	// reload a picture when the file changes
	Watch bool

	// the level used for text and the light modules of a QR code
	Level uint8
}

// DefaultOptions are used by Open().
var DefaultOptions = Options{
	Level: palette.Mask,
}

type opener func(arg string, width, height int, opts Options) (scheduler.FrameSource, error)

var kinds = map[string]struct {
	needsArg bool
	help     string
	open     opener
}{
	"bars": {false, "colour bars and a ramp of every level", func(_ string, w, h int, _ Options) (scheduler.FrameSource, error) {
		return pattern.NewBars(w, h), nil
	}},
	"bounce": {false, "a ball bouncing over a grid", func(_ string, w, h int, _ Options) (scheduler.FrameSource, error) {
		return pattern.NewBounce(w, h), nil
	}},
	"max": {false, "every pixel at the maximum level", func(_ string, w, h int, _ Options) (scheduler.FrameSource, error) {
		return pattern.NewSolid(w, h, palette.Mask), nil
	}},
	"solid": {true, "every pixel at the level given (0 to 63)", func(arg string, w, h int, _ Options) (scheduler.FrameSource, error) {
		l, err := strconv.ParseUint(arg, 0, 8)
		if err != nil || l > palette.Mask {
			return nil, curated.Errorf(BadArg, "solid", "level must be between 0 and 63")
		}
		return pattern.NewSolid(w, h, uint8(l)), nil
	}},
	"picture": {true, "an image file (png, jpeg, gif, bmp, tiff, webp)", func(arg string, w, h int, opts Options) (scheduler.FrameSource, error) {
		pic, err := picture.NewPicture(arg, w, h)
		if err != nil {
			return nil, err
		}
		if opts.Watch {
			if err := pic.Watch(); err != nil {
				return nil, err
			}
		}
		return pic, nil
	}},
	"qr": {true, "a QR code of the text given", func(arg string, w, h int, opts Options) (scheduler.FrameSource, error) {
		return qrcode.NewQRCode(arg, w, h, opts.Level)
	}},
	"text": {true, "lines of text, scrolling if too wide", func(arg string, w, h int, opts Options) (scheduler.FrameSource, error) {
		return text.NewText(arg, w, h, opts.Level)
	}},
	"lua": {true, "a Lua script defining frame(n)", func(arg string, w, h int, _ Options) (scheduler.FrameSource, error) {
		return script.NewScript(arg, "", w, h)
	}},
	"raw": {true, "a file of width*height levels", func(arg string, w, h int, _ Options) (scheduler.FrameSource, error) {
		return raw.Load(arg, w, h)
	}},
}

// Open a frame source for a frame buffer of width by height pixels.
func Open(desc string, width, height int) (scheduler.FrameSource, error) {
	return OpenWithOptions(desc, width, height, DefaultOptions)
}

// OpenWithOptions is the same as Open() but with options for the sources that
// support them.
func OpenWithOptions(desc string, width, height int, opts Options) (scheduler.FrameSource, error) {
	kind, arg, _ := strings.Cut(desc, ":")
	kind = strings.ToLower(strings.TrimSpace(kind))

	k, ok := kinds[kind]
	if !ok {
		return nil, curated.Errorf(UnknownSource, kind)
	}
	if k.needsArg && arg == "" {
		return nil, curated.Errorf(MissingArg, kind)
	}

	return k.open(arg, width, height, opts)
}

// Close the source if it holds any resources. Safe to call with any
// FrameSource.
func Close(src scheduler.FrameSource) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// List the kinds of source that Open() recognises.
func List() []string {
	l := make([]string, 0, len(kinds))
	for k := range kinds {
		l = append(l, k)
	}
	sort.Strings(l)
	return l
}

// Help returns a short description of the kind of source.
func Help(kind string) string {
	k, ok := kinds[kind]
	if !ok {
		return ""
	}
	if k.needsArg {
		return kind + ":<arg> " + k.help
	}
	return kind + " " + k.help
}
