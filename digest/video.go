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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/beamrace/beamrace/monitor"
)

// Video is an implementation of the monitor.Renderer interface. It generates
// a SHA-1 value of the image every frame. It does not display the image
// anywhere.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
type Video struct {
	digest [sha1.Size]byte
	levels []byte
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

func (dig *Video) String() string {
	return fmt.Sprintf("%d frames %s", dig.frames, dig.Hash())
}

// Hash implements digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// Frames returns the number of frames included in the digest.
func (dig *Video) Frames() int {
	return dig.frames
}

// NewFrame implements the monitor.Renderer interface.
func (dig *Video) NewFrame(f monitor.Frame) error {
	// length of levels array contains enough room for the previous frame's
	// digest value
	l := len(dig.digest) + len(f.Levels)
	if len(dig.levels) != l {
		dig.levels = make([]byte, l)
	}

	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	copy(dig.levels, dig.digest[:])
	copy(dig.levels[len(dig.digest):], f.Levels)

	dig.digest = sha1.Sum(dig.levels)
	dig.frames++

	return nil
}

// EndRendering implements the monitor.Renderer interface.
func (dig *Video) EndRendering() error {
	return nil
}
