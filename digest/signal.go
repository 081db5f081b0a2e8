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

	"github.com/beamrace/beamrace/hardware/signal"
)

// the length of the buffer we're using isn't really important. that said, it
// needs to be at least sha1.Size bytes in length
const signalBufferLength = 4096 + sha1.Size

// to allow us to create digests on signals longer than signalBufferLength,
// we'll stuff the previous digest value into the first part of the buffer and
// make sure we include it when we create the next digest value
const signalBufferStart = sha1.Size

// Signal implements the signal.Sink interface.
type Signal struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewSignal is the preferred method of initialisation for the Signal type.
func NewSignal() *Signal {
	return &Signal{
		buffer:   make([]uint8, signalBufferLength),
		bufferCt: signalBufferStart,
	}
}

func (dig *Signal) String() string {
	return dig.Hash()
}

// Hash implements digest.Digest interface. Samples that have been received
// since the last flush are not included.
func (dig *Signal) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Signal) ResetDigest() {
	clear(dig.digest[:])
	dig.bufferCt = signalBufferStart
}

// Signal implements the signal.Sink interface.
func (dig *Signal) Signal(s signal.Sample) error {
	// the sync levels are packed into the two bits above the six bit level
	b := s.Level & 0x3f
	if s.HSync {
		b |= 0x40
	}
	if s.VSync {
		b |= 0x80
	}
	dig.buffer[dig.bufferCt] = b

	dig.bufferCt++
	if dig.bufferCt >= signalBufferLength {
		dig.Flush()
	}

	return nil
}

// Flush includes every sample received so far in the digest.
func (dig *Signal) Flush() {
	if dig.bufferCt == signalBufferStart {
		return
	}
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = signalBufferStart
}
